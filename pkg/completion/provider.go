// Package completion builds tab-completion candidates for the command loop.
//
// The first token of a line completes against the registry's names (aliases
// included). Later tokens complete against the candidates of the command the
// first token names, as returned by its CompletionFunc at request time.
package completion

import (
	"strings"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// Source is the part of the registry the provider needs.
type Source interface {
	ListCommands() []string
	Resolve(token string) (*domain.Command, error)
}

// Provider maps command names to their candidate producers.
// It is a snapshot taken at construction and holds no other state.
type Provider struct {
	names []string
	hooks map[string]domain.CompletionFunc
}

// New snapshots the names and completion hooks of src.
func New(src Source) *Provider {
	names := src.ListCommands()
	p := &Provider{
		names: names,
		hooks: make(map[string]domain.CompletionFunc, len(names)),
	}
	for _, name := range names {
		cmd, err := src.Resolve(name)
		if err != nil || cmd.Complete == nil {
			continue
		}
		p.hooks[name] = cmd.Complete
	}
	return p
}

// Names returns the command-name candidate set.
func (p *Provider) Names() []string {
	return append([]string(nil), p.names...)
}

// Candidates asks the command's hook for its current candidates.
// Commands without a hook, and unknown names, yield nil.
func (p *Provider) Candidates(name string) []string {
	hook, ok := p.hooks[name]
	if !ok {
		return nil
	}
	return hook()
}

// Complete returns full-line completions for line, suitable for a line
// reader's completer callback.
func (p *Provider) Complete(line string) []string {
	fields := strings.Fields(line)
	trailingSpace := strings.HasSuffix(line, " ")

	if len(fields) == 0 || (len(fields) == 1 && !trailingSpace) {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		return filterPrefix(p.names, prefix, "")
	}

	head := strings.Join(fields[:len(fields)-1], " ") + " "
	partial := fields[len(fields)-1]
	if trailingSpace {
		head = strings.Join(fields, " ") + " "
		partial = ""
	}
	return filterPrefix(p.Candidates(fields[0]), partial, head)
}

// filterPrefix keeps the candidates order.
func filterPrefix(candidates []string, prefix, head string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, head+c)
		}
	}
	return out
}
