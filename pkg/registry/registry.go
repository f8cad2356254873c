package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// ErrInvalidCommand is returned when a command cannot be registered.
var ErrInvalidCommand = errors.New("invalid command")

// Registry holds the command table and the alias map.
// It is built once by New and is read-only afterwards, so concurrent reads
// need no locking.
type Registry struct {
	commands map[string]*domain.Command
	aliases  map[string]string
}

// Option configures the registry at construction.
type Option func(*builder)

type builder struct {
	commands  []domain.Command
	overrides []domain.Command
	aliases   map[string]string
}

// WithCommands registers embedder commands.
// A name that collides with a built-in is rejected; use WithOverrides for that.
func WithCommands(cmds ...domain.Command) Option {
	return func(b *builder) {
		b.commands = append(b.commands, cmds...)
	}
}

// WithOverrides registers commands that intentionally replace a built-in.
// Overriding the name of a built-in alias, such as exit, drops that alias.
func WithOverrides(cmds ...domain.Command) Option {
	return func(b *builder) {
		b.overrides = append(b.overrides, cmds...)
	}
}

// WithAliases merges extra alias entries with the built-in ones.
func WithAliases(aliases map[string]string) Option {
	return func(b *builder) {
		for alias, target := range aliases {
			b.aliases[alias] = target
		}
	}
}

// New builds a registry with the built-in commands plus the given options.
func New(opts ...Option) (*Registry, error) {
	b := &builder{aliases: make(map[string]string)}
	for _, opt := range opts {
		opt(b)
	}

	aliases := make(map[string]string, len(builtinAliases)+len(b.aliases))
	for alias, target := range builtinAliases {
		aliases[alias] = target
	}
	for _, cmd := range b.overrides {
		delete(aliases, cmd.Name)
	}
	for alias, target := range b.aliases {
		aliases[alias] = target
	}

	r := &Registry{
		commands: make(map[string]*domain.Command),
		aliases:  make(map[string]string, len(aliases)),
	}
	for _, cmd := range r.builtins() {
		if err := r.register(cmd, false); err != nil {
			return nil, err
		}
	}
	for _, cmd := range b.commands {
		if err := r.register(cmd, false); err != nil {
			return nil, err
		}
	}
	for _, cmd := range b.overrides {
		if err := r.register(cmd, true); err != nil {
			return nil, err
		}
	}
	for alias, target := range aliases {
		if err := r.alias(alias, target); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(cmd domain.Command, override bool) error {
	if cmd.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCommand)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidCommand, cmd.Name)
	}
	if _, exists := r.commands[cmd.Name]; exists && !override {
		return fmt.Errorf("%w: duplicate command %s", ErrInvalidCommand, cmd.Name)
	}
	c := cmd
	c.Params = append([]string(nil), cmd.Params...)
	r.commands[c.Name] = &c
	return nil
}

func (r *Registry) alias(alias, target string) error {
	if _, clash := r.commands[alias]; clash {
		return fmt.Errorf("%w: alias %s shadows a command", ErrInvalidCommand, alias)
	}
	if _, ok := r.commands[target]; !ok {
		return fmt.Errorf("%w: alias %s points to unknown command %s", ErrInvalidCommand, alias, target)
	}
	r.aliases[alias] = target
	return nil
}

// ListCommands returns every command name plus every alias key, sorted.
func (r *Registry) ListCommands() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Canonical substitutes an alias with its target. Other tokens pass through.
func (r *Registry) Canonical(token string) string {
	if target, ok := r.aliases[token]; ok {
		return target
	}
	return token
}

// Resolve looks up a command by name or alias.
func (r *Registry) Resolve(token string) (*domain.Command, error) {
	name := r.Canonical(token)

	cmd, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, token)
	}
	return cmd, nil
}

// ParameterNames returns the required parameters of the command token resolves to.
func (r *Registry) ParameterNames(token string) ([]string, error) {
	cmd, err := r.Resolve(token)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), cmd.Params...), nil
}

// Aliases returns a copy of the alias map.
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}
