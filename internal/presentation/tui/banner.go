package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cmdloop banner to w, colored when w is a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{`                     _ _                   `, "#818cf8"},
		{`   ___ _ __ ___   __| | | ___   ___  _ __  `, "#a78bfa"},
		{`  / __| '_ ` + "`" + ` _ \ / _` + "`" + ` | |/ _ \ / _ \| '_ \ `, "#c084fc"},
		{` | (__| | | | | | (_| | | (_) | (_) | |_) |`, "#e879f9"},
		{`  \___|_| |_| |_|\__,_|_|\___/ \___/| .__/ `, "#f472b6"},
		{`                                    |_|    `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", out.String("v"+version).Faint())
}
