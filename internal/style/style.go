// Package style maps configuration color names to terminal styles and
// decides when output should be colorized.
package style

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode determines when to use colored output.
type Mode int

const (
	ModeAuto   Mode = iota // colorize when writing to a terminal
	ModeAlways             // always colorize
	ModeNever              // never colorize
)

// ParseMode converts a string to a Mode, defaulting to auto.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "always":
		return ModeAlways
	case "never":
		return ModeNever
	default:
		return ModeAuto
	}
}

// Force pins the renderer to the 16-color ANSI profile. lipgloss
// detects the profile from the process stdout, so without this a
// piped --color=always run would emit no escape sequences at all.
// The palette only uses the base 16 colors, so ANSI loses nothing.
func Force() {
	lipgloss.SetColorProfile(termenv.ANSI)
}

// Enabled reports whether output written to w should be colorized.
func Enabled(mode Mode, w io.Writer) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return term.IsTerminal(int(f.Fd()))
		}
		return false
	}
}

// palette holds the recognized color names. The names follow the
// conventional 16-color terminal palette, with LIGHT*_EX aliases for
// the bright half.
var palette = map[string]lipgloss.Color{
	"BLACK":           lipgloss.Color("0"),
	"RED":             lipgloss.Color("1"),
	"GREEN":           lipgloss.Color("2"),
	"YELLOW":          lipgloss.Color("3"),
	"BLUE":            lipgloss.Color("4"),
	"MAGENTA":         lipgloss.Color("5"),
	"CYAN":            lipgloss.Color("6"),
	"WHITE":           lipgloss.Color("7"),
	"LIGHTBLACK_EX":   lipgloss.Color("8"),
	"LIGHTRED_EX":     lipgloss.Color("9"),
	"LIGHTGREEN_EX":   lipgloss.Color("10"),
	"LIGHTYELLOW_EX":  lipgloss.Color("11"),
	"LIGHTBLUE_EX":    lipgloss.Color("12"),
	"LIGHTMAGENTA_EX": lipgloss.Color("13"),
	"LIGHTCYAN_EX":    lipgloss.Color("14"),
	"LIGHTWHITE_EX":   lipgloss.Color("15"),
}

// Lookup resolves a color name to a style. An empty name or "NONE"
// yields the zero style, which renders text unchanged.
func Lookup(name string) (lipgloss.Style, error) {
	if name == "" || strings.EqualFold(name, "NONE") {
		return lipgloss.NewStyle(), nil
	}
	c, ok := palette[strings.ToUpper(name)]
	if !ok {
		return lipgloss.Style{}, fmt.Errorf("unknown color name %q", name)
	}
	return lipgloss.NewStyle().Foreground(c), nil
}

// Highlighter pairs a literal phrase with the style used to display it.
type Highlighter struct {
	Text  string
	Style lipgloss.Style
}

// Apply styles every occurrence of the phrase within line, leaving the
// rest of the line unstyled.
func (h Highlighter) Apply(line string) string {
	if h.Text == "" || !strings.Contains(line, h.Text) {
		return line
	}
	return strings.ReplaceAll(line, h.Text, h.Style.Render(h.Text))
}
