// Package output renders CLI results for terminals, pipes, and scripts.
//
// Output adapts to the environment: styled text on a TTY, plain text when
// piped, and machine-readable JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output rendering mode.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	FilePath lipgloss.Style
}

func newStyles(colored bool) *Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Warning: plain, Info: plain,
			Success: plain, Muted: plain, Bold: plain, FilePath: plain,
		}
	}
	return &Styles{
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:     lipgloss.NewStyle().Bold(true),
		FilePath: lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    Mode
	colored bool
	styles  *Styles
}

// NewRenderer builds a renderer. ModeAuto resolves to text, with color
// only when stdout is a terminal that supports it.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	colored := false
	if mode == ModeAuto || mode == ModeText {
		colored = isColorTerminal(out)
	}
	return &Renderer{
		out:     out,
		errOut:  errOut,
		mode:    mode,
		colored: colored,
		styles:  newStyles(colored),
	}
}

// NoColor disables styling regardless of terminal detection.
func (r *Renderer) NoColor() *Renderer {
	r.colored = false
	r.styles = newStyles(false)
	return r
}

func isColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// EffectiveMode returns the resolved mode: ModeAuto becomes ModeText.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles { return r.styles }

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, r.styles.Success.Render("✓ ")+msg)
}

// Errorf writes an error line to stderr.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a table to stdout. On a color terminal it gets a rounded
// frame; otherwise a plain machine-friendly layout.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(header)
	for _, row := range rows {
		t.AppendRow(row)
	}
	if r.colored {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.Render()
}
