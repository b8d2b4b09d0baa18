package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode selects how much decoration terminal output carries.
type OutputMode int

const (
	// OutputModeInteractive renders colors, spinners and progress bars.
	OutputModeInteractive OutputMode = iota
	// OutputModePlain strips decoration for piped or captured output.
	OutputModePlain
	// OutputModeJSON emits machine-readable JSON and nothing else.
	OutputModeJSON
)

// UI bundles the writers and styles every command renders through.
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New picks an output mode for w and builds the matching style set.
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

// detectMode maps the format flag and the writer's terminal status to an
// output mode. An explicit json format wins, then TTY detection decides
// between interactive and plain.
func detectMode(w io.Writer, format string) OutputMode {
	if format == "json" {
		return OutputModeJSON
	}
	if isTerminal(w) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether output goes to a live terminal.
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON reports whether the machine-readable mode is active.
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}
