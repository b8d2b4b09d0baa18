package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController feeds the progress display from a scoring loop. A nil
// controller is valid and drops every update, which is what StartProgress
// returns outside interactive mode.
type ProgressController struct {
	program *tea.Program
}

// StartProgress launches the progress display, or returns nil when output
// is not an interactive terminal.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	p := tea.NewProgram(newRunModel(), tea.WithOutput(ui.ErrWriter))
	go func() {
		_, _ = p.Run()
	}()
	return &ProgressController{program: p}
}

// emit sends msg into the program when one is attached.
func (pc *ProgressController) emit(msg tea.Msg) {
	if pc != nil && pc.program != nil {
		pc.program.Send(msg)
	}
}

// SetStage moves the display to the given run stage.
func (pc *ProgressController) SetStage(stage Stage) {
	pc.emit(stageChangedMsg(stage))
}

// SetOperation names the work shown next to the spinner.
func (pc *ProgressController) SetOperation(op string) {
	pc.emit(operationMsg(op))
}

// SetListingCount fixes the denominator of the completion bar.
func (pc *ProgressController) SetListingCount(n int) {
	pc.emit(queueSizeMsg(n))
}

// ListingStart announces the listing now being evaluated.
func (pc *ProgressController) ListingStart(name string) {
	pc.emit(listingBeganMsg(fmt.Sprintf("Evaluating %s...", name)))
}

// ListingDone advances the completion bar by one listing.
func (pc *ProgressController) ListingDone() {
	pc.emit(listingClosedMsg{})
}

// Done shuts the display down and blocks until the terminal is restored.
func (pc *ProgressController) Done(err error) {
	if pc == nil || pc.program == nil {
		return
	}
	pc.program.Send(runClosedMsg{err: err})
	pc.program.Wait()
}

// SimpleSpinner is a single-line spinner for operations with no useful
// progress breakdown.
type SimpleSpinner struct {
	program *tea.Program
	done    chan struct{}
}

type simpleSpinnerModel struct {
	spin    spinner.Model
	message string
	closing bool
}

func (m simpleSpinnerModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m simpleSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closing = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case runClosedMsg:
		m.closing = true
		return m, tea.Quit
	}
	return m, nil
}

func (m simpleSpinnerModel) View() string {
	if m.closing {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spin.View(), m.message)
}

// StartSimpleSpinner shows message with a spinner until Stop is called.
// Outside interactive mode it prints the message once and returns nil;
// Stop on a nil spinner is a no-op.
func (ui *UI) StartSimpleSpinner(w io.Writer, message string) *SimpleSpinner {
	if ui.Mode != OutputModeInteractive {
		fmt.Fprintln(w, message)
		return nil
	}

	p := tea.NewProgram(
		simpleSpinnerModel{spin: accentSpinner(), message: message},
		tea.WithOutput(w),
	)
	ss := &SimpleSpinner{program: p, done: make(chan struct{})}
	go func() {
		_, _ = p.Run()
		close(ss.done)
	}()
	return ss
}

// Stop ends the spinner and waits for the terminal to be restored.
func (ss *SimpleSpinner) Stop() {
	if ss == nil || ss.program == nil {
		return
	}
	ss.program.Send(runClosedMsg{})
	<-ss.done
}
