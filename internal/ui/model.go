package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage identifies the phase of a scoring run shown by the progress view.
type Stage int

const (
	StageLoadListings Stage = iota
	StageEvaluate
	StageDeepAnalysis
	StageDone
)

// Messages the ProgressController sends into the running program.
type (
	stageChangedMsg  Stage
	operationMsg     string
	queueSizeMsg     int
	listingBeganMsg  string
	listingClosedMsg struct{}
	runClosedMsg     struct{ err error }
)

const maxBarWidth = 60

// accentSpinner is the spinner used by every progress view.
func accentSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("12"))),
	)
}

// runModel renders a spinner, the current stage, and during evaluation a
// completion bar over the listing queue.
type runModel struct {
	stage   Stage
	spin    spinner.Model
	bar     progress.Model
	detail  string
	total   int
	done    int
	width   int
	closing bool
	err     error
}

func newRunModel() runModel {
	return runModel{
		stage: StageLoadListings,
		spin:  accentSpinner(),
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (m runModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closing = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case runClosedMsg:
		m.err = msg.err
		m.closing = true
		return m, tea.Quit
	}

	return m.apply(msg), nil
}

// apply folds a controller message into the run state.
func (m runModel) apply(msg tea.Msg) runModel {
	switch msg := msg.(type) {
	case stageChangedMsg:
		m.stage = Stage(msg)
		m.detail = ""
	case operationMsg:
		m.detail = string(msg)
	case listingBeganMsg:
		m.detail = string(msg)
	case queueSizeMsg:
		m.total = int(msg)
	case listingClosedMsg:
		m.done++
	}
	return m
}

func (m runModel) View() string {
	if m.closing {
		return ""
	}

	switch m.stage {
	case StageLoadListings:
		return m.spin.View() + " Loading listings..."
	case StageEvaluate:
		return m.evaluateView()
	case StageDeepAnalysis:
		line := m.spin.View() + " Running deep conversion analysis"
		if m.detail != "" {
			line += fmt.Sprintf(" (%s)", m.detail)
		}
		return line + "..."
	}
	return ""
}

// evaluateView stacks the completion bar above the current listing line.
func (m runModel) evaluateView() string {
	var sb strings.Builder
	if m.total > 0 {
		sb.WriteString(m.bar.ViewAs(float64(m.done) / float64(m.total)))
		fmt.Fprintf(&sb, " %d/%d\n", m.done, m.total)
	}
	sb.WriteString(m.spin.View())
	sb.WriteString(" ")
	if m.detail != "" {
		sb.WriteString(m.detail)
	} else {
		sb.WriteString("Evaluating...")
	}
	return sb.String()
}
