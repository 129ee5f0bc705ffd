package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type resolveDoneMsg struct {
	err error
}

type resolveSpinnerModel struct {
	spinner spinner.Model
	label   string
	resolve tea.Cmd
	err     error
	done    bool
}

func newResolveSpinnerModel(label string, resolve tea.Cmd) resolveSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return resolveSpinnerModel{
		spinner: s,
		label:   label,
		resolve: resolve,
	}
}

func (m resolveSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolve)
}

func (m resolveSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case resolveDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m resolveSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runResolveSpinner animates on output until resolve returns.
func runResolveSpinner(ctx context.Context, output io.Writer, resolve func(context.Context) error) error {
	resolveCmd := func() tea.Msg {
		return resolveDoneMsg{err: resolve(ctx)}
	}

	p := tea.NewProgram(
		newResolveSpinnerModel("Querying balance...", resolveCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(resolveSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
