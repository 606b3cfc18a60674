// Package view holds the terminal UI models of the console.
package view

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wallet-console/pkg/status"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SnapshotMsg delivers a new lifecycle snapshot to the loading view
type SnapshotMsg status.Snapshot

type tickMsg time.Time

// LoadingModel renders the loading screen for the latest snapshot
type LoadingModel struct {
	view          status.View
	frame         int
	quitWhenReady bool
	seen          bool
}

// NewLoadingModel creates the loading screen. With quitWhenReady the program
// exits as soon as startup finished.
func NewLoadingModel(quitWhenReady bool) LoadingModel {
	return LoadingModel{
		view:          status.Evaluate(status.Snapshot{}),
		quitWhenReady: quitWhenReady,
	}
}

// State returns the currently displayed state
func (m LoadingModel) State() status.View {
	return m.view
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m LoadingModel) Init() tea.Cmd {
	return tick()
}

func (m LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.view = status.Evaluate(status.Snapshot(msg))
		m.seen = true
		if m.quitWhenReady && m.view.Ready {
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LoadingModel) View() string {
	var b strings.Builder

	logo := logoStyle
	if m.view.Style.Connecting {
		logo = connectingLogo
	}
	b.WriteString(logo.Render("wallet-console"))
	b.WriteString("\n\n")

	state := m.view.State
	if headline := state.Headline(); headline != "" {
		line := headlineStyle.Render(headline)
		if state.ShowsSpinner() {
			line += " " + spinnerFrames[m.frame]
		}
		b.WriteString(line)
		b.WriteString("\n")
	} else if m.seen && m.view.Ready {
		b.WriteString(okStyle.Render("Ready"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("q to quit"))

	out := b.String()
	if m.view.Style.ThemePending {
		out = pendingTheme.Render(out)
	}
	return out
}
