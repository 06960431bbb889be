// Package tui is a terminal front end for a console session.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kurobon/gitbttf/internal/console"
	"github.com/kurobon/gitbttf/internal/git"
)

// chromeHeight is the rows used by the title, status and input box.
const chromeHeight = 6

type Model struct {
	session  *console.Session
	input    textinput.Model
	viewport viewport.Model
	ready    bool

	// history of submitted inputs, oldest first
	history []string
	histIdx int

	notice   string
	quitting bool
}

// commandDoneMsg carries the outcome of a submitted line.
type commandDoneMsg struct {
	resp *console.Response
	err  error
}

func NewModel(sess *console.Session) Model {
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.Placeholder = "git init"
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		session:  sess,
		input:    ti,
		viewport: viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.input.Width = msg.Width - 8
		m.ready = true
		m.refresh()
		return m, nil

	case commandDoneMsg:
		m.notice = ""
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	m.history = append(m.history, line)
	m.histIdx = len(m.history)

	switch strings.ToLower(line) {
	case "exit", "salir", "quit":
		m.quitting = true
		return m, tea.Quit
	}
	return m, m.run(line)
}

// run executes line against the session. Lines starting with "/" drive the
// session itself: /reset, /demo, /pantalla N and /libre.
func (m Model) run(line string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx := context.Background()
		if !strings.HasPrefix(line, "/") {
			return commandDoneMsg{resp: sess.Execute(ctx, line)}
		}

		fields := strings.Fields(strings.TrimPrefix(line, "/"))
		switch fields[0] {
		case "reset":
			return commandDoneMsg{resp: sess.Reset(ctx)}
		case "demo":
			return commandDoneMsg{resp: sess.LoadDemo(ctx)}
		case "libre":
			sess.StopScreen()
			return commandDoneMsg{}
		case "pantalla":
			if len(fields) < 2 {
				return commandDoneMsg{err: fmt.Errorf("uso: /pantalla <n>")}
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return commandDoneMsg{err: fmt.Errorf("pantalla inválida: %s", fields[1])}
			}
			resp, err := sess.StartScreen(id)
			return commandDoneMsg{resp: resp, err: err}
		}
		return commandDoneMsg{err: fmt.Errorf("comando desconocido: /%s", fields[0])}
	}
}

// recall walks the input history; past the newest entry the input empties.
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.histIdx = min(max(m.histIdx+delta, 0), len(m.history))
	if m.histIdx == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	lines := m.session.Transcript()
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = renderLine(l)
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) status() string {
	snap := m.session.Snapshot()
	branch := "-"
	if snap.Repository.Initialized {
		branch = snap.Repository.CurrentBranch
	}
	s := fmt.Sprintf("rama: %s  commits: %d", branch, len(snap.Repository.Commits))
	if ex := snap.Exercise; ex != nil {
		s += fmt.Sprintf("  │  %s %d/%d", ex.Title, min(ex.Progress.Current, ex.Progress.Total), ex.Progress.Total)
	}
	return s
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("⚡ Git to the Future"))
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(renderLine(git.Line{Text: m.notice, Severity: git.SeverityError}))
	} else {
		b.WriteString(helpStyle.Render("enter: ejecutar • ↑/↓: historial • /pantalla n • /demo • /reset • esc: salir"))
	}
	return appStyle.Render(b.String())
}
