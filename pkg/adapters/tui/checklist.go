// Package tui renders the checklist of a session as an interactive terminal UI.
package tui

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/session"
)

// Session is the part of session.Session the UI drives.
type Session interface {
	Current() *core.Collection
	Toggle(ctx context.Context, identity string, line int, content string, checked bool) error
	ScanAndSave(ctx context.Context, progress core.ProgressFunc) (*session.Report, error)
	Status() session.Status
}

// Editor builds the process that opens a note location.
type Editor interface {
	Cmd(ctx context.Context, path string, line int) (*exec.Cmd, error)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Strikethrough(true)

	todoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// row is one selectable note.
type row struct {
	identity string
	display  string
	note     core.Note
}

// Message types
type toggledMsg struct{ err error }
type scannedMsg struct {
	report *session.Report
	err    error
}
type editorClosedMsg struct{ err error }

// Model is the bubbletea model of the checklist view.
type Model struct {
	ctx      context.Context
	session  Session
	editor   Editor
	rows     []row
	cursor   int
	message  string
	err      error
	quitting bool
}

// NewModel creates a model showing the current collection of s.
// editor may be nil, which disables opening notes.
func NewModel(ctx context.Context, s Session, editor Editor) Model {
	m := Model{ctx: ctx, session: s, editor: editor}
	m.refresh()
	return m
}

// Run starts the interactive UI and blocks until the user quits.
func Run(ctx context.Context, s Session, editor Editor) error {
	program := tea.NewProgram(NewModel(ctx, s, editor), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (m *Model) refresh() {
	m.rows = nil
	for _, f := range m.session.Current().Files() {
		for _, n := range f.Notes {
			m.rows = append(m.rows, row{identity: f.Identity, display: f.Display, note: n})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.rows)-1, 0)
		case " ", "x":
			return m, m.toggle()
		case "enter", "o":
			return m, m.open()
		case "r":
			m.message = "scanning..."
			return m, m.rescan()
		}

	case toggledMsg:
		m.err = msg.err
		m.refresh()

	case scannedMsg:
		m.err = msg.err
		if msg.report != nil {
			m.message = fmt.Sprintf("%d notes in %d files", msg.report.Notes, msg.report.Files)
			if msg.report.NoFiles {
				m.message = "no files to scan"
			}
		}
		m.refresh()

	case editorClosedMsg:
		m.err = msg.err
	}

	return m, nil
}

func (m Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) toggle() tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		err := m.session.Toggle(m.ctx, r.identity, r.note.Line, r.note.Content, !r.note.Checked)
		return toggledMsg{err: err}
	}
}

func (m Model) open() tea.Cmd {
	r, ok := m.selected()
	if !ok || m.editor == nil {
		return nil
	}
	cmd, err := m.editor.Cmd(m.ctx, r.identity, r.note.Line)
	if err != nil {
		return func() tea.Msg { return editorClosedMsg{err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorClosedMsg{err: err}
	})
}

func (m Model) rescan() tea.Cmd {
	return func() tea.Msg {
		report, err := m.session.ScanAndSave(m.ctx, nil)
		return scannedMsg{report: report, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	checked := 0
	for _, r := range m.rows {
		if r.note.Checked {
			checked++
		}
	}
	b.WriteString(titleStyle.Render("Audit Notes"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d checked  %s", checked, len(m.rows), m.session.Status())))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("No notes found. Press r to scan.") + "\n")
	}

	last := ""
	for i, r := range m.rows {
		if r.identity != last {
			if last != "" {
				b.WriteString("\n")
			}
			b.WriteString(fileStyle.Render(r.display) + "\n")
			last = r.identity
		}

		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		text := todoStyle.Render(r.note.Content)
		if r.note.Checked {
			box = "[x]"
			text = checkedStyle.Render(r.note.Content)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", pointer, box, lineStyle.Render(fmt.Sprintf("L%-4d", r.note.Line)), text))
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	} else if m.message != "" {
		b.WriteString(dimStyle.Render(m.message) + "\n")
	}
	b.WriteString(dimStyle.Render("[space] toggle  [enter] open  [r] rescan  [q] quit"))
	return b.String()
}
