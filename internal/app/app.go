// Package app is the bundled sidebar front-end: a bubbletea model that
// drives the tree engine and renders its surface buffer. It stands in for
// the external text surface a host editor would provide.
package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treeline-dev/treeline/internal/config"
	"github.com/treeline-dev/treeline/internal/surface"
	"github.com/treeline-dev/treeline/internal/theme"
	"github.com/treeline-dev/treeline/internal/tree"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptRename
	promptNewFile
	promptRemove
)

// Model is the sidebar application.
type Model struct {
	mgr    *tree.Manager
	treeID int
	buf    *surface.Buffer

	cursor int
	offset int
	width  int
	height int

	prompt promptKind
	input  textinput.Model
	status string
	keys   KeyMap
}

// New creates the application rooted at path.
func New(path string, cfg config.Config) (*Model, error) {
	mgr := tree.NewManager()
	buf := surface.NewBuffer()
	id, err := mgr.NewTree(path, buf, cfg)
	if err != nil {
		mgr.CloseAll()
		return nil, err
	}

	ti := textinput.New()
	ti.CharLimit = 255

	m := &Model{
		mgr:    mgr,
		treeID: id,
		buf:    buf,
		keys:   DefaultKeyMap(),
		input:  ti,
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.mgr.CloseAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.ensureVisible()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = m.buf.Len() - 1
		m.ensureVisible()

	case key.Matches(msg, m.keys.Enter):
		m.runAction("drop", nil)
	case key.Matches(msg, m.keys.Toggle):
		m.runAction("open_or_close_tree", nil)
	case key.Matches(msg, m.keys.CloseDir):
		m.runAction("close_tree", nil)
	case key.Matches(msg, m.keys.RootUp):
		m.runAction("cd", []string{".."})
	case key.Matches(msg, m.keys.RootInto):
		m.runAction("open_directory", nil)

	case key.Matches(msg, m.keys.Rename):
		return m.openPrompt(promptRename, "rename to: ")
	case key.Matches(msg, m.keys.NewFile):
		return m.openPrompt(promptNewFile, "new (trailing / for dir): ")
	case key.Matches(msg, m.keys.Remove):
		return m.openPrompt(promptRemove, "remove? type yes: ")

	case key.Matches(msg, m.keys.Select):
		m.runAction("toggle_select", nil)
		m.moveCursor(1)
	case key.Matches(msg, m.keys.SelectAll):
		m.runAction("toggle_select_all", nil)
	case key.Matches(msg, m.keys.ClearSelect):
		m.runAction("clear_select_all", nil)

	case key.Matches(msg, m.keys.Yank):
		m.runAction("yank_path", nil)
	case key.Matches(msg, m.keys.Copy):
		m.runAction("copy", nil)
		m.status = "copied to clipboard"
	case key.Matches(msg, m.keys.Move):
		m.runAction("move", nil)
		m.status = "staged for move"
	case key.Matches(msg, m.keys.Paste):
		m.runAction("paste", nil)

	case key.Matches(msg, m.keys.Hidden):
		m.runAction("toggle_ignored_files", nil)
	case key.Matches(msg, m.keys.Redraw):
		m.runAction("redraw", nil)
	case key.Matches(msg, m.keys.GitRefresh):
		m.runAction("update_git_map", nil)
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		kind := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		switch kind {
		case promptRename:
			m.runAction("rename", []string{value})
		case promptNewFile:
			m.runAction("new_file", []string{value})
		case promptRemove:
			if value == "yes" {
				m.runAction("remove", nil)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runAction funnels everything through the engine, keeping the app cursor
// and the surface cursor in step.
func (m *Model) runAction(name string, args []string) {
	_ = m.buf.SetCursor(m.cursor)
	if err := m.mgr.Action(m.treeID, name, m.cursor, args); err != nil {
		m.status = err.Error()
	}
	if t, err := m.mgr.Tree(m.treeID); err == nil {
		t.Flush()
	}
	if cur, err := m.buf.Cursor(); err == nil {
		m.cursor = cur
	}
	m.clampCursor()
	m.ensureVisible()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ensureVisible()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.buf.Len() {
		m.cursor = m.buf.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ensureVisible() {
	h := m.viewHeight()
	if h <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m *Model) viewHeight() int {
	return m.height - 1 // status line
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	h := m.viewHeight()
	var b strings.Builder
	for i := m.offset; i < m.offset+h; i++ {
		if i < m.buf.Len() {
			b.WriteString(m.renderRow(i))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderRow(row int) string {
	line := m.buf.Line(row)
	rendered := renderSpans(line, m.buf.Spans(row))
	if row == m.cursor {
		return theme.CursorLine.Render(rendered)
	}
	return rendered
}

// renderSpans styles the byte ranges of line that carry highlight groups.
// Spans may be stale relative to the line; out-of-bounds ranges are
// dropped rather than trusted.
func renderSpans(line string, spans []surface.Span) string {
	if len(spans) == 0 {
		return line
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].ByteStart < spans[j].ByteStart })

	var b strings.Builder
	at := 0
	for _, sp := range spans {
		if sp.ByteStart < at || sp.ByteEnd > len(line) || sp.ByteStart >= sp.ByteEnd {
			continue
		}
		b.WriteString(line[at:sp.ByteStart])
		b.WriteString(theme.Style(sp.Group).Render(line[sp.ByteStart:sp.ByteEnd]))
		at = sp.ByteEnd
	}
	b.WriteString(line[at:])
	return b.String()
}

func (m *Model) renderStatus() string {
	if m.prompt != promptNone {
		return m.input.View()
	}
	status := m.status
	if status == "" {
		if t, err := m.mgr.Tree(m.treeID); err == nil {
			sel := t.Selection().Len()
			if sel > 0 {
				status = fmt.Sprintf("%s  (%d selected)", t.Root(), sel)
			} else {
				status = t.Root()
			}
		}
	}
	return lipgloss.NewStyle().Foreground(theme.Grey).Render(status)
}
