package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hop/pkg/index"
	"hop/pkg/match"
)

// pickerModel is the Bubble Tea model for the interactive picker. The list
// re-ranks on every keystroke and reloads when another process writes the
// index, so the view tracks both the query and the data as they change.
type pickerModel struct {
	input textinput.Model
	env   *runtimeEnv
	ix    *index.Index
	opts  match.Options

	results  []match.Result
	cursor   int
	queryErr string

	selected string
	aborted  bool

	width  int
	height int
	theme  Theme
}

// newPickerModel seeds the input with the terms from the command line, so
// the picker opens already narrowed to what the user typed.
func newPickerModel(env *runtimeEnv, ix *index.Index, terms []string, opts match.Options) pickerModel {
	theme := DefaultTheme()

	input := textinput.New()
	input.Prompt = "hop> "
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Prompt)
	input.SetValue(strings.Join(terms, " "))
	input.Focus()
	input.CursorEnd()

	m := pickerModel{
		input: input,
		env:   env,
		ix:    ix,
		opts:  opts,
		theme: theme,
	}
	m.refresh()
	return m
}

// refresh recompiles the typed query and re-ranks. A pattern that does not
// compile keeps the previous results on screen with the error in the footer,
// so a half-typed regex never blanks the list.
func (m *pickerModel) refresh() {
	q, err := match.Compile(strings.Fields(m.input.Value()))
	if err != nil {
		m.queryErr = err.Error()
		return
	}
	m.queryErr = ""
	m.results = match.Search(m.ix, q, m.opts)
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, watchDataFile(m.env.store.Path))
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dataChangedMsg:
		// Another process wrote the index. Reload, re-rank the current
		// query against it, and re-arm the watcher.
		if ix, _, err := m.env.store.Load(); err == nil {
			m.ix = ix
			m.refresh()
		}
		return m, watchDataFile(m.env.store.Path)
	}
	return m, nil
}

// handleKey processes keyboard input; anything that is not navigation or a
// terminator feeds the text input and re-ranks.
func (m pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit

	case "enter":
		if len(m.results) == 0 {
			return m, nil
		}
		m.selected = m.results[m.cursor].Path
		return m, tea.Quit

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

// View implements tea.Model.
func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	rows := m.visibleRows()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := start + rows
	if end > len(m.results) {
		end = len(m.results)
	}

	scoreStyle := lipgloss.NewStyle().Foreground(m.theme.Score)
	selectedStyle := lipgloss.NewStyle().Foreground(m.theme.Selected).Bold(true)
	lineStyle := lipgloss.NewStyle()
	if m.width > 0 {
		// Truncate rather than wrap; a wrapped path throws off the cursor
		// math.
		lineStyle = lineStyle.MaxWidth(m.width)
	}
	for i := start; i < end; i++ {
		r := m.results[i]
		score := fmt.Sprintf("%10.3f", r.Score)
		var line string
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("▸ %s  %s", score, r.Path))
		} else {
			line = fmt.Sprintf("  %s  %s", scoreStyle.Render(score), r.Path)
		}
		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m pickerModel) footer() string {
	if m.queryErr != "" {
		return lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.queryErr)
	}
	if len(m.results) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("no matches")
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("↑↓ navigate, Enter to jump, Esc to cancel")
}

// visibleRows returns how many result lines fit between the prompt and the
// footer. Before the first WindowSizeMsg the height is unknown; ten rows
// covers the common case.
func (m pickerModel) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	rows := m.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// runPicker drives the interactive picker to completion. The program draws
// on stderr so stdout carries nothing but the chosen path; shell hooks read
// the selection through command substitution.
func runPicker(env *runtimeEnv, ix *index.Index, terms []string, opts match.Options) (string, error) {
	p := tea.NewProgram(newPickerModel(env, ix, terms, opts), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted || m.selected == "" {
		return "", errNoSelection
	}
	return m.selected, nil
}
