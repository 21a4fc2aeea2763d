package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "q":
		if m.state != StateFilter {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateCategories:
		return m.updateCategories(key)
	case StateMemos:
		return m.updateMemos(key)
	case StateFilter:
		return m.updateFilter(key)
	}
	return m, nil
}

func (m Model) updateCategories(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.categories)-1 {
			m.cursor++
		}
	case "tab":
		m.archived = !m.archived
		m.loadCategories()
	case "enter":
		if len(m.categories) == 0 {
			return m, nil
		}
		m.loadMemos(m.categories[m.cursor])
		m.filter.SetValue("")
		m.state = StateMemos
	}
	return m, nil
}

func (m Model) updateMemos(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()
	switch key.String() {
	case "up", "k":
		if m.memoCursor > 0 {
			m.memoCursor--
			m.expanded = false
		}
	case "down", "j":
		if m.memoCursor < len(visible)-1 {
			m.memoCursor++
			m.expanded = false
		}
	case "enter", " ":
		m.expanded = !m.expanded
	case "/":
		m.state = StateFilter
		cmd := m.filter.Focus()
		return m, cmd
	case "esc", "backspace", "left", "h":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.memoCursor = 0
			return m, nil
		}
		m.state = StateCategories
		m.memos = nil
		m.err = nil
	}
	return m, nil
}

func (m Model) updateFilter(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.filter.Blur()
		m.state = StateMemos
		return m, nil
	case "esc":
		m.filter.SetValue("")
		m.filter.Blur()
		m.state = StateMemos
		m.memoCursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(key)
	m.memoCursor = 0
	return m, cmd
}
