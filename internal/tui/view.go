package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var s strings.Builder

	title := "git-memo"
	if m.state != StateCategories {
		title += " / " + m.category
	}
	s.WriteString(titleBorderStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(title),
			infoStyle.Render(m.namespace()+" categories"),
		),
	))
	s.WriteString("\n")

	switch m.state {
	case StateCategories:
		m.viewCategories(&s)
	default:
		m.viewMemos(&s)
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	return appStyle.Render(s.String())
}

func (m Model) viewCategories(s *strings.Builder) {
	if len(m.categories) == 0 {
		s.WriteString(infoStyle.Render(fmt.Sprintf("No %s categories.", m.namespace())) + "\n")
	}
	for i, c := range m.categories {
		s.WriteString(renderItem(i == m.cursor, c) + "\n")
	}
	s.WriteString("\n" + infoStyle.Render("enter: open • tab: toggle archived • q: quit") + "\n")
}

func (m Model) viewMemos(s *strings.Builder) {
	if m.state == StateFilter || m.filter.Value() != "" {
		s.WriteString(inputStyle.Render(m.filter.View()) + "\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		s.WriteString(infoStyle.Render("No memos.") + "\n")
	}
	for i, entry := range visible {
		line := fmt.Sprintf("%s %s  %s",
			idStyle.Render(shortID(entry.ID)),
			entry.Timestamp.Local().Format("2006-01-02 15:04"),
			entry.Summary(),
		)
		s.WriteString(renderItem(i == m.memoCursor, line) + "\n")
	}
	if len(m.memos) == maxMemos {
		s.WriteString(infoStyle.Render(fmt.Sprintf("(showing the %d most recent)", maxMemos)) + "\n")
	}

	if m.expanded && m.memoCursor < len(visible) {
		entry := visible[m.memoCursor]
		s.WriteString(detailStyle.Render(fmt.Sprintf("%s\n%s <%s>\n\n%s",
			entry.ID, entry.Author, entry.Email, entry.Message)) + "\n")
	}

	s.WriteString("\n" + infoStyle.Render("enter: details • /: filter • esc: back • q: quit") + "\n")
}

func renderItem(selected bool, text string) string {
	if selected {
		return selectedItemStyle.Render("> " + text)
	}
	return itemStyle.Render(text)
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
