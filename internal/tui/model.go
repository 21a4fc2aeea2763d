// Package tui is the interactive category and memo browser.
package tui

import (
	"iter"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
)

// Source is the read side of the memo store.
type Source interface {
	Categories() ([]string, error)
	ArchivedCategories() ([]string, error)
	List(category string) (iter.Seq2[memo.Memo, error], error)
	ListArchived(category string) (iter.Seq2[memo.Memo, error], error)
}

// AppState definitions
type AppState int

const (
	StateCategories AppState = iota
	StateMemos
	StateFilter
)

// maxMemos bounds how much of a category's history is loaded at once.
const maxMemos = 500

type Model struct {
	source     Source
	state      AppState
	archived   bool
	categories []string
	cursor     int
	category   string
	memos      []memo.Memo
	memoCursor int
	expanded   bool
	filter     textinput.Model
	err        error
	quitting   bool
}

func New(source Source) Model {
	ti := textinput.New()
	ti.Placeholder = "filter memos"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{source: source, filter: ti}
	m.loadCategories()
	return m
}

// Run starts the browser on the terminal and blocks until it exits.
func Run(source Source) error {
	_, err := tea.NewProgram(New(source)).Run()
	return err
}

func (m *Model) loadCategories() {
	list := m.source.Categories
	if m.archived {
		list = m.source.ArchivedCategories
	}
	m.categories, m.err = list()
	m.cursor = 0
}

func (m *Model) loadMemos(category string) {
	list := m.source.List
	if m.archived {
		list = m.source.ListArchived
	}

	m.category = category
	m.memos = nil
	m.memoCursor = 0
	m.expanded = false

	seq, err := list(category)
	if err != nil {
		m.err = err
		return
	}
	for entry, err := range seq {
		if err != nil {
			m.err = err
			return
		}
		m.memos = append(m.memos, entry)
		if len(m.memos) == maxMemos {
			break
		}
	}
	m.err = nil
}

// visible returns the memos matching the current filter.
func (m Model) visible() []memo.Memo {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return m.memos
	}
	var out []memo.Memo
	for _, entry := range m.memos {
		if strings.Contains(strings.ToLower(entry.Message), needle) {
			out = append(out, entry)
		}
	}
	return out
}

func (m Model) namespace() string {
	if m.archived {
		return "archived"
	}
	return "active"
}
