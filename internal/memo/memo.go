package memo

import (
	"strings"
	"time"

	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
)

// Memo is one note: an empty commit whose message is the note text.
type Memo struct {
	ID        string    `json:"id" yaml:"id"`
	Parent    string    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Author    string    `json:"author" yaml:"author"`
	Email     string    `json:"email" yaml:"email"`
	Message   string    `json:"message" yaml:"message"`
}

// Summary returns the first line of the message.
func (m Memo) Summary() string {
	line, _, _ := strings.Cut(m.Message, "\n")
	return line
}

// Match is a memo found by Grep, with the category it belongs to.
type Match struct {
	Category string `json:"category" yaml:"category"`
	Memo     `yaml:",inline"`
}

func memoFromCommit(c *gitUtil.Commit) Memo {
	m := Memo{
		ID:        c.Hash,
		Timestamp: c.Committer.When,
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Message:   decodeMessage(c.Message),
	}
	if len(c.Parents) > 0 {
		m.Parent = c.Parents[0]
	}
	return m
}

// encodeMessage appends the trailing newline git expects of a commit message.
func encodeMessage(text string) string {
	return text + "\n"
}

// decodeMessage reverses encodeMessage.
func decodeMessage(raw string) string {
	return strings.TrimSuffix(raw, "\n")
}
