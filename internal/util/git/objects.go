package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EmptyTree writes the empty tree object and returns its id.
func (r *Repo) EmptyTree() (string, error) {
	out, err := r.runGit(call{args: []string{"mktree"}, stdin: strings.NewReader("")})
	if err != nil {
		return "", fmt.Errorf("failed to write empty tree: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CreateCommit writes a commit object without touching any ref.
// The message is passed through stdin verbatim.
func (r *Repo) CreateCommit(c NewCommit) (string, error) {
	args := []string{"commit-tree", c.Tree}
	for _, p := range c.Parents {
		args = append(args, "-p", p)
	}
	args = append(args, "-F", "-")

	env := []string{
		"GIT_AUTHOR_NAME=" + c.Author.Name,
		"GIT_AUTHOR_EMAIL=" + c.Author.Email,
		"GIT_AUTHOR_DATE=" + formatDate(c.Author.When),
		"GIT_COMMITTER_NAME=" + c.Committer.Name,
		"GIT_COMMITTER_EMAIL=" + c.Committer.Email,
		"GIT_COMMITTER_DATE=" + formatDate(c.Committer.When),
	}

	out, err := r.runGit(call{args: args, stdin: strings.NewReader(c.Message), env: env})
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ReadCommit reads and parses a commit object.
func (r *Repo) ReadCommit(hash string) (*Commit, error) {
	out, err := r.runGit(call{args: []string{"cat-file", "commit", hash}})
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	c, err := parseCommit(out)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}
	c.Hash = hash
	return c, nil
}

// formatDate renders t in git's internal "<unix> <+hhmm>" date format.
func formatDate(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return fmt.Sprintf("%d %s", t.Unix(), t.Format("-0700"))
}

// parseCommit parses the raw body printed by `git cat-file commit`.
func parseCommit(raw string) (*Commit, error) {
	header, message, ok := strings.Cut(raw, "\n\n")
	if !ok {
		// commit with an empty message and no trailing blank line
		header, message = strings.TrimSuffix(raw, "\n"), ""
	}

	c := &Commit{Message: message}
	for _, line := range strings.Split(header, "\n") {
		// continuation of a multi-line header such as gpgsig
		if strings.HasPrefix(line, " ") {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "tree":
			c.Tree = value
		case "parent":
			c.Parents = append(c.Parents, value)
		case "author":
			sig, err := parseSignature(value)
			if err != nil {
				return nil, fmt.Errorf("bad author: %w", err)
			}
			c.Author = sig
		case "committer":
			sig, err := parseSignature(value)
			if err != nil {
				return nil, fmt.Errorf("bad committer: %w", err)
			}
			c.Committer = sig
		}
	}
	if c.Tree == "" {
		return nil, fmt.Errorf("missing tree header")
	}
	return c, nil
}

// parseSignature parses "Name <email> 1700000000 +0100".
func parseSignature(s string) (Signature, error) {
	open := strings.LastIndex(s, "<")
	closing := strings.LastIndex(s, ">")
	if open < 0 || closing < open {
		return Signature{}, fmt.Errorf("malformed signature %q", s)
	}

	sig := Signature{
		Name:  strings.TrimSpace(s[:open]),
		Email: s[open+1 : closing],
	}

	fields := strings.Fields(s[closing+1:])
	if len(fields) == 0 {
		return sig, nil
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("malformed timestamp in %q", s)
	}
	loc := time.UTC
	if len(fields) > 1 {
		if tz, err := time.Parse("-0700", fields[1]); err == nil {
			_, offset := tz.Zone()
			loc = time.FixedZone("", offset)
		}
	}
	sig.When = time.Unix(secs, 0).In(loc)
	return sig, nil
}
