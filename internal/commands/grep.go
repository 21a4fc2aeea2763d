package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type grepCommand struct{}

func (grepCommand) Command() string {
	return "grep"
}

func (grepCommand) Description() string {
	return "Search memo messages in every category: grep <pattern> [-i] [--json|--format F]"
}

func (grepCommand) BoolFlags() []string {
	return []string{"json", "i", "ignore-case"}
}

func (grepCommand) ValidateArgs(args map[string]any) error {
	if err := requirePositional(args, 1, "pattern"); err != nil {
		return err
	}
	_, err := outputFormat(args, "text")
	return err
}

func (grepCommand) Execute(cfg *config.Config, args map[string]any) error {
	pattern := strings.Join(arg.Strings(args), " ")

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	format, err := outputFormat(args, s.cfg.Output)
	if err != nil {
		return err
	}

	match := func(message string) bool { return strings.Contains(message, pattern) }
	if arg.Bool(args, "i") || arg.Bool(args, "ignore-case") {
		lower := strings.ToLower(pattern)
		match = func(message string) bool { return strings.Contains(strings.ToLower(message), lower) }
	}

	seq, err := s.store.GrepFunc(match)
	if err != nil {
		return err
	}
	matches, err := memo.Collect(seq)
	if err != nil {
		return err
	}
	if matches == nil {
		matches = []memo.Match{}
	}

	return render(stdout, format, matches, func(w io.Writer) error {
		for _, m := range matches {
			fmt.Fprintf(w, "%s %s %s\n", m.Category, m.ID, m.Summary())
		}
		return nil
	})
}

func init() {
	registerCommand(grepCommand{})
}
