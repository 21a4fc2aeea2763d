package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type archiveCommand struct{}

func (archiveCommand) Command() string {
	return "archive"
}

func (archiveCommand) Description() string {
	return "Move a category to refs/archive: archive <category>"
}

func (archiveCommand) ValidateArgs(args map[string]any) error {
	if err := requirePositional(args, 1, "category"); err != nil {
		return err
	}
	return memo.ValidateCategory(arg.Strings(args)[0])
}

func (archiveCommand) Execute(cfg *config.Config, args map[string]any) error {
	category := arg.Strings(args)[0]

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	if err := s.store.Archive(category); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Archived %s to %s\n", memo.ActiveRef(category), memo.ArchiveRef(category))
	return nil
}

func init() {
	registerCommand(archiveCommand{})
}
