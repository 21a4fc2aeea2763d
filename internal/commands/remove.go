package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type removeCommand struct{}

func (removeCommand) Command() string {
	return "remove"
}

func (removeCommand) Description() string {
	return "Delete a category and its memo chain: remove <category>"
}

func (removeCommand) ValidateArgs(args map[string]any) error {
	if err := requirePositional(args, 1, "category"); err != nil {
		return err
	}
	return memo.ValidateCategory(arg.Strings(args)[0])
}

func (removeCommand) Execute(cfg *config.Config, args map[string]any) error {
	category := arg.Strings(args)[0]

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	if err := s.store.Remove(category); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Removed %s\n", memo.ActiveRef(category))
	return nil
}

func init() {
	registerCommand(removeCommand{})
}
