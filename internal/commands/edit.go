package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type editCommand struct{}

func (editCommand) Command() string {
	return "edit"
}

func (editCommand) Description() string {
	return "Replace the latest memo: edit [flags] <category> <message|->"
}

func (editCommand) TextAfter() int {
	return 1
}

func (editCommand) ValidateArgs(args map[string]any) error {
	if err := requirePositional(args, 2, "category", "message"); err != nil {
		return err
	}
	return memo.ValidateCategory(arg.Strings(args)[0])
}

func (editCommand) Execute(cfg *config.Config, args map[string]any) error {
	positional := arg.Strings(args)
	category := positional[0]

	message, err := readMessage(positional[1:])
	if err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	m, err := s.store.Edit(category, message)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Updated memo %s under %s\n", m.ID, memo.ActiveRef(category))
	return nil
}

func init() {
	registerCommand(editCommand{})
}
