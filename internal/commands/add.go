package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type addCommand struct{}

func init() {
	registerCommand(addCommand{})
}

func (addCommand) Command() string {
	return "add"
}

func (addCommand) Description() string {
	return "Record a memo: add [flags] <category> <message|->"
}

// TextAfter makes every word after the category part of the message.
func (addCommand) TextAfter() int {
	return 1
}

func (addCommand) ValidateArgs(args map[string]any) error {
	if err := requirePositional(args, 2, "category", "message"); err != nil {
		return err
	}
	return memo.ValidateCategory(arg.Strings(args)[0])
}

func (addCommand) Execute(cfg *config.Config, args map[string]any) error {
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

	m, err := s.store.Add(category, message)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Recorded memo %s under %s\n", m.ID, memo.ActiveRef(category))
	return nil
}
