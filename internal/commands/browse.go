package commands

import (
	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/tui"
)

type browseCommand struct{}

func (browseCommand) Command() string {
	return "browse"
}

func (browseCommand) Description() string {
	return "Browse categories and memos interactively"
}

func (browseCommand) ValidateArgs(args map[string]any) error {
	return nil
}

func (browseCommand) Execute(cfg *config.Config, args map[string]any) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	return tui.Run(s.store)
}

func init() {
	registerCommand(browseCommand{})
}
