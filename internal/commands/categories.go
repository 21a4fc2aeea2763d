package commands

import (
	"fmt"
	"io"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
)

// categoriesCommand lists either the active or the archived namespace.
type categoriesCommand struct {
	archived bool
}

func (c categoriesCommand) Command() string {
	if c.archived {
		return "archive-categories"
	}
	return "categories"
}

func (c categoriesCommand) Description() string {
	if c.archived {
		return "List archived categories [--json|--format F]"
	}
	return "List active categories [--json|--format F]"
}

func (categoriesCommand) BoolFlags() []string {
	return []string{"json"}
}

func (categoriesCommand) ValidateArgs(args map[string]any) error {
	_, err := outputFormat(args, "text")
	return err
}

func (c categoriesCommand) Execute(cfg *config.Config, args map[string]any) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	format, err := outputFormat(args, s.cfg.Output)
	if err != nil {
		return err
	}

	list := s.store.Categories
	if c.archived {
		list = s.store.ArchivedCategories
	}
	names, err := list()
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}

	return render(stdout, format, names, func(w io.Writer) error {
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		return nil
	})
}

func init() {
	registerCommand(categoriesCommand{}, "list-categories")
	registerCommand(categoriesCommand{archived: true})
}
