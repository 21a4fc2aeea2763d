package commands

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type listCommand struct{}

func (listCommand) Command() string {
	return "list"
}

func (listCommand) Description() string {
	return "List memos, newest first: list <category> [--limit N] [--archived] [--json|--format F]"
}

func (listCommand) BoolFlags() []string {
	return []string{"json", "archived"}
}

func (listCommand) ValidateArgs(args map[string]any) error {
	if err := requirePositional(args, 1, "category"); err != nil {
		return err
	}
	if _, err := limit(args); err != nil {
		return err
	}
	if _, err := outputFormat(args, "text"); err != nil {
		return err
	}
	return memo.ValidateCategory(arg.Strings(args)[0])
}

// limit parses --limit; zero means unlimited.
func limit(args map[string]any) (int, error) {
	if _, ok := args["limit"]; !ok {
		return 0, nil
	}
	raw, _ := arg.String(args, "limit")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("--limit must be a positive integer, got %q", raw)
	}
	return n, nil
}

func (listCommand) Execute(cfg *config.Config, args map[string]any) error {
	category := arg.Strings(args)[0]

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	format, err := outputFormat(args, s.cfg.Output)
	if err != nil {
		return err
	}
	n, err := limit(args)
	if err != nil {
		return err
	}

	var seq iter.Seq2[memo.Memo, error]
	if arg.Bool(args, "archived") {
		seq, err = s.store.ListArchived(category)
	} else {
		seq, err = s.store.List(category)
	}
	if err != nil {
		return err
	}

	memos := []memo.Memo{}
	for m, err := range seq {
		if err != nil {
			return err
		}
		memos = append(memos, m)
		if n > 0 && len(memos) == n {
			break
		}
	}

	return render(stdout, format, memos, func(w io.Writer) error {
		for _, m := range memos {
			fmt.Fprintf(w, "%s %s\n", m.ID, m.Summary())
		}
		return nil
	})
}

func init() {
	registerCommand(listCommand{})
}
