package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

// memoRefspecs map each memo namespace onto the same namespace remotely.
var memoRefspecs = map[string]string{
	memo.ActivePrefix:  memo.ActivePrefix + "*:" + memo.ActivePrefix + "*",
	memo.ArchivePrefix: memo.ArchivePrefix + "*:" + memo.ArchivePrefix + "*",
}

// remoteArg returns the remote named on the command line or the configured one.
func remoteArg(args map[string]any, fallback string) string {
	if positional := arg.Strings(args); len(positional) > 0 {
		return positional[0]
	}
	if remote, ok := arg.String(args, "remote"); ok {
		return remote
	}
	return fallback
}

type pushCommand struct{}

func (pushCommand) Command() string {
	return "push"
}

func (pushCommand) Description() string {
	return "Push refs/memo/* and refs/archive/* to a remote: push [remote] [--force]"
}

func (pushCommand) BoolFlags() []string {
	return []string{"force", "f"}
}

func (pushCommand) ValidateArgs(args map[string]any) error {
	if len(arg.Strings(args)) > 1 {
		return fmt.Errorf("push takes at most one remote")
	}
	return nil
}

func (pushCommand) Execute(cfg *config.Config, args map[string]any) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	remote := remoteArg(args, s.cfg.Remote)

	var refspecs []string
	active, err := s.store.Categories()
	if err != nil {
		return err
	}
	if len(active) > 0 {
		refspecs = append(refspecs, memoRefspecs[memo.ActivePrefix])
	}
	archived, err := s.store.ArchivedCategories()
	if err != nil {
		return err
	}
	if len(archived) > 0 {
		refspecs = append(refspecs, memoRefspecs[memo.ArchivePrefix])
	}

	if len(refspecs) == 0 {
		fmt.Fprintln(stdout, "No memos to push")
		return nil
	}

	force := arg.Bool(args, "force") || arg.Bool(args, "f")
	if force {
		log.Warn().Msgf("Force-pushing memo refs to %s", remote)
	}
	out, err := s.git.Push(remote, force, refspecs...)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprint(stdout, out)
	}

	fmt.Fprintf(stdout, "Pushed %d active and %d archived categories to %s\n", len(active), len(archived), remote)
	return nil
}

type fetchCommand struct{}

func (fetchCommand) Command() string {
	return "fetch"
}

func (fetchCommand) Description() string {
	return "Fetch refs/memo/* and refs/archive/* from a remote: fetch [remote]"
}

func (fetchCommand) ValidateArgs(args map[string]any) error {
	if len(arg.Strings(args)) > 1 {
		return fmt.Errorf("fetch takes at most one remote")
	}
	return nil
}

func (fetchCommand) Execute(cfg *config.Config, args map[string]any) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	remote := remoteArg(args, s.cfg.Remote)

	out, err := s.git.Fetch(remote, memoRefspecs[memo.ActivePrefix], memoRefspecs[memo.ArchivePrefix])
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprint(stdout, out)
	}

	fmt.Fprintf(stdout, "Fetched memo refs from %s\n", remote)
	return nil
}

func init() {
	registerCommand(pushCommand{})
	registerCommand(fetchCommand{})
}
