package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/hooks"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type installHookCommand struct{}

func (installHookCommand) Command() string {
	return "install-hook"
}

func (installHookCommand) Description() string {
	return "Install a git hook that pushes memos: install-hook [--remote R] [--hook NAME] [--force]"
}

func (installHookCommand) BoolFlags() []string {
	return []string{"force"}
}

func (installHookCommand) ValidateArgs(args map[string]any) error {
	for _, key := range []string{"remote", "hook"} {
		if _, present := args[key]; !present {
			continue
		}
		if v, ok := arg.String(args, key); !ok || v == "" {
			return fmt.Errorf("--%s requires a value", key)
		}
	}
	return nil
}

func (installHookCommand) Execute(cfg *config.Config, args map[string]any) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	remote := remoteArg(args, s.cfg.Remote)
	name := s.cfg.Hook.Name
	if hook, ok := arg.String(args, "hook"); ok {
		name = hook
	}

	dir, err := s.git.HooksDir()
	if err != nil {
		return err
	}
	path, err := hooks.Install(dir, name, remote, arg.Bool(args, "force"))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Installed %s hook at %s (pushes to %s)\n", name, path, remote)
	return nil
}

func init() {
	registerCommand(installHookCommand{})
}
