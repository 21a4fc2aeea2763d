package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/gogit"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/memo"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
)

var errNotRepo = errors.New("not a git repository (or any of the parent directories)")

// configLoader reads the configuration file; tests count calls through it.
var configLoader = config.Load

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(args map[string]any) (*config.Config, error) {
	path, _ := arg.String(args, "config")
	cfg, err := configLoader(path)
	if err != nil {
		return nil, err
	}

	if backend, ok := arg.String(args, "backend"); ok {
		cfg.Backend = backend
	}
	if arg.Bool(args, "verbose") || arg.Bool(args, "v") {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is everything a command needs to talk to the current repository.
type session struct {
	cfg      *config.Config
	root     string
	store    *memo.Store
	identity memo.IdentityProvider
	// git is the exec wrapper; push, fetch and hook paths always use it
	// because they need the user's git transport and hooks configuration.
	git *gitUtil.Repo
}

func openSession(cfg *config.Config) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	s := &session{cfg: cfg, git: gitUtil.NewRepo(cwd, cfg.GitBinary)}

	var backend memo.Backend
	var fallback gitUtil.IdentitySource
	switch cfg.Backend {
	case config.BackendGoGit:
		b, err := gogit.Open(cwd)
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errNotRepo
		}
		if err != nil {
			return nil, err
		}
		backend = b
		fallback = gogit.ConfigIdentity{Repo: b.Repository()}
		s.root = cwd
		if wt, err := b.Repository().Worktree(); err == nil {
			s.root = wt.Filesystem.Root()
		}
	default:
		if !s.git.IsGitRepo() {
			return nil, errNotRepo
		}
		root, err := s.git.Root()
		if err != nil {
			return nil, err
		}
		backend = s.git
		fallback = gitUtil.ConfigIdentity{Repo: s.git}
		s.root = root
	}

	s.identity = fallback
	if cfg.HasIdentity() {
		s.identity = gitUtil.FallbackIdentity{gitUtil.StaticIdentity(cfg.Identity), fallback}
	}
	s.store = memo.NewStore(backend, s.identity, memo.WithRetries(cfg.Retries))
	return s, nil
}
