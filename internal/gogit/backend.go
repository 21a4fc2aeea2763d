// Package gogit implements the memo backend on go-git, without a git
// executable. It works on an on-disk repository or on in-memory storage.
package gogit

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog/log"

	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
)

// Backend stores memos through go-git's object and reference storers.
//
// go-git has no multi-ref transactions and its CheckAndSetReference does not
// guard ref creation, so every compare-and-swap runs under mu. This makes
// updates atomic within the process; across processes the exec backend's
// update-ref locking is the stronger guarantee.
type Backend struct {
	repo *git.Repository
	mu   sync.Mutex
}

// Open opens the repository containing dir.
func Open(dir string) (*Backend, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	return &Backend{repo: repo}, nil
}

// NewMemory returns a backend on an empty in-memory repository.
func NewMemory() (*Backend, error) {
	repo, err := git.Init(memory.NewStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init in-memory repository: %w", err)
	}
	return &Backend{repo: repo}, nil
}

// Repository exposes the underlying go-git repository.
func (b *Backend) Repository() *git.Repository { return b.repo }

func (b *Backend) ReadRef(name string) (string, error) {
	ref, err := b.repo.Reference(plumbing.ReferenceName(name), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", fmt.Errorf("%s: %w", name, gitUtil.ErrRefNotFound)
	}
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}

func (b *Backend) ListRefs(prefix string) ([]gitUtil.Ref, error) {
	iter, err := b.repo.Storer.IterReferences()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var refs []gitUtil.Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if ref.Type() == plumbing.HashReference && strings.HasPrefix(name, prefix) {
			refs = append(refs, gitUtil.Ref{Name: name, Hash: ref.Hash().String()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// UpdateRefs checks every expected old value before writing anything.
func (b *Backend) UpdateRefs(reason string, updates ...gitUtil.RefUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range updates {
		current, err := b.ReadRef(u.Name)
		if err != nil && !errors.Is(err, gitUtil.ErrRefNotFound) {
			return err
		}
		if current != u.Old {
			return fmt.Errorf("%s: %w", u.Name, gitUtil.ErrRefChanged)
		}
	}

	for _, u := range updates {
		if err := b.apply(u); err != nil {
			return err
		}
	}
	log.Debug().Str("reason", reason).Int("refs", len(updates)).Msg("Updated refs")
	return nil
}

func (b *Backend) apply(u gitUtil.RefUpdate) error {
	name := plumbing.ReferenceName(u.Name)
	if u.IsDelete() {
		return b.repo.Storer.RemoveReference(name)
	}

	ref := plumbing.NewHashReference(name, plumbing.NewHash(u.New))
	if u.IsCreate() {
		return b.repo.Storer.SetReference(ref)
	}

	old := plumbing.NewHashReference(name, plumbing.NewHash(u.Old))
	err := b.repo.Storer.CheckAndSetReference(ref, old)
	if errors.Is(err, storage.ErrReferenceHasChanged) {
		return fmt.Errorf("%s: %w", u.Name, gitUtil.ErrRefChanged)
	}
	return err
}

func (b *Backend) EmptyTree() (string, error) {
	obj := b.repo.Storer.NewEncodedObject()
	if err := (&object.Tree{}).Encode(obj); err != nil {
		return "", fmt.Errorf("failed to encode empty tree: %w", err)
	}
	hash, err := b.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("failed to write empty tree: %w", err)
	}
	return hash.String(), nil
}

func (b *Backend) CreateCommit(c gitUtil.NewCommit) (string, error) {
	commit := &object.Commit{
		Author:    signature(c.Author),
		Committer: signature(c.Committer),
		Message:   c.Message,
		TreeHash:  plumbing.NewHash(c.Tree),
	}
	for _, p := range c.Parents {
		commit.ParentHashes = append(commit.ParentHashes, plumbing.NewHash(p))
	}

	obj := b.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return "", fmt.Errorf("failed to encode commit: %w", err)
	}
	hash, err := b.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("failed to write commit: %w", err)
	}
	return hash.String(), nil
}

func (b *Backend) ReadCommit(hash string) (*gitUtil.Commit, error) {
	c, err := object.GetCommit(b.repo.Storer, plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}

	out := &gitUtil.Commit{
		Hash:      c.Hash.String(),
		Tree:      c.TreeHash.String(),
		Author:    gitUtil.Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer: gitUtil.Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
		Message:   c.Message,
	}
	for _, p := range c.ParentHashes {
		out.Parents = append(out.Parents, p.String())
	}
	return out, nil
}

func signature(s gitUtil.Signature) object.Signature {
	return object.Signature{Name: s.Name, Email: s.Email, When: s.When}
}

// ConfigIdentity reads user.name / user.email from the merged system,
// global and repository configuration, after the GIT_AUTHOR_* variables.
type ConfigIdentity struct {
	Repo *git.Repository
}

func (c ConfigIdentity) Identity() (gitUtil.Identity, error) {
	id := gitUtil.Identity{
		Name:  os.Getenv("GIT_AUTHOR_NAME"),
		Email: os.Getenv("GIT_AUTHOR_EMAIL"),
	}
	if !id.Complete() {
		cfg, err := c.Repo.ConfigScoped(config.SystemScope)
		if err != nil {
			return gitUtil.Identity{}, fmt.Errorf("failed to read git config: %w", err)
		}
		if id.Name == "" {
			id.Name = cfg.User.Name
		}
		if id.Email == "" {
			id.Email = cfg.User.Email
		}
	}
	if !id.Complete() {
		return id, gitUtil.ErrIdentityUnset
	}
	return id, nil
}
