package memo

import (
	"errors"
	"fmt"
	"sort"
	"time"

	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
	"github.com/rs/zerolog/log"
)

// Backend is the git object/ref store the memo store sits on.
type Backend interface {
	ReadRef(name string) (string, error)
	ListRefs(prefix string) ([]gitUtil.Ref, error)
	UpdateRefs(reason string, updates ...gitUtil.RefUpdate) error
	EmptyTree() (string, error)
	CreateCommit(c gitUtil.NewCommit) (string, error)
	ReadCommit(hash string) (*gitUtil.Commit, error)
}

// IdentityProvider supplies the author/committer of new memos.
type IdentityProvider interface {
	Identity() (gitUtil.Identity, error)
}

// Store manages memo categories and their commit chains.
//
// Every ref mutation is a compare-and-swap against the value observed at
// the start of the operation, so a concurrent writer makes the operation
// fail with ErrRefConflict instead of losing a memo. Mutations are retried
// up to the configured number of times, re-reading refs on each attempt.
type Store struct {
	backend  Backend
	identity IdentityProvider
	now      func() time.Time
	retries  int
	backoff  time.Duration

	emptyTree string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp new memos.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRetries sets how many times a mutation is retried after ErrRefConflict.
func WithRetries(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// WithBackoff sets the base delay between retries; attempt n waits n*d.
func WithBackoff(d time.Duration) Option {
	return func(s *Store) { s.backoff = d }
}

// NewStore returns a Store on top of backend.
func NewStore(backend Backend, identity IdentityProvider, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		identity: identity,
		now:      time.Now,
		backoff:  50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add records message as the newest memo of category, creating the
// category if it does not exist yet.
func (s *Store) Add(category, message string) (Memo, error) {
	if err := ValidateCategory(category); err != nil {
		return Memo{}, err
	}

	ref := ActiveRef(category)
	var created Memo
	err := s.retry("add", category, func() error {
		old, err := s.tip(ref)
		if err != nil && !errors.Is(err, gitUtil.ErrRefNotFound) {
			return err
		}

		var parents []string
		if old != "" {
			parents = []string{old}
		}
		m, err := s.writeMemo(parents, message)
		if err != nil {
			return err
		}

		if err := s.update("add "+category, gitUtil.RefUpdate{Name: ref, New: m.ID, Old: old}); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return Memo{}, err
	}

	log.Debug().Str("category", category).Str("id", created.ID).Msg("Recorded memo")
	return created, nil
}

// Edit replaces the most recent memo of category. The new commit takes the
// old tip's parent, so earlier memos are untouched and the chain length is
// unchanged. The superseded commit is left for git's garbage collection.
func (s *Store) Edit(category, message string) (Memo, error) {
	if err := ValidateCategory(category); err != nil {
		return Memo{}, err
	}

	ref := ActiveRef(category)
	var edited Memo
	err := s.retry("edit", category, func() error {
		old, err := s.tip(ref)
		if err != nil {
			return s.unknown(category, err)
		}
		prev, err := s.backend.ReadCommit(old)
		if err != nil {
			return err
		}

		var parents []string
		if len(prev.Parents) > 0 {
			parents = prev.Parents[:1]
		}
		m, err := s.writeMemo(parents, message)
		if err != nil {
			return err
		}

		if err := s.update("edit "+category, gitUtil.RefUpdate{Name: ref, New: m.ID, Old: old}); err != nil {
			return err
		}
		edited = m
		return nil
	})
	if err != nil {
		return Memo{}, err
	}

	log.Debug().Str("category", category).Str("id", edited.ID).Msg("Replaced memo")
	return edited, nil
}

// Remove deletes the active category ref. Its commits become unreachable and
// are left for normal repository maintenance.
func (s *Store) Remove(category string) error {
	if err := ValidateCategory(category); err != nil {
		return err
	}

	ref := ActiveRef(category)
	return s.retry("remove", category, func() error {
		old, err := s.tip(ref)
		if err != nil {
			return s.unknown(category, err)
		}
		return s.update("remove "+category, gitUtil.RefUpdate{Name: ref, Old: old})
	})
}

// Archive moves refs/memo/<category> to refs/archive/<category> in a single
// ref transaction.
func (s *Store) Archive(category string) error {
	if err := ValidateCategory(category); err != nil {
		return err
	}

	src, dst := ActiveRef(category), ArchiveRef(category)
	return s.retry("archive", category, func() error {
		tip, err := s.tip(src)
		if err != nil {
			return s.unknown(category, err)
		}
		if err := s.ensureNotArchived(category); err != nil {
			return err
		}

		err = s.update("archive "+category,
			gitUtil.RefUpdate{Name: dst, New: tip},
			gitUtil.RefUpdate{Name: src, Old: tip},
		)
		if errors.Is(err, ErrRefConflict) {
			// someone archived the same name between our check and the update
			if archErr := s.ensureNotArchived(category); archErr != nil {
				return archErr
			}
		}
		return err
	})
}

// Categories returns the active category names, sorted.
func (s *Store) Categories() ([]string, error) {
	return s.names(ActivePrefix)
}

// ArchivedCategories returns the archived category names, sorted.
func (s *Store) ArchivedCategories() ([]string, error) {
	return s.names(ArchivePrefix)
}

func (s *Store) names(prefix string) ([]string, error) {
	tips, err := s.tips(prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tips))
	for _, t := range tips {
		names = append(names, t.category)
	}
	return names, nil
}

type categoryTip struct {
	category string
	tip      string
}

// tips lists the categories under prefix with the commit each points at.
func (s *Store) tips(prefix string) ([]categoryTip, error) {
	refs, err := s.backend.ListRefs(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	var out []categoryTip
	for _, r := range refs {
		name, ok := CategoryFromRef(prefix, r.Name)
		if !ok {
			log.Debug().Str("ref", r.Name).Msg("Skipping ref that is not a category")
			continue
		}
		out = append(out, categoryTip{category: name, tip: r.Hash})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].category < out[j].category })
	return out, nil
}

func (s *Store) tip(ref string) (string, error) {
	return s.backend.ReadRef(ref)
}

func (s *Store) unknown(category string, err error) error {
	if errors.Is(err, gitUtil.ErrRefNotFound) {
		return fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
	return err
}

func (s *Store) ensureNotArchived(category string) error {
	_, err := s.tip(ArchiveRef(category))
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrArchiveConflict, ArchiveRef(category))
	case errors.Is(err, gitUtil.ErrRefNotFound):
		return nil
	default:
		return err
	}
}

// update applies a ref transaction, translating a lost race into ErrRefConflict.
func (s *Store) update(reason string, updates ...gitUtil.RefUpdate) error {
	err := s.backend.UpdateRefs("git-memo: "+reason, updates...)
	if errors.Is(err, gitUtil.ErrRefChanged) {
		return fmt.Errorf("%w (%v)", ErrRefConflict, err)
	}
	return err
}

// writeMemo creates the commit object for a memo without moving any ref.
func (s *Store) writeMemo(parents []string, message string) (Memo, error) {
	sig, err := s.signature()
	if err != nil {
		return Memo{}, err
	}
	tree, err := s.tree()
	if err != nil {
		return Memo{}, err
	}

	id, err := s.backend.CreateCommit(gitUtil.NewCommit{
		Tree:      tree,
		Parents:   parents,
		Message:   encodeMessage(message),
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return Memo{}, err
	}

	m := Memo{
		ID:        id,
		Timestamp: sig.When,
		Author:    sig.Name,
		Email:     sig.Email,
		Message:   message,
	}
	if len(parents) > 0 {
		m.Parent = parents[0]
	}
	return m, nil
}

func (s *Store) signature() (gitUtil.Signature, error) {
	id, err := s.identity.Identity()
	if errors.Is(err, gitUtil.ErrIdentityUnset) || (err == nil && !id.Complete()) {
		return gitUtil.Signature{}, fmt.Errorf("%w; %s", ErrMissingIdentity, identityHint)
	}
	if err != nil {
		return gitUtil.Signature{}, fmt.Errorf("failed to read identity: %w", err)
	}
	// commit timestamps carry whole seconds only
	return gitUtil.Signature{Name: id.Name, Email: id.Email, When: s.now().Truncate(time.Second)}, nil
}

func (s *Store) tree() (string, error) {
	if s.emptyTree != "" {
		return s.emptyTree, nil
	}
	tree, err := s.backend.EmptyTree()
	if err != nil {
		return "", err
	}
	s.emptyTree = tree
	return tree, nil
}

// retry runs fn, re-running it after ErrRefConflict up to s.retries times.
func (s *Store) retry(op, category string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, ErrRefConflict) || attempt >= s.retries {
			return err
		}
		log.Warn().Str("op", op).Str("category", category).Int("attempt", attempt+1).
			Msg("Category changed concurrently, retrying")
		time.Sleep(s.backoff * time.Duration(attempt+1))
	}
}
