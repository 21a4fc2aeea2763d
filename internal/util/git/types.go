package git

import (
	"errors"
	"time"
)

var (
	// ErrRefNotFound is returned when a reference does not exist.
	ErrRefNotFound = errors.New("ref not found")

	// ErrRefChanged is returned when an atomic compare-and-swap update fails
	// because a reference no longer holds its expected old value.
	ErrRefChanged = errors.New("reference has changed concurrently")

	// ErrIdentityUnset is returned when no author name or email is configured.
	ErrIdentityUnset = errors.New("git user.name and user.email are not set")
)

// Ref is a named pointer to a commit.
type Ref struct {
	Name string
	Hash string
}

// RefUpdate describes one compare-and-swap step of a ref transaction.
//
// An empty Old requires the ref to be absent. An empty New deletes the ref.
type RefUpdate struct {
	Name string
	New  string
	Old  string
}

// IsCreate reports whether the update creates a ref that must not exist yet.
func (u RefUpdate) IsCreate() bool { return u.Old == "" && u.New != "" }

// IsDelete reports whether the update deletes the ref.
func (u RefUpdate) IsDelete() bool { return u.New == "" }

// Identity is the author/committer name and email, without a timestamp.
type Identity struct {
	Name  string
	Email string
}

// Complete reports whether both name and email are set.
func (i Identity) Complete() bool { return i.Name != "" && i.Email != "" }

// Signature is an identity stamped with a time.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// NewCommit is the input for creating a commit object.
type NewCommit struct {
	Tree      string
	Parents   []string
	Message   string
	Author    Signature
	Committer Signature
}

// Commit is a commit object read back from the object store.
type Commit struct {
	Hash      string
	Tree      string
	Parents   []string
	Author    Signature
	Committer Signature
	Message   string
}
