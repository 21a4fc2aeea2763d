package git

import (
	"errors"
	"fmt"
	"os"
)

// StaticIdentity always returns the same identity.
type StaticIdentity Identity

// Identity implements memo.IdentityProvider.
func (s StaticIdentity) Identity() (Identity, error) {
	id := Identity(s)
	if !id.Complete() {
		return id, ErrIdentityUnset
	}
	return id, nil
}

// ConfigIdentity reads the author identity the way git does for commits:
// GIT_AUTHOR_NAME / GIT_AUTHOR_EMAIL first, then user.name / user.email.
type ConfigIdentity struct {
	Repo *Repo
}

// Identity implements memo.IdentityProvider.
func (c ConfigIdentity) Identity() (Identity, error) {
	id := Identity{
		Name:  os.Getenv("GIT_AUTHOR_NAME"),
		Email: os.Getenv("GIT_AUTHOR_EMAIL"),
	}

	if id.Name == "" {
		name, err := c.Repo.GetConfig("user.name")
		if err != nil {
			return Identity{}, fmt.Errorf("failed to read user.name: %w", err)
		}
		id.Name = name
	}
	if id.Email == "" {
		email, err := c.Repo.GetConfig("user.email")
		if err != nil {
			return Identity{}, fmt.Errorf("failed to read user.email: %w", err)
		}
		id.Email = email
	}

	if !id.Complete() {
		return id, ErrIdentityUnset
	}
	return id, nil
}

// IdentitySource is anything that can supply a commit identity.
type IdentitySource interface {
	Identity() (Identity, error)
}

// FallbackIdentity returns the first complete identity from its sources.
// Fields from earlier sources win over later ones.
type FallbackIdentity []IdentitySource

// Identity implements memo.IdentityProvider.
func (f FallbackIdentity) Identity() (Identity, error) {
	var merged Identity
	for _, src := range f {
		id, err := src.Identity()
		if merged.Name == "" {
			merged.Name = id.Name
		}
		if merged.Email == "" {
			merged.Email = id.Email
		}
		if merged.Complete() {
			return merged, nil
		}
		if err != nil && !errors.Is(err, ErrIdentityUnset) {
			return Identity{}, err
		}
	}
	return merged, ErrIdentityUnset
}
