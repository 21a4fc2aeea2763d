package memo

import "errors"

var (
	// ErrInvalidCategory means the category name cannot be used as a ref component.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrUnknownCategory means the category ref does not exist.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrArchiveConflict means refs/archive/<category> already exists.
	ErrArchiveConflict = errors.New("archived category already exists")

	// ErrRefConflict means a compare-and-swap ref update lost a race with
	// another writer. It is the only error worth retrying.
	ErrRefConflict = errors.New("category was updated concurrently")

	// ErrMissingIdentity means no commit author name/email is configured.
	ErrMissingIdentity = errors.New("git user.name and user.email must be set")
)

const identityHint = "run `git config --global user.name <name>` and `git config --global user.email <email>`"
