package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReadRef resolves a full ref name to the commit it points at.
func (r *Repo) ReadRef(name string) (string, error) {
	out, err := r.run("rev-parse", "--verify", "--quiet", name+"^{commit}")
	if err == nil {
		return out, nil
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode() == 1 {
		return "", fmt.Errorf("%s: %w", name, ErrRefNotFound)
	}
	return "", err
}

// ListRefs returns every ref under prefix, sorted by name.
func (r *Repo) ListRefs(prefix string) ([]Ref, error) {
	out, err := r.run("for-each-ref", "--format=%(objectname) %(refname)", prefix)
	if err != nil {
		return nil, err
	}

	var refs []Ref
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, name, ok := strings.Cut(line, " ")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		refs = append(refs, Ref{Name: name, Hash: hash})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// UpdateRefs applies all updates atomically with compare-and-swap semantics.
//
// A single update is passed on the command line:
//
//	git update-ref <ref> <new> <old>
//
// Several updates go through `git update-ref --stdin`, which commits them as
// one transaction. If git rejects the update and any ref no longer holds its
// expected old value, or another writer holds a ref lock, ErrRefChanged is
// returned.
func (r *Repo) UpdateRefs(reason string, updates ...RefUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	c := call{env: []string{"LC_ALL=C"}}
	if len(updates) == 1 {
		u := updates[0]
		if u.IsDelete() {
			c.args = []string{"update-ref", "-m", reason, "-d", u.Name, u.Old}
		} else {
			c.args = []string{"update-ref", "-m", reason, u.Name, u.New, u.Old}
		}
	} else {
		var script strings.Builder
		for _, u := range updates {
			switch {
			case u.IsDelete():
				fmt.Fprintf(&script, "delete %s %s\n", u.Name, u.Old)
			case u.IsCreate():
				fmt.Fprintf(&script, "create %s %s\n", u.Name, u.New)
			default:
				fmt.Fprintf(&script, "update %s %s %s\n", u.Name, u.New, u.Old)
			}
		}
		c.args = []string{"update-ref", "-m", reason, "--stdin"}
		c.stdin = strings.NewReader(script.String())
	}
	_, err := r.runGit(c)
	if err == nil {
		return nil
	}

	if changed := r.changedRef(updates); changed != "" {
		log.Debug().Err(err).Str("ref", changed).Msg("ref update lost a race")
		return fmt.Errorf("%s: %w", changed, ErrRefChanged)
	}
	// Another writer holds the lock file and has not moved the ref yet.
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, "cannot lock ref") {
		log.Debug().Err(err).Str("ref", updates[0].Name).Msg("ref is locked by another writer")
		return fmt.Errorf("%s: %w", updates[0].Name, ErrRefChanged)
	}
	return err
}

// changedRef returns the first ref whose current value differs from the
// expected old value of its update, or "" if all still match.
func (r *Repo) changedRef(updates []RefUpdate) string {
	for _, u := range updates {
		current, err := r.ReadRef(u.Name)
		if err != nil && !errors.Is(err, ErrRefNotFound) {
			continue
		}
		if current != u.Old {
			return u.Name
		}
	}
	return ""
}
