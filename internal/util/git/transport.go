package git

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Push sends the given refspecs to remote. Without force, git rejects any
// remote ref that would not fast-forward, so a sibling's memos are never
// overwritten silently.
func (r *Repo) Push(remote string, force bool, refspecs ...string) (string, error) {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote)
	args = append(args, refspecs...)

	log.Info().Msgf("Pushing %v to %s", refspecs, remote)
	out, err := r.runGit(call{args: args})
	if err != nil {
		return out, fmt.Errorf("failed to push to %s: %w", remote, err)
	}
	return out, nil
}

// Fetch retrieves the given refspecs from remote. Refs that diverged from
// the remote are rejected by git rather than overwritten.
func (r *Repo) Fetch(remote string, refspecs ...string) (string, error) {
	args := append([]string{"fetch", remote}, refspecs...)

	log.Info().Msgf("Fetching %v from %s", refspecs, remote)
	out, err := r.runGit(call{args: args})
	if err != nil {
		return out, fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return out, nil
}
