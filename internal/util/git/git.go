package git

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is the git executable looked up on PATH.
const DefaultBinary = "git"

// CommandError is returned when a git invocation exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the exit status of the git process, or -1 if it did not run.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Repo runs git plumbing commands against the repository containing Dir.
// It is the only place where the memo tool executes git.
type Repo struct {
	Dir    string
	Binary string
}

// NewRepo returns a Repo rooted at dir using the given git binary
// (DefaultBinary when empty).
func NewRepo(dir, binary string) *Repo {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Repo{Dir: dir, Binary: binary}
}

// call describes a single git invocation.
type call struct {
	args  []string
	stdin io.Reader
	env   []string
}

// runGit executes a git command and returns raw stdout + error.
// stderr is captured into the returned *CommandError.
func (r *Repo) runGit(c call) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := exec.Command(binary, c.args...)
	cmd.Dir = r.Dir
	cmd.Stdin = c.stdin
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &CommandError{Args: c.args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// run is runGit for the common case: no stdin, no extra env, trimmed output.
func (r *Repo) run(args ...string) (string, error) {
	out, err := r.runGit(call{args: args})
	return strings.TrimSpace(out), err
}

// IsGitRepo reports whether Dir is inside a git repository (bare or not).
func (r *Repo) IsGitRepo() bool {
	_, err := r.run("rev-parse", "--git-dir")
	return err == nil
}

// Root returns the top-level working tree directory, or the git directory
// for bare repositories.
func (r *Repo) Root() (string, error) {
	out, err := r.run("rev-parse", "--show-toplevel")
	if err == nil && out != "" {
		return out, nil
	}
	out, err = r.run("rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to find git root (are you in a git repo?): %w", err)
	}
	return out, nil
}

// HooksDir returns the directory git reads hooks from, honouring core.hooksPath.
func (r *Repo) HooksDir() (string, error) {
	out, err := r.run("rev-parse", "--path-format=absolute", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("failed to resolve hooks directory: %w", err)
	}
	return out, nil
}

// GetConfig returns a git configuration value. A missing key is not an error
// and yields the empty string.
func (r *Repo) GetConfig(key string) (string, error) {
	out, err := r.run("config", "--get", key)
	if err != nil {
		var cmdErr *CommandError
		// git config returns exit code 1 if key is not found
		if errors.As(err, &cmdErr) && cmdErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return out, nil
}
