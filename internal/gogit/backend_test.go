package gogit

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
)

func writeCommit(t *testing.T, b *Backend, message string, parents ...string) string {
	t.Helper()
	tree, err := b.EmptyTree()
	require.NoError(t, err)
	sig := gitUtil.Signature{Name: "Go Git", Email: "gogit@example.com", When: time.Unix(1700000000, 0).UTC()}
	id, err := b.CreateCommit(gitUtil.NewCommit{Tree: tree, Parents: parents, Message: message, Author: sig, Committer: sig})
	require.NoError(t, err)
	return id
}

func TestEmptyTreeMatchesGit(t *testing.T) {
	b, err := NewMemory()
	require.NoError(t, err)
	tree, err := b.EmptyTree()
	require.NoError(t, err)
	assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", tree)
}

func TestCommitRoundTrip(t *testing.T) {
	b, err := NewMemory()
	require.NoError(t, err)

	root := writeCommit(t, b, "root\n")
	child := writeCommit(t, b, "two\nlines\n", root)

	c, err := b.ReadCommit(child)
	require.NoError(t, err)
	assert.Equal(t, child, c.Hash)
	assert.Equal(t, []string{root}, c.Parents)
	assert.Equal(t, "two\nlines\n", c.Message)
	assert.Equal(t, "Go Git", c.Author.Name)
	assert.Equal(t, int64(1700000000), c.Committer.When.Unix())

	_, err = b.ReadCommit("1111111111111111111111111111111111111111")
	assert.Error(t, err)
}

func TestCompareAndSwap(t *testing.T) {
	b, err := NewMemory()
	require.NoError(t, err)
	a := writeCommit(t, b, "a\n")
	c := writeCommit(t, b, "c\n", a)

	_, err = b.ReadRef("refs/memo/x")
	assert.ErrorIs(t, err, gitUtil.ErrRefNotFound)

	require.NoError(t, b.UpdateRefs("t", gitUtil.RefUpdate{Name: "refs/memo/x", New: a}))
	assert.ErrorIs(t, b.UpdateRefs("t", gitUtil.RefUpdate{Name: "refs/memo/x", New: c}), gitUtil.ErrRefChanged)
	assert.ErrorIs(t, b.UpdateRefs("t", gitUtil.RefUpdate{Name: "refs/memo/x", New: c, Old: c}), gitUtil.ErrRefChanged)
	require.NoError(t, b.UpdateRefs("t", gitUtil.RefUpdate{Name: "refs/memo/x", New: c, Old: a}))

	got, err := b.ReadRef("refs/memo/x")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	// multi-ref update checks every ref before touching any
	err = b.UpdateRefs("t",
		gitUtil.RefUpdate{Name: "refs/archive/x", New: c},
		gitUtil.RefUpdate{Name: "refs/memo/x", Old: a},
	)
	assert.ErrorIs(t, err, gitUtil.ErrRefChanged)
	_, err = b.ReadRef("refs/archive/x")
	assert.ErrorIs(t, err, gitUtil.ErrRefNotFound)

	require.NoError(t, b.UpdateRefs("t",
		gitUtil.RefUpdate{Name: "refs/archive/x", New: c},
		gitUtil.RefUpdate{Name: "refs/memo/x", Old: c},
	))
	refs, err := b.ListRefs("refs/")
	require.NoError(t, err)
	assert.Equal(t, []gitUtil.Ref{{Name: "refs/archive/x", Hash: c}}, refs)
}

func TestListRefsFiltersPrefix(t *testing.T) {
	b, err := NewMemory()
	require.NoError(t, err)
	a := writeCommit(t, b, "a\n")
	for _, name := range []string{"refs/memo/b", "refs/memo/a", "refs/heads/main"} {
		require.NoError(t, b.UpdateRefs("t", gitUtil.RefUpdate{Name: name, New: a}))
	}

	refs, err := b.ListRefs("refs/memo/")
	require.NoError(t, err)
	assert.Equal(t, []gitUtil.Ref{{Name: "refs/memo/a", Hash: a}, {Name: "refs/memo/b", Hash: a}}, refs)
}

func TestOpenReadsRefsWrittenByGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
	dir := t.TempDir()
	gitCmd := func(args ...string) string {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=CLI", "GIT_AUTHOR_EMAIL=cli@example.com",
			"GIT_COMMITTER_NAME=CLI", "GIT_COMMITTER_EMAIL=cli@example.com")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
		return strings.TrimSpace(string(out))
	}
	gitCmd("init", "-q")
	gitCmd("config", "user.name", "Config Name")
	gitCmd("config", "user.email", "config@example.com")
	id := gitCmd("commit-tree", "4b825dc642cb6eb9a060e54bf8d69288fbee4904", "-m", "from git")
	gitCmd("update-ref", "refs/memo/todo", id)

	b, err := Open(dir)
	require.NoError(t, err)

	got, err := b.ReadRef("refs/memo/todo")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c, err := b.ReadCommit(id)
	require.NoError(t, err)
	assert.Equal(t, "from git\n", c.Message)
	assert.Equal(t, "CLI", c.Author.Name)

	t.Setenv("GIT_AUTHOR_NAME", "")
	t.Setenv("GIT_AUTHOR_EMAIL", "")
	ident, err := ConfigIdentity{Repo: b.Repository()}.Identity()
	require.NoError(t, err)
	assert.Equal(t, gitUtil.Identity{Name: "Config Name", Email: "config@example.com"}, ident)
}

func TestOpenNotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}
