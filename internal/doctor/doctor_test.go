package doctor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
)

type fakeCatalog struct {
	active, archived []string
	err              error
}

func (f fakeCatalog) Categories() ([]string, error)         { return f.active, f.err }
func (f fakeCatalog) ArchivedCategories() ([]string, error) { return f.archived, nil }

func TestGetDoctorReportsOverlap(t *testing.T) {
	catalog := fakeCatalog{
		active:   []string{"done", "ideas", "todo"},
		archived: []string{"2023", "done", "todo"},
	}
	id := gitUtil.StaticIdentity{Name: "Ada", Email: "ada@example.com"}

	d, err := GetDoctor("/repo", "exec", catalog, id)
	require.NoError(t, err)

	assert.Equal(t, []string{"done", "todo"}, d.Overlap)
	assert.False(t, d.Healthy())

	out := d.String()
	assert.Contains(t, out, "Root:     /repo")
	assert.Contains(t, out, "Identity: Ada <ada@example.com>")
	assert.Contains(t, out, "Active:   3")
	assert.Contains(t, out, "Archived: 3")
	assert.Contains(t, out, "  2023 (archived)")
	assert.Contains(t, out, "done is both active and archived")
}

func TestGetDoctorMissingIdentity(t *testing.T) {
	d, err := GetDoctor("/repo", "go-git", fakeCatalog{}, gitUtil.StaticIdentity{})
	require.NoError(t, err)

	assert.ErrorIs(t, d.IdentityErr, gitUtil.ErrIdentityUnset)
	assert.False(t, d.Healthy())
	assert.Contains(t, d.String(), "Identity: missing")
	assert.Contains(t, d.String(), "(none)")
}

func TestGetDoctorHealthy(t *testing.T) {
	catalog := fakeCatalog{active: []string{"todo"}, archived: []string{"old"}}
	d, err := GetDoctor("/repo", "exec", catalog, gitUtil.StaticIdentity{Name: "a", Email: "b"})
	require.NoError(t, err)
	assert.True(t, d.Healthy())
	assert.NotContains(t, d.String(), "Problems")
}

func TestGetDoctorListError(t *testing.T) {
	_, err := GetDoctor("/repo", "exec", fakeCatalog{err: errors.New("boom")}, gitUtil.StaticIdentity{})
	assert.ErrorContains(t, err, "boom")
}
