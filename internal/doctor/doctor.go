package doctor

import (
	"fmt"
	"strings"

	gitUtil "github.com/kuchuk-borom-debbarma/git-memo/internal/util/git"
)

// Catalog lists the categories in both namespaces.
type Catalog interface {
	Categories() ([]string, error)
	ArchivedCategories() ([]string, error)
}

// IdentitySource supplies the identity new memos would be written with.
type IdentitySource interface {
	Identity() (gitUtil.Identity, error)
}

type Doctor struct {
	RootPath string
	Backend  string
	Identity gitUtil.Identity
	// IdentityErr is set when no complete identity is configured.
	IdentityErr error
	Active      []string
	Archived    []string
	// Overlap holds names present as both active and archived. Archiving
	// them again will fail until one side is removed.
	Overlap []string
}

func GetDoctor(rootPath, backend string, catalog Catalog, identity IdentitySource) (*Doctor, error) {
	active, err := catalog.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	archived, err := catalog.ArchivedCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list archived categories: %w", err)
	}

	d := &Doctor{
		RootPath: rootPath,
		Backend:  backend,
		Active:   active,
		Archived: archived,
		Overlap:  overlap(active, archived),
	}
	d.Identity, d.IdentityErr = identity.Identity()
	return d, nil
}

// overlap returns the names found in both sorted slices.
func overlap(a, b []string) []string {
	var out []string
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// Healthy reports whether nothing needs attention.
func (d *Doctor) Healthy() bool {
	return d.IdentityErr == nil && len(d.Overlap) == 0
}

func (d *Doctor) String() string {
	var sb strings.Builder

	sb.WriteString("git-memo Doctor\n")
	sb.WriteString("===============\n\n")

	sb.WriteString(fmt.Sprintf("Root:     %s\n", d.RootPath))
	sb.WriteString(fmt.Sprintf("Backend:  %s\n", d.Backend))
	if d.IdentityErr != nil {
		sb.WriteString(fmt.Sprintf("Identity: missing (%v)\n", d.IdentityErr))
	} else {
		sb.WriteString(fmt.Sprintf("Identity: %s <%s>\n", d.Identity.Name, d.Identity.Email))
	}
	sb.WriteString(fmt.Sprintf("Active:   %d\n", len(d.Active)))
	sb.WriteString(fmt.Sprintf("Archived: %d\n\n", len(d.Archived)))

	sb.WriteString("Categories:\n")
	sb.WriteString("-----------\n")
	if len(d.Active) == 0 && len(d.Archived) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, c := range d.Active {
		sb.WriteString(fmt.Sprintf("  %s\n", c))
	}
	for _, c := range d.Archived {
		sb.WriteString(fmt.Sprintf("  %s (archived)\n", c))
	}

	if len(d.Overlap) > 0 {
		sb.WriteString("\nProblems:\n")
		sb.WriteString("---------\n")
		for _, c := range d.Overlap {
			sb.WriteString(fmt.Sprintf("  %s is both active and archived\n", c))
		}
	}

	return sb.String()
}
