package memo

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// ActivePrefix is the ref namespace of active categories.
	ActivePrefix = "refs/memo/"

	// ArchivePrefix is the ref namespace of archived categories.
	ArchivePrefix = "refs/archive/"
)

// ActiveRef returns the full ref of an active category.
func ActiveRef(category string) string {
	return ActivePrefix + category
}

// ArchiveRef returns the full ref of an archived category.
func ArchiveRef(category string) string {
	return ArchivePrefix + category
}

// CategoryFromRef strips prefix from ref and returns the category name if
// what remains is a valid category.
func CategoryFromRef(prefix, ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || ValidateCategory(name) != nil {
		return "", false
	}
	return name, true
}

// ValidateCategory checks that name can be used as a single ref component,
// following the rules of git check-ref-format.
func ValidateCategory(name string) error {
	reason := categoryProblem(name)
	if reason == "" {
		return nil
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidCategory, name, reason)
}

func categoryProblem(name string) string {
	switch {
	case name == "":
		return "name is empty"
	case name == "@":
		return `"@" is reserved`
	case strings.HasPrefix(name, "."):
		return "must not start with '.'"
	case strings.HasPrefix(name, "-"):
		return "must not start with '-'"
	case strings.HasSuffix(name, "."):
		return "must not end with '.'"
	case strings.HasSuffix(name, ".lock"):
		return "must not end with '.lock'"
	case strings.Contains(name, ".."):
		return "must not contain '..'"
	case strings.Contains(name, "@{"):
		return "must not contain '@{'"
	}

	for _, r := range name {
		switch {
		case r == '/':
			return "must not contain '/'"
		case unicode.IsSpace(r):
			return "must not contain whitespace"
		case r < 0x20 || r == 0x7f || unicode.IsControl(r):
			return "must not contain control characters"
		case strings.ContainsRune(`~^:?*[\`, r):
			return fmt.Sprintf("must not contain %q", r)
		}
	}
	return ""
}
