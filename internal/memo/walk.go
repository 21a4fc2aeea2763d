package memo

import (
	"iter"
	"strings"
)

// List returns the memos of an active category, most recent first.
//
// The tip is resolved now; the returned sequence walks parent links lazily
// from that tip each time it is ranged over, so it is finite and restartable
// and does not observe memos added afterwards.
func (s *Store) List(category string) (iter.Seq2[Memo, error], error) {
	return s.log(ActiveRef, category)
}

// ListArchived is List for an archived category.
func (s *Store) ListArchived(category string) (iter.Seq2[Memo, error], error) {
	return s.log(ArchiveRef, category)
}

func (s *Store) log(refOf func(string) string, category string) (iter.Seq2[Memo, error], error) {
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}
	tip, err := s.tip(refOf(category))
	if err != nil {
		return nil, s.unknown(category, err)
	}
	return s.walk(tip), nil
}

func (s *Store) walk(tip string) iter.Seq2[Memo, error] {
	return func(yield func(Memo, error) bool) {
		for id := tip; id != ""; {
			c, err := s.backend.ReadCommit(id)
			if err != nil {
				yield(Memo{}, err)
				return
			}
			m := memoFromCommit(c)
			if !yield(m, nil) {
				return
			}
			id = m.Parent
		}
	}
}

// Grep yields memos of every active category whose message contains
// pattern, ordered by category name and then most recent first.
func (s *Store) Grep(pattern string) (iter.Seq2[Match, error], error) {
	return s.GrepFunc(func(message string) bool {
		return strings.Contains(message, pattern)
	})
}

// GrepFunc is Grep with an arbitrary message predicate.
func (s *Store) GrepFunc(match func(message string) bool) (iter.Seq2[Match, error], error) {
	tips, err := s.tips(ActivePrefix)
	if err != nil {
		return nil, err
	}

	return func(yield func(Match, error) bool) {
		for _, t := range tips {
			for m, err := range s.walk(t.tip) {
				if err != nil {
					yield(Match{Category: t.category}, err)
					return
				}
				if !match(m.Message) {
					continue
				}
				if !yield(Match{Category: t.category, Memo: m}, nil) {
					return
				}
			}
		}
	}, nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
