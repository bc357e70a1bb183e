package service

import "github.com/veracify/credence/internal/domain"

// FilterByScope narrows relations to those whose scope satisfies every
// constraint with an exact, case-sensitive string match. Fail-closed: a
// relation missing a constrained key, or carrying no scope at all while
// constraints are present, is excluded. Empty constraints return the input
// unchanged.
func FilterByScope(relations []domain.Relation, constraints map[string]string) []domain.Relation {
	if len(constraints) == 0 {
		return relations
	}
	filtered := make([]domain.Relation, 0, len(relations))
	for _, rel := range relations {
		if scopeSatisfies(rel.Scope, constraints) {
			filtered = append(filtered, rel)
		}
	}
	return filtered
}

func scopeSatisfies(scope, constraints map[string]string) bool {
	for key, want := range constraints {
		got, ok := scope[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}
