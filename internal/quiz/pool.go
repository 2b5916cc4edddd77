package quiz

import "github.com/ppiankov/factquiz/internal/model"

// Pool is the document-wide set of distinct predicates that distractors are drawn from.
// It is built once from all matches and read-only afterwards.
type Pool struct {
	predicates []string
}

// NewPool collects distinct predicates in document order
func NewPool(matches []model.Match) *Pool {
	seen := make(map[string]bool, len(matches))
	var predicates []string

	for _, m := range matches {
		if !seen[m.Predicate] {
			seen[m.Predicate] = true
			predicates = append(predicates, m.Predicate)
		}
	}

	return &Pool{predicates: predicates}
}

// Alternatives returns a fresh slice of every predicate except the given one
func (p *Pool) Alternatives(exclude string) []string {
	out := make([]string, 0, len(p.predicates))
	for _, pred := range p.predicates {
		if pred != exclude {
			out = append(out, pred)
		}
	}
	return out
}

// Len returns the number of distinct predicates
func (p *Pool) Len() int {
	return len(p.predicates)
}
