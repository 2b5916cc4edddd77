package extract

import (
	"iter"

	"github.com/ppiankov/factquiz/internal/model"
)

// Matcher applies templates to sentences in priority order
type Matcher struct {
	templates []Template
	byID      map[model.TemplateID]Template
}

// NewMatcher creates a matcher over the given templates, or the default library when none are given
func NewMatcher(templates ...Template) *Matcher {
	if len(templates) == 0 {
		templates = DefaultTemplates()
	}

	byID := make(map[model.TemplateID]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	return &Matcher{
		templates: templates,
		byID:      byID,
	}
}

// Match returns the first template match for the sentence.
// Sentences matching no template are reported with ok=false; that is the common case.
func (m *Matcher) Match(s model.Sentence) (model.Match, bool) {
	for _, t := range m.templates {
		subject, predicate, ok := t.Extract(s.Text)
		if !ok {
			continue
		}
		return model.Match{
			Subject:   subject,
			Predicate: predicate,
			Template:  t.ID,
			Sentence:  s,
		}, true // First match wins
	}
	return model.Match{}, false
}

// MatchAll matches every sentence in the sequence, preserving order
func (m *Matcher) MatchAll(sentences iter.Seq[model.Sentence]) []model.Match {
	var matches []model.Match
	for s := range sentences {
		if match, ok := m.Match(s); ok {
			matches = append(matches, match)
		}
	}
	return matches
}

// Template looks up a template by identifier
func (m *Matcher) Template(id model.TemplateID) (Template, bool) {
	t, ok := m.byID[id]
	return t, ok
}

// Templates returns the library in priority order
func (m *Matcher) Templates() []Template {
	return m.templates
}
