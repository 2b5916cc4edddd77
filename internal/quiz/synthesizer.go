package quiz

import (
	"math/rand/v2"

	"github.com/ppiankov/factquiz/internal/extract"
	"github.com/ppiankov/factquiz/internal/model"
)

// Synthesizer turns template matches into quiz items.
// All random decisions draw from one seeded source, so a run is reproducible
// as long as matches are synthesized in the same order.
type Synthesizer struct {
	templates map[model.TemplateID]extract.Template
	pool      *Pool
	choices   int
	tfMode    string
	rng       *rand.Rand
}

// NewSynthesizer creates a synthesizer over the template library and distractor pool
func NewSynthesizer(templates []extract.Template, pool *Pool, cfg model.QuizConfig) *Synthesizer {
	byID := make(map[model.TemplateID]extract.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	choices := cfg.Choices
	if choices < model.MinChoices || choices > model.MaxChoices {
		choices = 4
	}

	seed := uint64(cfg.Seed)
	return &Synthesizer{
		templates: byID,
		pool:      pool,
		choices:   choices,
		tfMode:    cfg.TrueFalseMode,
		rng:       rand.New(rand.NewPCG(seed, seed)),
	}
}

// Synthesize produces items of the requested kinds for one match, in kind order
func (s *Synthesizer) Synthesize(m model.Match, kinds []model.Kind) []model.QuestionItem {
	var items []model.QuestionItem
	for _, kind := range model.AllKinds {
		if !containsKind(kinds, kind) {
			continue
		}
		switch kind {
		case model.KindOpen:
			if item, ok := s.Open(m); ok {
				items = append(items, item)
			}
		case model.KindMCQ:
			if item, ok := s.MultipleChoice(m); ok {
				items = append(items, item)
			}
		case model.KindTrueFalse:
			items = append(items, s.TrueFalse(m)...)
		}
	}
	return items
}

// Open builds a question/answer item: the interrogative with the subject, answered by the predicate
func (s *Synthesizer) Open(m model.Match) (model.QuestionItem, bool) {
	t, ok := s.templates[m.Template]
	if !ok {
		return model.QuestionItem{}, false
	}
	return newItem(m, model.KindOpen, t.Question(m.Subject), m.Predicate), true
}

// MultipleChoice builds an mcq item with up to choices-1 distractors from the pool.
// The choice set shrinks when the pool is small and is skipped when it is empty.
func (s *Synthesizer) MultipleChoice(m model.Match) (model.QuestionItem, bool) {
	t, ok := s.templates[m.Template]
	if !ok {
		return model.QuestionItem{}, false
	}

	alternatives := s.pool.Alternatives(m.Predicate)
	if len(alternatives) == 0 {
		return model.QuestionItem{}, false
	}

	s.rng.Shuffle(len(alternatives), func(i, j int) {
		alternatives[i], alternatives[j] = alternatives[j], alternatives[i]
	})
	n := min(s.choices-1, len(alternatives))

	choices := make([]string, 0, n+1)
	choices = append(choices, m.Predicate)
	choices = append(choices, alternatives[:n]...)
	s.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	correct := 0
	for i, c := range choices {
		if c == m.Predicate {
			correct = i
			break
		}
	}

	item := newItem(m, model.KindMCQ, t.Question(m.Subject), m.Predicate)
	item.Choices = choices
	item.CorrectChoice = &correct
	return item, true
}

// TrueFalse builds statement items. In random mode one item is returned whose
// polarity is a fair coin flip; the falsified variant needs an alternative predicate.
// In both mode the true item comes first, then the falsified one when possible.
func (s *Synthesizer) TrueFalse(m model.Match) []model.QuestionItem {
	t, ok := s.templates[m.Template]
	if !ok {
		return nil
	}

	alternatives := s.pool.Alternatives(m.Predicate)
	falsified := func() model.QuestionItem {
		wrong := alternatives[s.rng.IntN(len(alternatives))]
		return statementItem(m, t, t.Statement(m.Subject, wrong), false)
	}
	truthful := statementItem(m, t, t.Statement(m.Subject, m.Predicate), true)

	if s.tfMode == model.TrueFalseBoth {
		items := []model.QuestionItem{truthful}
		if len(alternatives) > 0 {
			items = append(items, falsified())
		}
		return items
	}

	flip := s.rng.IntN(2) == 1
	if flip && len(alternatives) > 0 {
		return []model.QuestionItem{falsified()}
	}
	return []model.QuestionItem{truthful}
}

func statementItem(m model.Match, t extract.Template, statement string, polarity bool) model.QuestionItem {
	item := newItem(m, model.KindTrueFalse, statement, t.Verdict(polarity))
	item.Polarity = &polarity
	return item
}

func newItem(m model.Match, kind model.Kind, question, answer string) model.QuestionItem {
	return model.QuestionItem{
		Kind:          kind,
		Question:      question,
		Answer:        answer,
		Template:      m.Template,
		Source:        m.Sentence.Text,
		SentenceIndex: m.Sentence.Index,
	}
}

func containsKind(kinds []model.Kind, k model.Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
