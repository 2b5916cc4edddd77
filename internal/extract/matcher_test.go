package extract

import (
	"testing"

	"github.com/ppiankov/factquiz/internal/model"
)

func TestMatcher_NewtonExample(t *testing.T) {
	m := NewMatcher()
	matches := m.MatchAll(Sentences("Isaac Newton is an English physicist. He was born in England."))

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	first := matches[0]
	if first.Template != model.TemplateIsA {
		t.Errorf("expected is-a, got %s", first.Template)
	}
	if first.Subject != "Isaac Newton" {
		t.Errorf("expected subject 'Isaac Newton', got %q", first.Subject)
	}
	if first.Predicate != "an English physicist" {
		t.Errorf("expected predicate 'an English physicist', got %q", first.Predicate)
	}

	second := matches[1]
	if second.Template != model.TemplateBornIn {
		t.Errorf("expected born-in, got %s", second.Template)
	}
	if second.Subject != "He" || second.Predicate != "England" {
		t.Errorf("expected He/England, got %q/%q", second.Subject, second.Predicate)
	}
	if second.Sentence.Text != "He was born in England." {
		t.Errorf("expected source sentence kept verbatim, got %q", second.Sentence.Text)
	}
}

func TestMatcher_Templates(t *testing.T) {
	tests := []struct {
		sentence  string
		template  model.TemplateID
		subject   string
		predicate string
	}{
		{"Paris is the capital of France.", model.TemplateIsA, "Paris", "the capital of France"},
		{"Mozart WAS BORN IN Salzburg.", model.TemplateBornIn, "Mozart", "Salzburg"},
		{"Einstein was born on 14 March 1879.", model.TemplateBornOn, "Einstein", "14 March 1879"},
		{"Edison invented the phonograph!", model.TemplateInvented, "Edison", "the phonograph"},
		{"Guido van Rossum created Python.", model.TemplateCreated, "Guido van Rossum", "Python"},
		{"爱因斯坦是德国物理学家。", model.TemplateZhIsA, "爱因斯坦", "德国物理学家"},
		{"爱因斯坦出生于1879年3月14日。", model.TemplateZhBornOn, "爱因斯坦", "1879年3月14日"},
		{"爱因斯坦出生于乌尔姆。", model.TemplateZhBornIn, "爱因斯坦", "乌尔姆"},
		{"鲁迅出生在绍兴。", model.TemplateZhBornIn, "鲁迅", "绍兴"},
		{"蔡伦发明了造纸术。", model.TemplateZhInvented, "蔡伦", "造纸术"},
		{"毕昇发明活字印刷术。", model.TemplateZhInvented, "毕昇", "活字印刷术"},
		{"马云创建了阿里巴巴。", model.TemplateZhCreated, "马云", "阿里巴巴"},
		{`"Go is a language."`, model.TemplateIsA, "Go", "a language"},
		{`He said: "Go is a language."`, model.TemplateIsA, "Go", "a language"},
		{`The "Go" team is small.`, model.TemplateIsA, `The "Go" team`, "small"},
		{"Paris is a city (in France).", model.TemplateIsA, "Paris", "a city (in France)"},
		{"他说：“鲁迅是作家。”", model.TemplateZhIsA, "鲁迅", "作家"},
		{"「孔子是思想家。」", model.TemplateZhIsA, "孔子", "思想家"},
	}

	m := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			got, ok := m.Match(model.Sentence{Text: tt.sentence})
			if !ok {
				t.Fatalf("expected %q to match", tt.sentence)
			}
			if got.Template != tt.template {
				t.Errorf("expected template %s, got %s", tt.template, got.Template)
			}
			if got.Subject != tt.subject {
				t.Errorf("expected subject %q, got %q", tt.subject, got.Subject)
			}
			if got.Predicate != tt.predicate {
				t.Errorf("expected predicate %q, got %q", tt.predicate, got.Predicate)
			}
		})
	}
}

func TestMatcher_PriorityOrder(t *testing.T) {
	m := NewMatcher()

	// Both "is" and "invented" appear; is-a is declared first
	got, ok := m.Match(model.Sentence{Text: "The man who invented radio is Marconi."})
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Template != model.TemplateIsA {
		t.Errorf("expected is-a to win, got %s", got.Template)
	}
	if got.Subject != "The man who invented radio" {
		t.Errorf("unexpected subject %q", got.Subject)
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher()

	for _, s := range []string{
		"Run quickly.",
		"This island has two harbours.",
		"",
		" is nothing.",
		"它很好。",
	} {
		if got, ok := m.Match(model.Sentence{Text: s}); ok {
			t.Errorf("expected %q not to match, got %+v", s, got)
		}
	}
}

func TestMatcher_CustomTemplates(t *testing.T) {
	m := NewMatcher(connective("wrote", model.LangEnglish, `^(.+?)\s+wrote\s+(.+)$`, "What did %s write?", "%s wrote %s."))

	got, ok := m.Match(model.Sentence{Text: "Tolstoy wrote War and Peace."})
	if !ok {
		t.Fatal("expected custom template to match")
	}
	if got.Predicate != "War and Peace" {
		t.Errorf("expected 'War and Peace', got %q", got.Predicate)
	}
	if _, ok := m.Match(model.Sentence{Text: "Paris is a city."}); ok {
		t.Error("expected default templates to be absent from a custom matcher")
	}

	tpl, ok := m.Template("wrote")
	if !ok {
		t.Fatal("expected template lookup to succeed")
	}
	if q := tpl.Question("Tolstoy"); q != "What did Tolstoy write?" {
		t.Errorf("unexpected question %q", q)
	}
}

func TestTemplate_Phrasing(t *testing.T) {
	m := NewMatcher()

	isA, _ := m.Template(model.TemplateIsA)
	if got := isA.Question("Isaac Newton"); got != "What is Isaac Newton?" {
		t.Errorf("unexpected question %q", got)
	}
	if got := isA.Statement("Isaac Newton", "a poet"); got != "Isaac Newton is a poet." {
		t.Errorf("unexpected statement %q", got)
	}
	if isA.Verdict(true) != "True" || isA.Verdict(false) != "False" {
		t.Error("expected English verdict words")
	}

	zhIsA, _ := m.Template(model.TemplateZhIsA)
	if got := zhIsA.Question("爱因斯坦"); got != "爱因斯坦是什么？" {
		t.Errorf("unexpected question %q", got)
	}
	if zhIsA.Verdict(true) != "正确" || zhIsA.Verdict(false) != "错误" {
		t.Error("expected Chinese verdict words")
	}

	bornIn, _ := m.Template(model.TemplateBornIn)
	if got := bornIn.Question("He"); got != "Where was He born?" {
		t.Errorf("unexpected question %q", got)
	}

	zhBornIn, _ := m.Template(model.TemplateZhBornIn)
	if got := zhBornIn.Question("他"); got != "他出生于哪里？" {
		t.Errorf("unexpected question %q", got)
	}
}

func TestMatcher_QuotedSentencesFromText(t *testing.T) {
	text := `"Go is a language." 他说：“鲁迅是作家。” Rust is a language too.`
	matches := NewMatcher().MatchAll(Sentences(text))

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	want := []struct{ subject, predicate string }{
		{"Go", "a language"},
		{"鲁迅", "作家"},
		{"Rust", "a language too"},
	}
	for i, w := range want {
		if matches[i].Subject != w.subject || matches[i].Predicate != w.predicate {
			t.Errorf("match %d: expected %q/%q, got %q/%q", i, w.subject, w.predicate, matches[i].Subject, matches[i].Predicate)
		}
	}

	// The source sentence keeps its quotes
	if matches[1].Sentence.Text != "他说：“鲁迅是作家。”" {
		t.Errorf("expected verbatim source, got %q", matches[1].Sentence.Text)
	}

	tpl, _ := NewMatcher().Template(matches[1].Template)
	if got := tpl.Statement(matches[1].Subject, "诗人"); got != "鲁迅是诗人。" {
		t.Errorf("expected clean falsified statement, got %q", got)
	}
}
