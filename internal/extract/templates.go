package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ppiankov/factquiz/internal/model"
)

// Template recognizes one surface form of a simple declarative sentence
// and knows how to phrase questions about it.
type Template struct {
	ID   model.TemplateID
	Lang string

	// Extract returns the subject and predicate when the sentence has this form
	Extract func(sentence string) (subject, predicate string, ok bool)

	question  string // fmt format taking the subject
	statement string // fmt format taking subject, predicate
}

// Question returns the interrogative with the subject substituted
func (t Template) Question(subject string) string {
	return fmt.Sprintf(t.question, subject)
}

// Statement renders a declarative sentence of this template's form
func (t Template) Statement(subject, predicate string) string {
	return fmt.Sprintf(t.statement, subject, predicate)
}

// Verdict returns the answer word for a true/false item in the template's language
func (t Template) Verdict(polarity bool) string {
	switch {
	case t.Lang == model.LangChinese && polarity:
		return "正确"
	case t.Lang == model.LangChinese:
		return "错误"
	case polarity:
		return "True"
	default:
		return "False"
	}
}

// connective builds a template around a regexp with subject and predicate groups
func connective(id model.TemplateID, lang, pattern, question, statement string) Template {
	re := regexp.MustCompile(pattern)
	return Template{
		ID:   id,
		Lang: lang,
		Extract: func(sentence string) (string, string, bool) {
			m := re.FindStringSubmatch(sentence)
			if m == nil {
				return "", "", false
			}
			subject, predicate := trimEdges(afterOpenQuote(m[1])), trimEdges(m[2])
			if subject == "" || predicate == "" {
				return "", "", false
			}
			return subject, predicate, true
		},
		question:  question,
		statement: statement,
	}
}

// DefaultTemplates returns the pattern library in priority order.
// The date form of 出生于 is listed before the place form so it can win.
func DefaultTemplates() []Template {
	return []Template{
		connective(model.TemplateIsA, model.LangEnglish,
			`(?i)^(.+?)\s+is\s+(.+)$`,
			"What is %s?", "%s is %s."),
		connective(model.TemplateBornIn, model.LangEnglish,
			`(?i)^(.+?)\s+was\s+born\s+in\s+(.+)$`,
			"Where was %s born?", "%s was born in %s."),
		connective(model.TemplateBornOn, model.LangEnglish,
			`(?i)^(.+?)\s+was\s+born\s+on\s+(.+)$`,
			"When was %s born?", "%s was born on %s."),
		connective(model.TemplateInvented, model.LangEnglish,
			`(?i)^(.+?)\s+invented\s+(.+)$`,
			"What did %s invent?", "%s invented %s."),
		connective(model.TemplateCreated, model.LangEnglish,
			`(?i)^(.+?)\s+created\s+(.+)$`,
			"What did %s create?", "%s created %s."),
		connective(model.TemplateZhIsA, model.LangChinese,
			`^(.+?)是(.+)$`,
			"%s是什么？", "%s是%s。"),
		connective(model.TemplateZhBornOn, model.LangChinese,
			`^(.+?)出生于(.*[年月日].*)$`,
			"%s出生于什么时候？", "%s出生于%s。"),
		connective(model.TemplateZhBornIn, model.LangChinese,
			`^(.+?)出生[于在](.+)$`,
			"%s出生于哪里？", "%s出生于%s。"),
		connective(model.TemplateZhInvented, model.LangChinese,
			`^(.+?)发明了?(.+)$`,
			"%s发明了什么？", "%s发明了%s。"),
		connective(model.TemplateZhCreated, model.LangChinese,
			`^(.+?)创建了?(.+)$`,
			"%s创建了什么？", "%s创建了%s。"),
	}
}

const (
	edgePunct  = ".,;:!?。，；：！？、"
	quoteMarks = "\"'“”‘’「」『』"
)

// trimEdges strips whitespace, clause punctuation and quote marks from both ends.
// Brackets are kept so "a city (in France)" survives.
func trimEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(edgePunct, r) || strings.ContainsRune(quoteMarks, r)
	})
}

var quotePairs = []struct{ open, close string }{
	{"“", "”"},
	{"「", "」"},
	{"『", "』"},
}

// afterOpenQuote drops a lead-in such as `He said: "` when the subject opens a
// quotation it does not close
func afterOpenQuote(s string) string {
	cut := -1
	if strings.Count(s, `"`)%2 == 1 {
		cut = strings.LastIndex(s, `"`) + 1
	}
	for _, q := range quotePairs {
		i := strings.LastIndex(s, q.open)
		if i > strings.LastIndex(s, q.close) && i+len(q.open) > cut {
			cut = i + len(q.open)
		}
	}
	if cut < 0 {
		return s
	}
	return s[cut:]
}
