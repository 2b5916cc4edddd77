package model

// Language codes attached to sentences and templates
const (
	LangEnglish = "en"
	LangChinese = "zh"
)

// Sentence is a contiguous span of source text ending in sentence punctuation
type Sentence struct {
	Text  string `json:"text"`           // Verbatim sentence, terminal punctuation included
	Index int    `json:"index"`          // Position in source (0-based)
	Lang  string `json:"lang,omitempty"` // Language hint ("en" or "zh")
}

// TemplateID names a sentence template in the pattern library
type TemplateID string

const (
	TemplateIsA        TemplateID = "is-a"
	TemplateBornIn     TemplateID = "born-in"
	TemplateBornOn     TemplateID = "born-on"
	TemplateInvented   TemplateID = "invented"
	TemplateCreated    TemplateID = "created"
	TemplateZhIsA      TemplateID = "zh-is-a"
	TemplateZhBornIn   TemplateID = "zh-born-in"
	TemplateZhBornOn   TemplateID = "zh-born-on"
	TemplateZhInvented TemplateID = "zh-invented"
	TemplateZhCreated  TemplateID = "zh-created"
)

// Match is the result of applying a template to a sentence.
// Subject and Predicate are never empty.
type Match struct {
	Subject   string     `json:"subject"`
	Predicate string     `json:"predicate"`
	Template  TemplateID `json:"template"`
	Sentence  Sentence   `json:"sentence"`
}
