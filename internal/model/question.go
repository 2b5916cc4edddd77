package model

// Kind is the type of a generated quiz item
type Kind string

const (
	KindOpen      Kind = "open"       // Question and free-text answer
	KindMCQ       Kind = "mcq"        // Multiple choice
	KindTrueFalse Kind = "true-false" // Statement to judge
)

// AllKinds lists every kind in output order
var AllKinds = []Kind{KindOpen, KindMCQ, KindTrueFalse}

// QuestionItem is one generated quiz unit
type QuestionItem struct {
	ID            string     `json:"id"`
	Index         int        `json:"index"` // Sequence number in the result set (1-based)
	Kind          Kind       `json:"kind"`
	Question      string     `json:"question"` // Question text, or the displayed statement for true-false
	Answer        string     `json:"answer"`
	Choices       []string   `json:"choices,omitempty"`        // mcq only
	CorrectChoice *int       `json:"correct_choice,omitempty"` // Index into Choices, mcq only
	Polarity      *bool      `json:"polarity,omitempty"`       // true-false only
	Template      TemplateID `json:"template"`
	Source        string     `json:"source"` // Original sentence, verbatim
	SentenceIndex int        `json:"sentence_index"`
}

// ResultSet is the ordered output of one generation run
type ResultSet struct {
	Items     []QuestionItem
	Sentences int // Sentences segmented from the input
	Matches   int // Sentences that matched a template
}

// Len returns the number of items
func (r ResultSet) Len() int {
	return len(r.Items)
}
