package pipeline

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/factquiz/internal/model"
)

func sampleResultSet() model.ResultSet {
	correct := 1
	polarity := false
	return model.ResultSet{Items: []model.QuestionItem{
		{
			Index:         1,
			Kind:          model.KindMCQ,
			Question:      "What is Paris?",
			Answer:        "a city",
			Choices:       []string{"a river", "a city", "a <mountain>"},
			CorrectChoice: &correct,
			Source:        "Paris is a city.",
		},
		{
			Index:    2,
			Kind:     model.KindTrueFalse,
			Question: "Paris is a river.",
			Answer:   "False",
			Polarity: &polarity,
			Source:   "Paris is a city.",
		},
	}}
}

func TestRenderText(t *testing.T) {
	out := string(NewRenderer().RenderText(sampleResultSet()))

	want := strings.Join([]string{
		"Q1: What is Paris?",
		"  A. a river",
		"  B. a city",
		"  C. a <mountain>",
		"A1: a city",
		"Source: Paris is a city.",
		"",
		"Q2: Paris is a river.",
		"A2: False",
		"Source: Paris is a city.",
		"",
	}, "\n")

	if out != want {
		t.Errorf("unexpected text output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := NewRenderer().RenderJSON(sampleResultSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(out), "a <mountain>") {
		t.Error("expected HTML characters to be left unescaped")
	}

	var items []map[string]any
	if err := json.Unmarshal(out, &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["correct_choice"] != float64(1) {
		t.Errorf("expected correct_choice 1, got %v", items[0]["correct_choice"])
	}
	if items[1]["polarity"] != false {
		t.Errorf("expected polarity false, got %v", items[1]["polarity"])
	}
	if _, ok := items[1]["choices"]; ok {
		t.Error("expected true/false item without choices")
	}
	if items[0]["source"] != "Paris is a city." {
		t.Errorf("unexpected source %v", items[0]["source"])
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := NewRenderer().Render(sampleResultSet(), "yaml")
	if !errors.Is(err, model.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
