package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/factquiz/internal/model"
)

// Renderer serializes result sets
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render dispatches on format ("text" or "json")
func (r *Renderer) Render(rs model.ResultSet, format string) ([]byte, error) {
	switch format {
	case model.FormatText, "":
		return r.RenderText(rs), nil
	case model.FormatJSON:
		return r.RenderJSON(rs)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidFormat, format)
	}
}

// RenderText writes each item as Q/choices/A/Source lines separated by a blank line
func (r *Renderer) RenderText(rs model.ResultSet) []byte {
	var buf strings.Builder

	for i, item := range rs.Items {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "Q%d: %s\n", item.Index, item.Question)
		for j, choice := range item.Choices {
			fmt.Fprintf(&buf, "  %s. %s\n", choiceLabel(j), choice)
		}
		fmt.Fprintf(&buf, "A%d: %s\n", item.Index, item.Answer)
		fmt.Fprintf(&buf, "Source: %s\n", item.Source)
	}

	return []byte(buf.String())
}

// RenderJSON writes the items as an indented array; an empty set renders as []
func (r *Renderer) RenderJSON(rs model.ResultSet) ([]byte, error) {
	items := rs.Items
	if items == nil {
		items = []model.QuestionItem{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return buf.Bytes(), nil
}

// choiceLabel returns A, B, C, ... for choice positions
func choiceLabel(i int) string {
	return string(rune('A' + i))
}
