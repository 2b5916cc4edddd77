package quiz

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ppiankov/factquiz/internal/model"
)

// itemNamespace scopes name-based item IDs so they are stable across runs
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ppiankov/factquiz/item"))

// Assemble keeps items of the requested kinds and numbers them from 1.
// Order is preserved; the same sentence may contribute items of several kinds.
func Assemble(items []model.QuestionItem, kinds []model.Kind) model.ResultSet {
	out := make([]model.QuestionItem, 0, len(items))
	for _, item := range items {
		if !containsKind(kinds, item.Kind) {
			continue
		}
		item.Index = len(out) + 1
		item.ID = itemID(item)
		out = append(out, item)
	}
	return model.ResultSet{Items: out}
}

func itemID(item model.QuestionItem) string {
	name := fmt.Sprintf("%d|%s|%d|%s|%s", item.Index, item.Kind, item.SentenceIndex, item.Question, item.Answer)
	return uuid.NewSHA1(itemNamespace, []byte(name)).String()
}
