package extract

import (
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/factquiz/internal/model"
)

// Sentences returns a lazy sequence of the sentences in text.
// Each range over the sequence starts again from the beginning.
func Sentences(text string) iter.Seq[model.Sentence] {
	return func(yield func(model.Sentence) bool) {
		// Collapse whitespace so sentences wrapped across lines are rejoined
		text := strings.Join(strings.Fields(text), " ")

		index := 0
		emit := func(raw string) bool {
			sentence := strings.TrimSpace(raw)
			if sentence == "" {
				return true
			}
			ok := yield(model.Sentence{
				Text:  sentence,
				Index: index,
				Lang:  detectLanguage(sentence),
			})
			index++
			return ok
		}

		start := 0
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			i += size
			if !isTerminal(r) {
				continue
			}

			// Keep runs like "?!" or a closing quote with the sentence
			for i < len(text) {
				next, n := utf8.DecodeRuneInString(text[i:])
				if !isTerminal(next) && !isClosing(next) {
					break
				}
				i += n
			}

			// Latin terminators only end a sentence before whitespace (avoids "3.14", "e.g.x")
			if !isFullWidthTerminal(r) && i < len(text) {
				next, _ := utf8.DecodeRuneInString(text[i:])
				if !unicode.IsSpace(next) {
					continue
				}
			}

			if !emit(text[start:i]) {
				return
			}
			start = i
		}

		// Trailing text without terminal punctuation
		emit(text[start:])
	}
}

// Segment collects every sentence in text
func Segment(text string) []model.Sentence {
	return slices.Collect(Sentences(text))
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func isFullWidthTerminal(r rune) bool {
	return r == '。' || r == '！' || r == '？'
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', '”', '’', '」', '』', '）':
		return true
	}
	return false
}

// detectLanguage is a hint only; template selection decides the real language
func detectLanguage(s string) string {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return model.LangChinese
		}
	}
	return model.LangEnglish
}
