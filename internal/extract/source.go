package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// LoadText reads a book file fully into memory.
// HTML files (.html, .htm) are reduced to their visible text.
func LoadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open book: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := VisibleText(f)
		if err != nil {
			return "", fmt.Errorf("parse html book: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read book: %w", err)
	}
	return string(data), nil
}

// VisibleText extracts text nodes from an HTML document, skipping scripts and styles
func VisibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}
