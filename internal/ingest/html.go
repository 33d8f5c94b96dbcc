package ingest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// readHTMLFile extracts readable text from an HTML document, preferring
// <main> or <article> over <body> and skipping script/nav/footer noise.
// Block elements become line breaks so the heading heuristics downstream see
// the same line structure they would in a text file.
func readHTMLFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	node, err := html.Parse(bytes.NewReader(b))
	if err != nil || node == nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	root := firstElement(node, "main")
	if root == nil {
		root = firstElement(node, "article")
	}
	if root == nil {
		root = firstElement(node, "body")
	}
	if root == nil {
		return "", nil
	}
	var sb strings.Builder
	collectText(&sb, root)
	return sb.String(), nil
}

func firstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe":
			return
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "br", "hr", "ul", "ol", "tr":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(n.Data, "\t", " "), "\r", " "))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n")
		case "li", "tr":
			b.WriteString("\n")
		}
	}
}
