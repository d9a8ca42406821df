// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package infobox pulls the first summary infobox out of rendered page
// HTML and normalizes it to plain text for field extraction.
package infobox

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoInfobox reports that the page HTML contains no infobox element.
var ErrNoInfobox = errors.New("page has no infobox")

// Pre-compiled cleanup patterns.
var (
	multiSpacePattern   = regexp.MustCompile(` +`)
	multiNewlinePattern = regexp.MustCompile(`\n+`)
)

// Extract returns the text content of the first element carrying the
// "infobox" class in rawHTML, or ErrNoInfobox when none exists. Table
// rows and <br> elements become newlines so that line-terminated
// fields survive the flattening.
func Extract(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	node := findInfobox(doc)
	if node == nil {
		return "", ErrNoInfobox
	}

	var sb strings.Builder
	renderText(node, &sb)
	return sb.String(), nil
}

// findInfobox walks the tree depth-first and returns the first element
// whose class attribute includes "infobox".
func findInfobox(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, "infobox") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findInfobox(c); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func renderText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br":
			sb.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(c, sb)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "tr", "th", "caption", "li", "p", "div":
			sb.WriteString("\n")
		}
	}
}

// Clean normalizes extracted text: non-printable and non-ASCII runes
// become spaces, runs of spaces collapse to one, and runs of newlines
// collapse to one.
func Clean(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			sb.WriteRune(r)
		case r > 126 || r < 32:
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}

	cleaned := sb.String()
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = multiNewlinePattern.ReplaceAllString(cleaned, "\n")
	return cleaned
}
