package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	g "maragu.dev/gomponents"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// RenderNode renders a component and parses the result.
func RenderNode(t testing.TB, n g.Node) *goquery.Document {
	t.Helper()

	var sb strings.Builder
	if err := n.Render(&sb); err != nil {
		t.Fatalf("render node: %v", err)
	}
	return ParseHTML(t, []byte(sb.String()))
}
