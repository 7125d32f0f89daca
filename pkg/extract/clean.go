package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CleanString normalizes a raw extracted value: one layer of surrounding
// double quotes is stripped (JSON-LD values arrive quoted), embedded markup
// is removed, entities are decoded and whitespace is collapsed.
func CleanString(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	node, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return NodeText(node)
}

// ExtractNumbers filters a string down to its digit and '-' characters.
// Used for yield parsing ("4 port" -> "4").
func ExtractNumbers(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// docRoot returns the root html node of a parsed goquery document.
func docRoot(doc *goquery.Document) *html.Node {
	return doc.Get(0)
}

// NodeText renders the inner text of a node with tags stripped and
// whitespace collapsed to single spaces.
func NodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
