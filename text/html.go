package text

import (
	"strings"

	"golang.org/x/net/html"
)

// ToHTML renders the document as an escaped <pre> block, a debug/export
// helper in the spirit of the teacher's html.InnerText/TextFromHTML (which
// move text in the opposite direction, HTML -> Text). This stays an export
// utility, not a rendering layer: core indexing, Replace and Slice never
// consult it.
func ToHTML(t Text) string {
	var sb strings.Builder
	sb.WriteString("<pre>")
	c := NewCursor(t, Forward)
	for c.Next() {
		if c.LineBreak() {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(html.EscapeString(c.Value()))
	}
	sb.WriteString("</pre>")
	return sb.String()
}

// TextFromHTML extracts the textual content of an HTML fragment into a
// Text, mirroring the teacher's html.TextFromHTML but targeting this
// package's rope instead of a cords.Cord.
func TextFromHTML(input string) (Text, error) {
	nodes, err := html.ParseFragment(strings.NewReader(input), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: 0})
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, n := range nodes {
		collectHTMLText(n, &sb)
	}
	if sb.Len() == 0 {
		return Empty, nil
	}
	return Of(strings.Split(sb.String(), "\n"))
}

func collectHTMLText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHTMLText(c, sb)
	}
}
