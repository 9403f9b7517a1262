package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const nbsp = "\u00a0"

// NbspEntity is how a non-breaking space appears in rendered markup.
const NbspEntity = "&nbsp;"

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	nbsp, NbspEntity,
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

func renderNode(w *bytes.Buffer, node *html.Node, raw bool) error {
	switch node.Type {
	case html.TextNode:
		if raw {
			w.WriteString(node.Data)
			return nil
		}
		w.WriteString(textEscaper.Replace(node.Data))
		return nil
	case html.ElementNode:
	default:
		return html.Render(w, node)
	}

	w.WriteByte('<')
	w.WriteString(node.Data)
	for _, attr := range node.Attr {
		w.WriteByte(' ')
		if attr.Namespace != "" {
			w.WriteString(attr.Namespace)
			w.WriteByte(':')
		}
		w.WriteString(attr.Key)
		w.WriteString(`="`)
		w.WriteString(html.EscapeString(attr.Val))
		w.WriteByte('"')
	}
	if voidElements[node.Data] {
		w.WriteString("/>")
		return nil
	}
	w.WriteByte('>')
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		err := renderNode(w, child, rawTextElements[node.Data])
		if err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(node.Data)
	w.WriteByte('>')
	return nil
}

// InnerHtml renders the children of the first node in the selection.
//
// Text only gets &, < and > escaped and U+00A0 written as &nbsp;, quotes
// and apostrophes are kept as is (html.Render would emit &#34; and &#39;).
// Attribute values are escaped as usual.
func InnerHtml(sel *goquery.Selection) (string, error) {
	if sel.Length() == 0 {
		return "", nil
	}
	var buffer bytes.Buffer
	for child := sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		err := renderNode(&buffer, child, false)
		if err != nil {
			return "", err
		}
	}
	return buffer.String(), nil
}

// TrimNewlines removes leading and trailing line breaks only, inner
// whitespace and indentation are left alone.
func TrimNewlines(s string) string {
	return strings.Trim(s, "\r\n")
}

// PlainText returns the text content of a markup fragment with entities
// decoded and surrounding whitespace removed, non-breaking spaces count as
// whitespace.
func PlainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	text := strings.ReplaceAll(doc.Text(), nbsp, " ")
	return strings.TrimSpace(text)
}
