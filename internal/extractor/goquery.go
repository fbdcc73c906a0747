package extractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// ParseDocument parses raw markup into a DocumentView backed by goquery.
func ParseDocument(htmlByte []byte) (DocumentView, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlByte))
	if err != nil {
		return nil, err
	}
	return &goqueryDocument{doc: doc}, nil
}

type goqueryDocument struct {
	doc *goquery.Document
}

func (d *goqueryDocument) Find(selector string) []NodeView {
	return wrapSelection(d.doc.Find(selector))
}

type goqueryNode struct {
	sel *goquery.Selection
}

func (n *goqueryNode) Find(selector string) []NodeView {
	return wrapSelection(n.sel.Find(selector))
}

func (n *goqueryNode) Text() string {
	return n.sel.Text()
}

func (n *goqueryNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// wrapSelection splits a multi-node selection into per-node views,
// preserving document order.
func wrapSelection(sel *goquery.Selection) []NodeView {
	nodes := make([]NodeView, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &goqueryNode{sel: s})
	})
	return nodes
}

var _ DocumentView = (*goqueryDocument)(nil)
var _ NodeView = (*goqueryNode)(nil)
