package extractor

// DocumentView is the capability the extraction engine needs from a parsed
// markup tree: find every node matching a selector. Any markup-parsing
// library can satisfy it, keeping the engine decoupled from a specific parser.
type DocumentView interface {
	Find(selector string) []NodeView
}

// NodeView is one matched node. It supports scoped sub-queries plus
// text and attribute reads.
type NodeView interface {
	DocumentView
	Text() string
	Attr(name string) (string, bool)
}
