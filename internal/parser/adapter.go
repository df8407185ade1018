// Package parser wraps the generated tree-sitter CST parsers for each
// supported language behind a single, language-neutral Adapter contract,
// and pools adapter instances in a Factory so the same underlying
// tree-sitter parser can be reused across files of one language.
package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/slicerr"
)

// Node and Tree are the go-tree-sitter CST types. Every language grammar
// registered with this package produces the same concrete types; only the
// grammar (the Language passed to Parser.SetLanguage) differs.
type (
	Node = tree_sitter.Node
	Tree = tree_sitter.Tree
)

// Point is a 0-based (line, column) position, matching spec.md §4.1's
// node_at contract.
type Point struct {
	Line   int
	Column int
}

// Adapter wraps a generated CST parser for one language. Instances are not
// required to be thread-safe; callers (the Factory's pool, or the
// concurrent driver) serialize access to one instance.
type Adapter interface {
	// Parse returns a CST whose root spans the full input. Lossy recovery
	// is acceptable: tree-sitter always produces a root node, using ERROR
	// nodes for unparseable regions, so Parse only fails if the underlying
	// parser could not be constructed for this instance.
	Parse(source []byte) (*Tree, error)

	// NodeAt returns the deepest node whose byte span contains the given
	// 0-based point, or (nil, false) if the point is out of the root's
	// bounds.
	NodeAt(tree *Tree, point Point) (*Node, bool)

	// TextOf returns the substring of source given by node's byte range.
	// Total as long as tree was produced by Parse(source) on this adapter.
	TextOf(node *Node, source []byte) string

	// Walk performs a pre-order traversal from root, calling visit exactly
	// once per node. If visit returns false, that node's children are
	// skipped.
	Walk(root *Node, visit func(*Node) bool)

	// LanguageName is the tag this adapter is registered under.
	LanguageName() model.Language

	// FileExtensions lists the suffixes this adapter's language claims.
	FileExtensions() []string
}

// TextOf is shared by every adapter: tree-sitter node byte ranges index
// directly into the source slice regardless of grammar.
func TextOf(node *Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

// Walk is the shared pre-order traversal every adapter delegates to.
func Walk(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	cursor := root.Walk()
	defer cursor.Close()
	walkCursor(cursor, visit)
}

func walkCursor(cursor *tree_sitter.TreeCursor, visit func(*Node) bool) {
	node := cursor.Node()
	if node == nil {
		return
	}
	descend := visit(node)
	if !descend {
		return
	}
	if cursor.GotoFirstChild() {
		walkCursor(cursor, visit)
		for cursor.GotoNextSibling() {
			walkCursor(cursor, visit)
		}
		cursor.GotoParent()
	}
}

// NodeAt is the shared deepest-node-at-point search every adapter delegates
// to: tree-sitter positions are grammar-independent.
func NodeAt(tree *Tree, point Point) (*Node, bool) {
	if tree == nil || point.Line < 0 || point.Column < 0 {
		return nil, false
	}
	root := tree.RootNode()
	if root == nil {
		return nil, false
	}
	tsPoint := tree_sitter.Point{Row: uint(point.Line), Column: uint(point.Column)}
	if !containsPoint(root, tsPoint) {
		return nil, false
	}
	return descendToPoint(root, tsPoint), true
}

func containsPoint(n *Node, p tree_sitter.Point) bool {
	start, end := n.StartPosition(), n.EndPosition()
	after := p.Row > start.Row || (p.Row == start.Row && p.Column >= start.Column)
	before := p.Row < end.Row || (p.Row == end.Row && p.Column <= end.Column)
	return after && before
}

func descendToPoint(n *Node, p tree_sitter.Point) *Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if containsPoint(child, p) {
			return descendToPoint(child, p)
		}
	}
	return n
}

// parseError wraps a tree-sitter parser construction failure.
func parseError(lang model.Language, cause error) error {
	return slicerr.New(slicerr.ParseFailure, string(lang), cause)
}
