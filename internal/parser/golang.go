package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/dusk-indust/semslice/internal/model"
)

// goAdapter wraps the tree-sitter Go grammar. A fresh *tree_sitter.Parser is
// created per Parse call so that sequential Parse calls on the same adapter
// never share parser-internal state; the adapter itself is still not safe
// for concurrent use by two goroutines at once (see Factory).
type goAdapter struct {
	lang *tree_sitter.Language
}

func newGoAdapter() *goAdapter {
	return &goAdapter{lang: tree_sitter.NewLanguage(tree_sitter_go.Language())}
}

func (a *goAdapter) Parse(source []byte) (*Tree, error) {
	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(a.lang); err != nil {
		return nil, parseError(model.LangGo, err)
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, parseError(model.LangGo, fmt.Errorf("tree-sitter returned a nil tree"))
	}
	return tree, nil
}

func (a *goAdapter) NodeAt(tree *Tree, point Point) (*Node, bool) { return NodeAt(tree, point) }
func (a *goAdapter) TextOf(node *Node, source []byte) string     { return TextOf(node, source) }
func (a *goAdapter) Walk(root *Node, visit func(*Node) bool)      { Walk(root, visit) }
func (a *goAdapter) LanguageName() model.Language                 { return model.LangGo }
func (a *goAdapter) FileExtensions() []string                     { return model.LangGo.Extensions() }
