package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/dusk-indust/semslice/internal/model"
)

type rustAdapter struct {
	lang *tree_sitter.Language
}

func newRustAdapter() *rustAdapter {
	return &rustAdapter{lang: tree_sitter.NewLanguage(tree_sitter_rust.Language())}
}

func (a *rustAdapter) Parse(source []byte) (*Tree, error) {
	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(a.lang); err != nil {
		return nil, parseError(model.LangRust, err)
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, parseError(model.LangRust, fmt.Errorf("tree-sitter returned a nil tree"))
	}
	return tree, nil
}

func (a *rustAdapter) NodeAt(tree *Tree, point Point) (*Node, bool) { return NodeAt(tree, point) }
func (a *rustAdapter) TextOf(node *Node, source []byte) string     { return TextOf(node, source) }
func (a *rustAdapter) Walk(root *Node, visit func(*Node) bool)      { Walk(root, visit) }
func (a *rustAdapter) LanguageName() model.Language                 { return model.LangRust }
func (a *rustAdapter) FileExtensions() []string                     { return model.LangRust.Extensions() }
