package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/dusk-indust/semslice/internal/model"
)

type pythonAdapter struct {
	lang *tree_sitter.Language
}

func newPythonAdapter() *pythonAdapter {
	return &pythonAdapter{lang: tree_sitter.NewLanguage(tree_sitter_python.Language())}
}

func (a *pythonAdapter) Parse(source []byte) (*Tree, error) {
	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(a.lang); err != nil {
		return nil, parseError(model.LangPython, err)
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, parseError(model.LangPython, fmt.Errorf("tree-sitter returned a nil tree"))
	}
	return tree, nil
}

func (a *pythonAdapter) NodeAt(tree *Tree, point Point) (*Node, bool) { return NodeAt(tree, point) }
func (a *pythonAdapter) TextOf(node *Node, source []byte) string     { return TextOf(node, source) }
func (a *pythonAdapter) Walk(root *Node, visit func(*Node) bool)      { Walk(root, visit) }
func (a *pythonAdapter) LanguageName() model.Language                 { return model.LangPython }
func (a *pythonAdapter) FileExtensions() []string                     { return model.LangPython.Extensions() }
