package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/dusk-indust/semslice/internal/model"
)

type typescriptAdapter struct {
	lang *tree_sitter.Language
}

func newTypeScriptAdapter() *typescriptAdapter {
	return &typescriptAdapter{lang: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())}
}

func (a *typescriptAdapter) Parse(source []byte) (*Tree, error) {
	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(a.lang); err != nil {
		return nil, parseError(model.LangTypeScript, err)
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, parseError(model.LangTypeScript, fmt.Errorf("tree-sitter returned a nil tree"))
	}
	return tree, nil
}

func (a *typescriptAdapter) NodeAt(tree *Tree, point Point) (*Node, bool) { return NodeAt(tree, point) }
func (a *typescriptAdapter) TextOf(node *Node, source []byte) string     { return TextOf(node, source) }
func (a *typescriptAdapter) Walk(root *Node, visit func(*Node) bool)      { Walk(root, visit) }
func (a *typescriptAdapter) LanguageName() model.Language                 { return model.LangTypeScript }
func (a *typescriptAdapter) FileExtensions() []string                     { return model.LangTypeScript.Extensions() }
