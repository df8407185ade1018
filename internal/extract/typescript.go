package extract

import (
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// typescriptExtractor extracts functions, classes (with their methods),
// interfaces, type aliases, and enums from TypeScript source. Grounded on
// the teacher's internal/graph/treesitter_ts.go walk shape.
type typescriptExtractor struct{}

func (typescriptExtractor) Extract(adapter parser.Adapter, tree *parser.Tree, source []byte, filePath string) model.DeclarationPayload {
	root := tree.RootNode()
	payload := model.DeclarationPayload{Language: model.LangTypeScript}

	adapter.Walk(root, func(n *parser.Node) bool {
		switch n.Kind() {
		case "import_statement":
			if imp := tsExtractImport(n, source); imp != nil {
				payload.Imports = append(payload.Imports, *imp)
			}
			return false

		case "function_declaration":
			if d := tsExtractNamed(n, source, filePath, model.DeclFunction, model.TypeAlias); d != nil {
				if body := n.ChildByFieldName("body"); body != nil {
					d.BodySpan = byteRange(body)
				}
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "class_declaration":
			if d := tsExtractNamed(n, source, filePath, model.DeclType, model.TypeStruct); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			payload.Declarations = append(payload.Declarations, tsExtractClassMethods(n, source, filePath)...)
			return false

		case "interface_declaration":
			if d := tsExtractNamed(n, source, filePath, model.DeclType, model.TypeInterface); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "type_alias_declaration":
			if d := tsExtractNamed(n, source, filePath, model.DeclType, model.TypeAlias); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "enum_declaration":
			if d := tsExtractNamed(n, source, filePath, model.DeclType, model.TypeEnumLike); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "lexical_declaration":
			payload.Declarations = append(payload.Declarations, tsExtractTopLevelConst(n, source, filePath)...)
			return false
		}
		return true
	})

	return payload
}

func tsExtractImport(n *parser.Node, source []byte) *model.Import {
	text := nodeText(n, source)
	idx := strings.LastIndex(text, "from")
	if idx == -1 {
		return nil
	}
	path := strings.TrimSpace(text[idx+len("from"):])
	path = strings.Trim(path, "\"';")
	if path == "" {
		return nil
	}
	return &model.Import{Path: path}
}

func tsExtractNamed(n *parser.Node, source []byte, filePath string, kind model.DeclKind, shape model.TypeShape) *model.Declaration {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return &model.Declaration{
		Kind:      kind,
		Name:      nodeText(nameNode, source),
		File:      filePath,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Span:      byteRange(n),
		Shape:     shape,
	}
}

func tsExtractClassMethods(classNode *parser.Node, source []byte, filePath string) []model.Declaration {
	nameNode := classNode.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	className := nodeText(nameNode, source)

	body := classNode.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var out []model.Declaration
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil || child.Kind() != "method_definition" {
			continue
		}
		mNameNode := child.ChildByFieldName("name")
		if mNameNode == nil {
			continue
		}
		d := model.Declaration{
			Kind:      model.DeclMethod,
			Name:      nodeText(mNameNode, source),
			File:      filePath,
			StartLine: startLine(child),
			EndLine:   endLine(child),
			Span:      byteRange(child),
			Receiver:  &model.Receiver{Name: "this", TypeName: className},
		}
		if body := child.ChildByFieldName("body"); body != nil {
			d.BodySpan = byteRange(body)
		}
		out = append(out, d)
	}
	return out
}

// tsExtractTopLevelConst handles `const X = ...` / `let X = ...` declarations
// at module scope, including `const f = () => {...}` arrow functions, which
// TypeScript idiom uses in place of function declarations.
func tsExtractTopLevelConst(n *parser.Node, source []byte, filePath string) []model.Declaration {
	if !tsIsModuleScope(n) {
		return nil
	}
	var out []model.Declaration
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		d := model.Declaration{
			Kind:      model.DeclConstant,
			Name:      nodeText(nameNode, source),
			File:      filePath,
			StartLine: startLine(child),
			EndLine:   endLine(child),
			Span:      byteRange(child),
		}
		if value := child.ChildByFieldName("value"); value != nil {
			d.InitializerSpan = byteRange(value)
			if value.Kind() == "arrow_function" {
				d.Kind = model.DeclFunction
				if body := value.ChildByFieldName("body"); body != nil {
					d.BodySpan = byteRange(body)
				}
			}
		}
		out = append(out, d)
	}
	return out
}

func tsIsModuleScope(n *parser.Node) bool {
	parent := n.Parent()
	return parent != nil && parent.Kind() == "program"
}
