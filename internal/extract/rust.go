package extract

import (
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// rustExtractor extracts functions, structs, enums, traits, type aliases,
// and impl-block methods from Rust source. Grounded on the teacher's
// internal/graph/treesitter_rs.go walk shape.
type rustExtractor struct{}

func (rustExtractor) Extract(adapter parser.Adapter, tree *parser.Tree, source []byte, filePath string) model.DeclarationPayload {
	root := tree.RootNode()
	payload := model.DeclarationPayload{Language: model.LangRust}

	adapter.Walk(root, func(n *parser.Node) bool {
		switch n.Kind() {
		case "use_declaration":
			if imp := rsExtractUse(n, source); imp != nil {
				payload.Imports = append(payload.Imports, *imp)
			}
			return false

		case "function_item":
			if d := rsExtractNamed(n, source, filePath, model.DeclFunction, model.TypeAlias); d != nil {
				d.BodySpan = rsBodySpan(n)
				d.Params = rsExtractParams(n, source)
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "struct_item":
			if d := rsExtractNamed(n, source, filePath, model.DeclType, model.TypeStruct); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "enum_item":
			if d := rsExtractNamed(n, source, filePath, model.DeclType, model.TypeEnumLike); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "trait_item":
			if d := rsExtractNamed(n, source, filePath, model.DeclType, model.TypeInterface); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "type_item":
			if d := rsExtractNamed(n, source, filePath, model.DeclType, model.TypeAlias); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "impl_item":
			payload.Declarations = append(payload.Declarations, rsExtractImplMethods(n, source, filePath)...)
			return false
		}
		return true
	})

	return payload
}

func rsExtractUse(n *parser.Node, source []byte) *model.Import {
	arg := n.ChildByFieldName("argument")
	if arg == nil {
		return nil
	}
	path := nodeText(arg, source)
	if path == "" {
		return nil
	}
	return &model.Import{Path: path}
}

func rsExtractNamed(n *parser.Node, source []byte, filePath string, kind model.DeclKind, shape model.TypeShape) *model.Declaration {
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

func rsBodySpan(n *parser.Node) model.ByteRange {
	if body := n.ChildByFieldName("body"); body != nil {
		return byteRange(body)
	}
	return model.ByteRange{}
}

func rsExtractParams(n *parser.Node, source []byte) []model.Param {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []model.Param
	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "parameter":
			pat := child.ChildByFieldName("pattern")
			typ := child.ChildByFieldName("type")
			p := model.Param{}
			if pat != nil {
				p.Name = nodeText(pat, source)
			}
			if typ != nil {
				p.Type = strings.TrimSpace(nodeText(typ, source))
			}
			out = append(out, p)
		case "self_parameter":
			out = append(out, model.Param{Name: nodeText(child, source)})
		}
	}
	return out
}

// rsExtractImplMethods extracts every function_item inside an impl block's
// body as a Method, with the receiver taken from the impl's "type" field
// (the Self type) — Rust methods are identified by a leading self_parameter
// rather than a separate receiver clause, so the impl target stands in for
// spec.md's receiver type.
func rsExtractImplMethods(n *parser.Node, source []byte, filePath string) []model.Declaration {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	selfType := nodeText(typeNode, source)

	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var out []model.Declaration
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil || child.Kind() != "function_item" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		d := model.Declaration{
			Kind:      model.DeclMethod,
			Name:      nodeText(nameNode, source),
			File:      filePath,
			StartLine: startLine(child),
			EndLine:   endLine(child),
			Span:      byteRange(child),
			Params:    rsExtractParams(child, source),
			BodySpan:  rsBodySpan(child),
			Receiver:  &model.Receiver{TypeName: selfType},
		}
		out = append(out, d)
	}
	return out
}
