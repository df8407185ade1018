package extract

import (
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// goExtractor extracts function, method, type, constant, and variable
// declarations from Go source files. Grounded on the receiver/signature
// handling of phobologic-repoguide's internal/lang/golang.go and the
// top-level walk shape of the teacher's internal/graph/treesitter_go.go.
type goExtractor struct{}

func (goExtractor) Extract(adapter parser.Adapter, tree *parser.Tree, source []byte, filePath string) model.DeclarationPayload {
	root := tree.RootNode()
	payload := model.DeclarationPayload{Language: model.LangGo}

	adapter.Walk(root, func(n *parser.Node) bool {
		switch n.Kind() {
		case "package_clause":
			if nameNode := goChildOfKind(n, "package_identifier"); nameNode != nil {
				payload.PackageName = nodeText(nameNode, source)
			}
			return false

		case "import_declaration":
			payload.Imports = append(payload.Imports, goExtractImports(n, source)...)
			return false

		case "function_declaration":
			if d := goExtractFunction(n, source, filePath); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "method_declaration":
			if d := goExtractMethod(n, source, filePath); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false

		case "type_declaration":
			payload.Declarations = append(payload.Declarations, goExtractTypeDecl(n, source, filePath)...)
			return false

		case "const_declaration":
			payload.Declarations = append(payload.Declarations, goExtractConstOrVar(n, source, filePath, model.DeclConstant)...)
			return false

		case "var_declaration":
			payload.Declarations = append(payload.Declarations, goExtractConstOrVar(n, source, filePath, model.DeclVariable)...)
			return false
		}
		return true
	})

	return payload
}

// goChildOfKind returns n's first direct child of the given kind. Used where
// the grammar exposes a child only positionally, with no field name — the
// package_clause's package_identifier child, notably.
func goChildOfKind(n *parser.Node, kind string) *parser.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func goExtractImports(n *parser.Node, source []byte) []model.Import {
	var out []model.Import
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_spec":
			out = append(out, goExtractImportSpec(child, source))
		case "import_spec_list":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec != nil && spec.Kind() == "import_spec" {
					out = append(out, goExtractImportSpec(spec, source))
				}
			}
		}
	}
	return out
}

func goExtractImportSpec(n *parser.Node, source []byte) model.Import {
	imp := model.Import{Kind: model.AliasNone}
	pathNode := n.ChildByFieldName("path")
	if pathNode != nil {
		imp.Path = strings.Trim(nodeText(pathNode, source), `"`)
	}
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		switch nodeText(nameNode, source) {
		case "_":
			imp.Kind = model.AliasBlank
		case ".":
			imp.Kind = model.AliasDot
		default:
			imp.Kind = model.AliasNamed
			imp.Alias = nodeText(nameNode, source)
		}
	}
	return imp
}

func goExtractFunction(n *parser.Node, source []byte, filePath string) *model.Declaration {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	d := &model.Declaration{
		Kind:      model.DeclFunction,
		Name:      nodeText(nameNode, source),
		File:      filePath,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Span:      byteRange(n),
	}
	goFillFuncShape(n, source, d)
	return d
}

func goExtractMethod(n *parser.Node, source []byte, filePath string) *model.Declaration {
	nameNode := n.ChildByFieldName("name")
	recvNode := n.ChildByFieldName("receiver")
	if nameNode == nil || recvNode == nil {
		return nil
	}
	d := &model.Declaration{
		Kind:      model.DeclMethod,
		Name:      nodeText(nameNode, source),
		File:      filePath,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Span:      byteRange(n),
		Receiver:  goExtractReceiver(recvNode, source),
	}
	goFillFuncShape(n, source, d)
	return d
}

// goExtractReceiver decomposes a method's receiver parameter_list into
// (name, type, pointer?), stripping a leading "*" from the type so it can
// be compared against Type declarations by name (spec.md §3).
func goExtractReceiver(recvList *parser.Node, source []byte) *model.Receiver {
	for i := uint(0); i < recvList.ChildCount(); i++ {
		child := recvList.Child(i)
		if child == nil || child.Kind() != "parameter_declaration" {
			continue
		}
		r := &model.Receiver{}
		if nameNode := child.ChildByFieldName("name"); nameNode != nil {
			r.Name = nodeText(nameNode, source)
		}
		typeNode := child.ChildByFieldName("type")
		if typeNode == nil {
			return r
		}
		if typeNode.Kind() == "pointer_type" {
			r.Pointer = true
			if inner := typeNode.ChildByFieldName("type"); inner != nil {
				r.TypeName = nodeText(inner, source)
			} else {
				r.TypeName = strings.TrimPrefix(nodeText(typeNode, source), "*")
			}
		} else {
			r.TypeName = nodeText(typeNode, source)
		}
		return r
	}
	return nil
}

func goFillFuncShape(n *parser.Node, source []byte, d *model.Declaration) {
	if params := n.ChildByFieldName("parameters"); params != nil {
		d.Params = goExtractParams(params, source)
	}
	if result := n.ChildByFieldName("result"); result != nil {
		d.Results = goExtractResult(result, source)
	}
	if tparams := n.ChildByFieldName("type_parameters"); tparams != nil {
		d.Generics = goExtractGenericNames(tparams, source)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		d.BodySpan = byteRange(body)
	}
}

func goExtractParams(list *parser.Node, source []byte) []model.Param {
	var out []model.Param
	for i := uint(0); i < list.ChildCount(); i++ {
		child := list.Child(i)
		if child == nil || child.Kind() != "parameter_declaration" {
			continue
		}
		typeNode := child.ChildByFieldName("type")
		typeStr := ""
		if typeNode != nil {
			typeStr = strings.TrimSpace(nodeText(typeNode, source))
		}
		named := false
		for j := uint(0); j < child.ChildCount(); j++ {
			sub := child.Child(j)
			if sub != nil && sub.Kind() == "identifier" {
				out = append(out, model.Param{Name: nodeText(sub, source), Type: typeStr})
				named = true
			}
		}
		if !named {
			out = append(out, model.Param{Type: typeStr})
		}
	}
	return out
}

func goExtractResult(result *parser.Node, source []byte) []string {
	if result.Kind() == "parameter_list" {
		var out []string
		for i := uint(0); i < result.ChildCount(); i++ {
			child := result.Child(i)
			if child != nil && child.Kind() == "parameter_declaration" {
				if t := child.ChildByFieldName("type"); t != nil {
					out = append(out, strings.TrimSpace(nodeText(t, source)))
				}
			}
		}
		return out
	}
	return []string{strings.TrimSpace(nodeText(result, source))}
}

func goExtractGenericNames(tparams *parser.Node, source []byte) []string {
	var out []string
	for i := uint(0); i < tparams.ChildCount(); i++ {
		child := tparams.Child(i)
		if child == nil || child.Kind() != "type_parameter_declaration" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			sub := child.Child(j)
			if sub != nil && sub.Kind() == "identifier" {
				out = append(out, nodeText(sub, source))
			}
		}
	}
	return out
}

func goExtractTypeDecl(n *parser.Node, source []byte, filePath string) []model.Declaration {
	var out []model.Declaration
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || child.Kind() != "type_spec" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		d := model.Declaration{
			Kind:      model.DeclType,
			Name:      nodeText(nameNode, source),
			File:      filePath,
			StartLine: startLine(child),
			EndLine:   endLine(child),
			Span:      byteRange(child),
			Shape:     model.TypeAlias,
		}
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			switch typeNode.Kind() {
			case "struct_type":
				d.Shape = model.TypeStruct
				d.Fields = goExtractStructFields(typeNode, source)
			case "interface_type":
				d.Shape = model.TypeInterface
				d.Fields = goExtractInterfaceMethods(typeNode, source)
			default:
				d.Shape = model.TypeAlias
				d.DeclaredType = strings.TrimSpace(nodeText(typeNode, source))
			}
		}
		out = append(out, d)
	}
	return out
}

func goExtractStructFields(structType *parser.Node, source []byte) []model.Field {
	var out []model.Field
	body := goChildOfKind(structType, "field_declaration_list")
	if body == nil {
		return out
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil || child.Kind() != "field_declaration" {
			continue
		}
		typeNode := child.ChildByFieldName("type")
		typeStr := ""
		if typeNode != nil {
			typeStr = strings.TrimSpace(nodeText(typeNode, source))
		}
		found := false
		for j := uint(0); j < child.ChildCount(); j++ {
			sub := child.Child(j)
			if sub != nil && sub.Kind() == "field_identifier" {
				out = append(out, model.Field{Name: nodeText(sub, source), Type: typeStr})
				found = true
			}
		}
		if !found && typeNode != nil {
			// Embedded field: the type itself is the field name.
			out = append(out, model.Field{Name: typeStr, Type: typeStr})
		}
	}
	return out
}

func goExtractInterfaceMethods(ifaceType *parser.Node, source []byte) []model.Field {
	var out []model.Field
	for i := uint(0); i < ifaceType.ChildCount(); i++ {
		child := ifaceType.Child(i)
		if child == nil || child.Kind() != "method_elem" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		out = append(out, model.Field{
			Name: nodeText(nameNode, source),
			Type: strings.TrimSpace(nodeText(child, source)),
		})
	}
	return out
}

// goExtractConstOrVar handles const_declaration/var_declaration, which
// contain one or more const_spec/var_spec children, each of which may itself
// declare multiple names sharing one initializer list. Each name becomes a
// separate declaration; names declared in the same spec (`const a, b = 1, 2`)
// all carry that spec's span and lines, so their spans are identical.
func goExtractConstOrVar(n *parser.Node, source []byte, filePath string, kind model.DeclKind) []model.Declaration {
	var out []model.Declaration
	specKind := "const_spec"
	if kind == model.DeclVariable {
		specKind = "var_spec"
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		spec := n.Child(i)
		if spec == nil || spec.Kind() != specKind {
			continue
		}
		out = append(out, goExtractSpecNames(spec, source, filePath, kind)...)
	}
	return out
}

func goExtractSpecNames(spec *parser.Node, source []byte, filePath string, kind model.DeclKind) []model.Declaration {
	var names []*parser.Node
	var typeStr string
	var valueNode *parser.Node

	for i := uint(0); i < spec.ChildCount(); i++ {
		child := spec.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			names = append(names, child)
		case "type_identifier", "pointer_type", "qualified_type", "slice_type", "map_type",
			"array_type", "channel_type", "interface_type", "struct_type", "function_type",
			"generic_type":
			typeStr = strings.TrimSpace(nodeText(child, source))
		case "expression_list":
			valueNode = child
		}
	}

	out := make([]model.Declaration, 0, len(names))
	for _, nameNode := range names {
		d := model.Declaration{
			Kind:         kind,
			Name:         nodeText(nameNode, source),
			File:         filePath,
			StartLine:    startLine(spec),
			EndLine:      endLine(spec),
			Span:         byteRange(spec),
			DeclaredType: typeStr,
		}
		if valueNode != nil {
			d.InitializerSpan = byteRange(valueNode)
		}
		out = append(out, d)
	}
	return out
}
