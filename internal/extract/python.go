package extract

import (
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// pythonExtractor extracts function, method, and class declarations from
// Python source. Grounded on the teacher's internal/graph/treesitter_py.go
// walk shape, mapped onto the tagged-union Declaration model instead of a
// graph-database SymbolNode.
type pythonExtractor struct{}

func (pythonExtractor) Extract(adapter parser.Adapter, tree *parser.Tree, source []byte, filePath string) model.DeclarationPayload {
	root := tree.RootNode()
	payload := model.DeclarationPayload{Language: model.LangPython}

	adapter.Walk(root, func(n *parser.Node) bool {
		switch n.Kind() {
		case "import_statement", "import_from_statement":
			if imp := pyExtractImport(n, source); imp != nil {
				payload.Imports = append(payload.Imports, *imp)
			}
			return false

		case "class_definition":
			if d := pyExtractClass(n, source, filePath); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			// Recurse into the class body to pick up methods.
			return true

		case "function_definition":
			if d := pyExtractFunction(n, source, filePath); d != nil {
				payload.Declarations = append(payload.Declarations, *d)
			}
			return false
		}
		return true
	})

	return payload
}

func pyExtractImport(n *parser.Node, source []byte) *model.Import {
	if n.Kind() == "import_from_statement" {
		if mod := n.ChildByFieldName("module_name"); mod != nil {
			return &model.Import{Path: nodeText(mod, source)}
		}
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == "dotted_name" {
			return &model.Import{Path: nodeText(child, source)}
		}
	}
	return nil
}

func pyExtractClass(n *parser.Node, source []byte, filePath string) *model.Declaration {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	d := &model.Declaration{
		Kind:      model.DeclType,
		Name:      nodeText(nameNode, source),
		File:      filePath,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Span:      byteRange(n),
		Shape:     model.TypeStruct,
	}
	return d
}

// pyExtractFunction classifies a function_definition as a Method (Kind
// DeclMethod, Receiver name taken from the first parameter, whatever it is
// called) when it has an enclosing class, or a free Function otherwise.
func pyExtractFunction(n *parser.Node, source []byte, filePath string) *model.Declaration {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	d := &model.Declaration{
		Name:      nodeText(nameNode, source),
		File:      filePath,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Span:      byteRange(n),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		d.BodySpan = byteRange(body)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		d.Params = pyExtractParams(params, source)
	}

	if class := pyEnclosingClass(n, source); class != "" {
		d.Kind = model.DeclMethod
		recvName := ""
		if len(d.Params) > 0 {
			recvName = d.Params[0].Name
		}
		d.Receiver = &model.Receiver{Name: recvName, TypeName: class}
	} else {
		d.Kind = model.DeclFunction
	}
	return d
}

func pyExtractParams(list *parser.Node, source []byte) []model.Param {
	var out []model.Param
	for i := uint(0); i < list.ChildCount(); i++ {
		child := list.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			out = append(out, model.Param{Name: nodeText(child, source)})
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if fields := strings.Fields(nodeText(child, source)); len(fields) > 0 {
				out = append(out, model.Param{Name: fields[0]})
			}
		}
	}
	return out
}

// pyEnclosingClass walks up from a function_definition to find an ancestor
// class_definition, returning its name or "" if the function is module-level.
func pyEnclosingClass(n *parser.Node, source []byte) string {
	parent := n.Parent()
	for parent != nil {
		if parent.Kind() == "class_definition" {
			if nameNode := parent.ChildByFieldName("name"); nameNode != nil {
				return nodeText(nameNode, source)
			}
			return ""
		}
		parent = parent.Parent()
	}
	return ""
}
