// Package extract walks the CST of one already-parsed file and yields a
// language-tagged bag of declarations (spec.md §4.3). Extractors are purely
// structural: they never resolve an identifier against another file.
package extract

import (
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// Extractor is the per-language visitor driven from one file's CST root.
type Extractor interface {
	Extract(adapter parser.Adapter, tree *parser.Tree, source []byte, filePath string) model.DeclarationPayload
}

var registry = map[model.Language]Extractor{
	model.LangGo:         goExtractor{},
	model.LangPython:     pythonExtractor{},
	model.LangRust:       rustExtractor{},
	model.LangTypeScript: typescriptExtractor{},
}

// For looks up the registered Extractor for a language tag.
func For(lang model.Language) (Extractor, bool) {
	e, ok := registry[lang]
	return e, ok
}

// nodeText is a small convenience shared by every language extractor.
func nodeText(node *parser.Node, source []byte) string {
	return parser.TextOf(node, source)
}

func byteRange(node *parser.Node) model.ByteRange {
	return model.ByteRange{Start: uint(node.StartByte()), End: uint(node.EndByte())}
}

func startLine(node *parser.Node) int { return int(node.StartPosition().Row) + 1 }
func endLine(node *parser.Node) int   { return int(node.EndPosition().Row) + 1 }
