// Package ingest implements the single-file half of spec.md §6's public API
// surface (detect_language, open_file): reading a file, detecting or
// accepting an explicit language tag, parsing it, and extracting its
// declaration payload into a model.SourceFile. The concurrent driver
// (internal/driver) calls Open once per requested file; it is also the
// implementation behind a direct, single-file open_file call.
package ingest

import (
	"os"

	"github.com/dusk-indust/semslice/internal/extract"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
	"github.com/dusk-indust/semslice/internal/slicerr"
)

// DetectLanguage matches path to a registered language tag by suffix.
func DetectLanguage(path string) (model.Language, bool) {
	return parser.Detect(path)
}

// Open reads, parses, and extracts declarations from the file at path,
// using factory to acquire (and release) a parser adapter. If tag is the
// zero value, the language is detected from the file's suffix.
func Open(factory *parser.Factory, path string, tag model.Language) (*model.SourceFile, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, slicerr.New(slicerr.IOError, path, err)
	}
	return OpenBytes(factory, path, text, tag)
}

// OpenBytes is Open without the filesystem read, for callers (tests, the
// MCP server) that already hold the source text in memory.
func OpenBytes(factory *parser.Factory, path string, text []byte, tag model.Language) (*model.SourceFile, error) {
	if tag == "" {
		detected, ok := DetectLanguage(path)
		if !ok {
			return nil, slicerr.New(slicerr.UnsupportedLanguage, path, nil)
		}
		tag = detected
	}
	if !tag.Known() {
		return nil, slicerr.New(slicerr.UnsupportedLanguage, path, nil)
	}

	adapter, err := factory.Acquire(tag)
	if err != nil {
		return nil, err
	}
	defer factory.Release(adapter)

	tree, err := adapter.Parse(text)
	if err != nil {
		return nil, slicerr.New(slicerr.ParseFailure, path, err)
	}

	extractor, ok := extract.For(tag)
	if !ok {
		tree.Close()
		return nil, slicerr.New(slicerr.UnsupportedLanguage, path, nil)
	}
	payload := extractor.Extract(adapter, tree, text, path)
	for i := range payload.Declarations {
		payload.Declarations[i].Package = payload.PackageName
	}

	return &model.SourceFile{
		Path:     path,
		Text:     text,
		Tree:     tree,
		Language: tag,
		Payload:  payload,
	}, nil
}
