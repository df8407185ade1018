package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/semslice/internal/ingest"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

var fixtureSrc = []byte(`package project

import "fmt"

func greet(name string) string {
	return fmt.Sprintf("hello, %s", name)
}
`)

func openFixture(t *testing.T) *model.SourceFile {
	t.Helper()
	sf, err := ingest.OpenBytes(parser.NewFactory(), "greet.go", fixtureSrc, model.LangGo)
	require.NoError(t, err)
	t.Cleanup(sf.Close)
	return sf
}

func findDecl(t *testing.T, sf *model.SourceFile, name string) model.Declaration {
	t.Helper()
	for _, d := range sf.Payload.Declarations {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("declaration %q not found", name)
	return model.Declaration{}
}

func TestRender_MarksChangedLinesInSeed(t *testing.T) {
	sf := openFixture(t)
	greet := findDecl(t, sf, "greet")

	ctx := model.SemanticContext{
		Seed:    model.ResolvedDecl{Decl: &greet, File: sf},
		Imports: sf.Payload.Imports,
	}
	hunks := []model.Hunk{{NewRange: model.LineRange{Start: greet.StartLine + 1, End: greet.StartLine + 2}}}

	out := Render(ctx, hunks, model.RenderOptions{Marker: " // CHANGED", CommitID: "abc123"})

	lines := strings.Split(out, "\n")
	var markedCount int
	for _, l := range lines {
		if strings.HasSuffix(l, "// CHANGED") {
			markedCount++
		}
	}
	assert.Equal(t, 1, markedCount, "exactly one line should carry the change marker")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, `import (`)
	assert.Contains(t, out, `"fmt"`)
}

func TestRender_NoHunksNoMarkers(t *testing.T) {
	sf := openFixture(t)
	greet := findDecl(t, sf, "greet")

	ctx := model.SemanticContext{Seed: model.ResolvedDecl{Decl: &greet, File: sf}}
	out := Render(ctx, nil, model.DefaultRenderOptions())

	assert.NotContains(t, out, "<-- changed")
}

func TestRender_EndsWithSingleTrailingNewline(t *testing.T) {
	sf := openFixture(t)
	greet := findDecl(t, sf, "greet")

	ctx := model.SemanticContext{Seed: model.ResolvedDecl{Decl: &greet, File: sf}}
	out := Render(ctx, nil, model.DefaultRenderOptions())

	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

var depSrc = []byte(`package project

type B struct {
	Inner A
}

type A struct {
	Name string
}
`)

func TestRender_OrdersBlocksTopologicallyByUsesEdges(t *testing.T) {
	sf, err := ingest.OpenBytes(parser.NewFactory(), "dep.go", depSrc, model.LangGo)
	require.NoError(t, err)
	t.Cleanup(sf.Close)

	declB := findDecl(t, sf, "B")
	declA := findDecl(t, sf, "A")
	rdB := model.ResolvedDecl{Decl: &declB, File: sf}
	rdA := model.ResolvedDecl{Decl: &declA, File: sf}

	// Types appear in discovery order B, A (matching B's earlier line number),
	// but B uses A, so a correct topological sort must emit A first even
	// though (file path, start line) alone would rank B ahead.
	ctx := model.SemanticContext{
		Seed:  model.ResolvedDecl{Decl: &declB, File: sf},
		Types: []model.ResolvedDecl{rdB, rdA},
		Uses: map[model.DeclKey][]model.DeclKey{
			rdB.Key(): {rdA.Key()},
		},
	}

	out := Render(ctx, nil, model.DefaultRenderOptions())

	// A type's span is its type_spec, which starts at the name, not at the
	// "type" keyword.
	idxA := strings.Index(out, "A struct {")
	idxB := strings.Index(out, "B struct {")
	require.NotEqual(t, -1, idxA)
	require.NotEqual(t, -1, idxB)
	assert.Less(t, idxA, idxB, "A must be emitted before B since B uses A")
}

func TestRender_DefaultHeaderUsesUnknownCommitWhenEmpty(t *testing.T) {
	sf := openFixture(t)
	greet := findDecl(t, sf, "greet")

	ctx := model.SemanticContext{Seed: model.ResolvedDecl{Decl: &greet, File: sf}}
	out := Render(ctx, nil, model.DefaultRenderOptions())

	assert.Contains(t, out, "commit unknown")
}
