package resolve

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/semslice/internal/ingest"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// readFixture reads a test fixture relative to the project root. Tests run
// from internal/resolve/, so the relative path is ../../testdata/....
func readFixture(t *testing.T, relPath string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../" + relPath)
	require.NoError(t, err, "reading fixture %s", relPath)
	return data
}

func openProjectFixtures(t *testing.T) []*model.SourceFile {
	t.Helper()
	factory := parser.NewFactory()

	modelSrc := readFixture(t, "testdata/fixtures/go_project/model.go")
	serviceSrc := readFixture(t, "testdata/fixtures/go_project/service.go")

	modelFile, err := ingest.OpenBytes(factory, "model.go", modelSrc, model.LangGo)
	require.NoError(t, err)
	serviceFile, err := ingest.OpenBytes(factory, "service.go", serviceSrc, model.LangGo)
	require.NoError(t, err)

	t.Cleanup(func() {
		modelFile.Close()
		serviceFile.Close()
	})
	return []*model.SourceFile{modelFile, serviceFile}
}

func findDecl(files []*model.SourceFile, name string) (*model.Declaration, *model.SourceFile) {
	for _, f := range files {
		for i := range f.Payload.Declarations {
			if f.Payload.Declarations[i].Name == name {
				return &f.Payload.Declarations[i], f
			}
		}
	}
	return nil, nil
}

func declNames(decls []model.ResolvedDecl) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.Decl.Name)
	}
	return out
}

func TestResolve_FollowsTypeReferencesAcrossFiles(t *testing.T) {
	files := openProjectFixtures(t)

	seed, seedFile := findDecl(files, "NewUserService")
	require.NotNil(t, seed, "NewUserService seed should be extracted")

	ctx := Resolve(seed, seedFile, files, model.ResolveOptions{MaxDepth: 3, FirstPartyOnly: true})

	names := declNames(ctx.Types)
	assert.Contains(t, names, "UserService")
	assert.Contains(t, names, "Repository")
	assert.Contains(t, names, "User", "Repository's method signatures reference *User, which should be pulled in transitively")
}

func TestResolve_DepthBoundTruncates(t *testing.T) {
	files := openProjectFixtures(t)

	seed, seedFile := findDecl(files, "NewUserService")
	require.NotNil(t, seed)

	ctx := Resolve(seed, seedFile, files, model.ResolveOptions{MaxDepth: 1, FirstPartyOnly: true})

	names := declNames(ctx.Types)
	assert.Contains(t, names, "UserService")
	assert.Contains(t, names, "Repository")
	assert.NotContains(t, names, "User", "User is only reachable at depth 2, past the depth-1 bound")
}

func TestResolve_EveryResolvedDeclVerbatimInOwningFile(t *testing.T) {
	files := openProjectFixtures(t)

	seed, seedFile := findDecl(files, "CreateUser")
	require.NotNil(t, seed)

	ctx := Resolve(seed, seedFile, files, model.DefaultResolveOptions())

	for _, rd := range ctx.AllDecls() {
		text := rd.File.TextAt(rd.Decl.Span)
		assert.NotEmpty(t, text, "declaration %s should have a non-empty source span", rd.Decl.Name)
	}
}

func TestResolve_MethodSeedCollectsQualifiedCallImport(t *testing.T) {
	files := openProjectFixtures(t)

	seed, seedFile := findDecl(files, "GetUser")
	require.NotNil(t, seed, "GetUser method seed should be extracted")
	require.NotNil(t, seed.Receiver)

	ctx := Resolve(seed, seedFile, files, model.DefaultResolveOptions())

	// GetUser's body references fmt.Errorf, so fmt should end up in the
	// minimal import set.
	var importPaths []string
	for _, imp := range ctx.Imports {
		importPaths = append(importPaths, imp.Path)
	}
	assert.Contains(t, importPaths, "fmt")
}

func TestResolve_TypeReferencePullsInAssociatedConstants(t *testing.T) {
	files := openProjectFixtures(t)

	seed, seedFile := findDecl(files, "UpdateStatus")
	require.NotNil(t, seed, "UpdateStatus method seed should be extracted")

	ctx := Resolve(seed, seedFile, files, model.ResolveOptions{MaxDepth: 3, FirstPartyOnly: true})

	typeNames := declNames(ctx.Types)
	assert.Contains(t, typeNames, "Status", "UpdateStatus's status parameter should pull in type Status")

	constNames := declNames(ctx.Constants)
	assert.Contains(t, constNames, "StatusActive", "Status's constants should be pulled in by declared-type association, not by being read")
	assert.Contains(t, constNames, "StatusInactive")
}

func TestNormalizeType(t *testing.T) {
	cases := map[string]string{
		"*User":            "User",
		"User":              "User",
		"*pkg.User":         "User",
		"pkg.User":          "User",
		"  *User  ":         "User",
	}
	for input, want := range cases {
		assert.Equal(t, want, normalizeType(input), "input %q", input)
	}
}
