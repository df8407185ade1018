package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/semslice/internal/ingest"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

var goSrc = []byte(`package project

import (
	"fmt"
	alias "strings"
)

const MaxRetries = 3

type Status int

type User struct {
	ID   int
	Name string
}

type Named interface {
	Name() string
}

func Greet(name string) string {
	return fmt.Sprintf("hi %s", name)
}

func (u *User) Name() string {
	return alias.ToUpper(u.Name)
}
`)

func openGo(t *testing.T) *model.SourceFile {
	t.Helper()
	sf, err := ingest.OpenBytes(parser.NewFactory(), "sample.go", goSrc, model.LangGo)
	require.NoError(t, err)
	t.Cleanup(sf.Close)
	return sf
}

func declByName(sf *model.SourceFile, name string) (model.Declaration, bool) {
	for _, d := range sf.Payload.Declarations {
		if d.Name == name {
			return d, true
		}
	}
	return model.Declaration{}, false
}

func TestGoExtractor_PackageAndImports(t *testing.T) {
	sf := openGo(t)
	assert.Equal(t, "project", sf.Payload.PackageName)

	require.Len(t, sf.Payload.Imports, 2)
	assert.Equal(t, "fmt", sf.Payload.Imports[0].Path)
	assert.Equal(t, model.AliasNone, sf.Payload.Imports[0].Kind)
	assert.Equal(t, "strings", sf.Payload.Imports[1].Path)
	assert.Equal(t, model.AliasNamed, sf.Payload.Imports[1].Kind)
	assert.Equal(t, "alias", sf.Payload.Imports[1].Alias)
}

func TestGoExtractor_ConstDeclaration(t *testing.T) {
	sf := openGo(t)
	d, ok := declByName(sf, "MaxRetries")
	require.True(t, ok)
	assert.Equal(t, model.DeclConstant, d.Kind)
}

func TestGoExtractor_StructAndInterfaceShapes(t *testing.T) {
	sf := openGo(t)

	user, ok := declByName(sf, "User")
	require.True(t, ok)
	assert.Equal(t, model.TypeStruct, user.Shape)
	require.Len(t, user.Fields, 2)
	assert.Equal(t, "ID", user.Fields[0].Name)

	named, ok := declByName(sf, "Named")
	require.True(t, ok)
	assert.Equal(t, model.TypeInterface, named.Shape)
	require.Len(t, named.Fields, 1)
	assert.Equal(t, "Name", named.Fields[0].Name)
}

func TestGoExtractor_FunctionAndMethod(t *testing.T) {
	sf := openGo(t)

	greet, ok := declByName(sf, "Greet")
	require.True(t, ok)
	assert.Equal(t, model.DeclFunction, greet.Kind)
	assert.Nil(t, greet.Receiver)
	require.Len(t, greet.Params, 1)
	assert.Equal(t, "name", greet.Params[0].Name)

	var method model.Declaration
	var found bool
	for _, d := range sf.Payload.Declarations {
		if d.Name == "Name" && d.Kind == model.DeclMethod {
			method = d
			found = true
		}
	}
	require.True(t, found, "method Name on *User should be extracted")
	require.NotNil(t, method.Receiver)
	assert.Equal(t, "User", method.Receiver.TypeName)
	assert.True(t, method.Receiver.Pointer)
}

func TestGoExtractor_DeclarationsCarryPackageName(t *testing.T) {
	sf := openGo(t)
	for _, d := range sf.Payload.Declarations {
		assert.Equal(t, "project", d.Package, "declaration %s should be backfilled with the package name", d.Name)
	}
}
