package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/semslice/internal/ingest"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

func openFixture(t *testing.T, path string, src []byte) *model.SourceFile {
	t.Helper()
	sf, err := ingest.OpenBytes(parser.NewFactory(), path, src, model.LangGo)
	require.NoError(t, err)
	t.Cleanup(sf.Close)
	return sf
}

var serviceSrc = []byte(`package project

import "fmt"

type UserService struct {
	repo Repository
}

func NewUserService(repo Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetUser(id int) (*User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) CreateUser(name, email string) (*User, error) {
	user := newUser(name, email)
	if err := s.repo.Save(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
`)

func TestChanged_FindsMethodTouchedByHunk(t *testing.T) {
	sf := openFixture(t, "service.go", serviceSrc)

	getUser := findDecl(t, sf, "GetUser")
	hunks := []model.Hunk{{NewRange: model.LineRange{Start: getUser.StartLine, End: getUser.StartLine + 1}}}

	got := Changed(sf, hunks)
	require.Len(t, got, 1)
	assert.Equal(t, "GetUser", got[0].Name)
}

func TestChanged_DeduplicatesBySpan(t *testing.T) {
	sf := openFixture(t, "service.go", serviceSrc)

	createUser := findDecl(t, sf, "CreateUser")
	hunks := []model.Hunk{
		{NewRange: model.LineRange{Start: createUser.StartLine, End: createUser.StartLine + 1}},
		{NewRange: model.LineRange{Start: createUser.StartLine + 1, End: createUser.StartLine + 2}},
	}

	got := Changed(sf, hunks)
	require.Len(t, got, 1, "two hunks touching the same declaration should yield one entry")
}

func TestChanged_NoHunksNoResults(t *testing.T) {
	sf := openFixture(t, "service.go", serviceSrc)
	assert.Empty(t, Changed(sf, nil))
}

func TestChanged_OrderedByStartLine(t *testing.T) {
	sf := openFixture(t, "service.go", serviceSrc)
	hunks := []model.Hunk{{NewRange: model.LineRange{Start: 1, End: 100}}}

	got := Changed(sf, hunks)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].StartLine, got[i].StartLine)
	}
}

func TestOutOfRange(t *testing.T) {
	sf := openFixture(t, "service.go", serviceSrc)

	assert.False(t, OutOfRange(sf, []model.Hunk{{NewRange: model.LineRange{Start: 1, End: 2}}}))
	assert.True(t, OutOfRange(sf, []model.Hunk{{NewRange: model.LineRange{Start: 1000, End: 1001}}}))
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
