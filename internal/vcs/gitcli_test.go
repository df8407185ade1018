package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/semslice/internal/model"
)

const samplePatch = `diff --git a/service.go b/service.go
index 1234567..89abcde 100644
--- a/service.go
+++ b/service.go
@@ -14,7 +14,9 @@ func NewUserService(repo Repository) *UserService {
 func (s *UserService) GetUser(id int) (*User, error) {
 	user, err := s.repo.FindByID(id)
 	if err != nil {
-		return nil, err
+		return nil, fmt.Errorf("get user: %w", err)
 	}
 	return user, nil
 }
diff --git a/newfile.go b/newfile.go
new file mode 100644
index 0000000..1111111
--- /dev/null
+++ b/newfile.go
@@ -0,0 +1,3 @@
+package project
+
+var x = 1
diff --git a/oldname.go b/renamed.go
similarity index 95%
rename from oldname.go
rename to renamed.go
--- a/oldname.go
+++ b/renamed.go
@@ -1,1 +1,1 @@
-package old
+package renamed
`

func TestParseUnifiedDiff_ModifiedFile(t *testing.T) {
	changes := parseUnifiedDiff([]byte(samplePatch))
	require.Len(t, changes, 3)

	svc := changes[0]
	assert.Equal(t, "service.go", svc.Path)
	assert.Equal(t, model.ChangeModified, svc.Type)
	require.Len(t, svc.Hunks, 1)

	h := svc.Hunks[0]
	assert.Equal(t, 14, h.OldRange.Start)
	assert.Equal(t, 21, h.OldRange.End)
	assert.Equal(t, 14, h.NewRange.Start)
	assert.Equal(t, 23, h.NewRange.End)

	var added, removed int
	for _, l := range h.Lines {
		switch l.Tag {
		case model.LineAdded:
			added++
			assert.Contains(t, l.Content, "fmt.Errorf")
		case model.LineRemoved:
			removed++
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestParseUnifiedDiff_NewFile(t *testing.T) {
	changes := parseUnifiedDiff([]byte(samplePatch))
	require.Len(t, changes, 3)

	nf := changes[1]
	assert.Equal(t, "newfile.go", nf.Path)
	assert.Equal(t, model.ChangeAdded, nf.Type)
	require.Len(t, nf.Hunks, 1)
	assert.Equal(t, 3, len(nf.Hunks[0].Lines))
}

func TestParseUnifiedDiff_RenamedFile(t *testing.T) {
	changes := parseUnifiedDiff([]byte(samplePatch))
	require.Len(t, changes, 3)

	rn := changes[2]
	assert.Equal(t, "renamed.go", rn.Path)
	assert.Equal(t, model.ChangeRenamed, rn.Type)
	assert.Equal(t, "oldname.go", rn.OldPath)
}

func TestParseHunkHeader(t *testing.T) {
	oldStart, oldCount, newStart, newCount, ok := parseHunkHeader("@@ -14,7 +14,9 @@ func foo() {")
	require.True(t, ok)
	assert.Equal(t, 14, oldStart)
	assert.Equal(t, 7, oldCount)
	assert.Equal(t, 14, newStart)
	assert.Equal(t, 9, newCount)
}

func TestParseHunkHeader_DefaultsCountToOne(t *testing.T) {
	oldStart, oldCount, newStart, newCount, ok := parseHunkHeader("@@ -1 +1 @@")
	require.True(t, ok)
	assert.Equal(t, 1, oldStart)
	assert.Equal(t, 1, oldCount)
	assert.Equal(t, 1, newStart)
	assert.Equal(t, 1, newCount)
}

func TestParseDiffGitLine(t *testing.T) {
	assert.Equal(t, "service.go", parseDiffGitLine("diff --git a/service.go b/service.go"))
}
