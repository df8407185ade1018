// Package vcs defines the VCS collaborator contract of spec.md §6: for a
// repository root and commit identifier, yield the FileChange sequence the
// core consumes. The core never opens a repository or parses a diff itself;
// it only depends on this interface.
package vcs

import (
	"context"

	"github.com/dusk-indust/semslice/internal/model"
)

// Driver yields the set of files changed by one commit, each with its
// hunks already decomposed per model.Hunk.
type Driver interface {
	Changes(ctx context.Context, repoRoot, commitID string) ([]model.FileChange, error)
}
