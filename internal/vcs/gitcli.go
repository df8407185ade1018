package vcs

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/slicerr"
)

// GitCLI drives the system git binary to produce FileChange data, rather
// than linking a git library: no example repo in the pack carries a Go git
// dependency for a real VCS need (gix is Rust-only, in original_source), so
// shelling out avoids fabricating one. Swappable behind the Driver
// interface for a library-backed implementation later.
type GitCLI struct {
	// Binary is the git executable to invoke. Defaults to "git" on the
	// PATH when empty.
	Binary string
}

// Changes implements Driver by running `git show --unified=3 -M -C` for
// commitID and parsing the unified-diff patch text.
func (g GitCLI) Changes(ctx context.Context, repoRoot, commitID string) ([]model.FileChange, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, "-C", repoRoot, "show",
		"--no-color", "--unified=3", "-M", "-C", "--pretty=format:", commitID)
	out, err := cmd.Output()
	if err != nil {
		return nil, slicerr.New(slicerr.IOError, repoRoot, gitError(err))
	}

	return parseUnifiedDiff(out), nil
}

func gitError(err error) error {
	if ee, ok := err.(*exec.ExitError); ok {
		return &vcsError{msg: strings.TrimSpace(string(ee.Stderr))}
	}
	return err
}

type vcsError struct{ msg string }

func (e *vcsError) Error() string { return e.msg }

// parseUnifiedDiff splits a `git show`/`git diff` patch into per-file
// FileChange records. Grounded on the shape of the original implementation's
// git.rs (ChangeType, DiffHunk, DiffLine), adapted from a tree-walk over a
// gix diff to a textual unified-diff scan.
func parseUnifiedDiff(patch []byte) []model.FileChange {
	var changes []model.FileChange
	var cur *model.FileChange
	var curHunk *model.Hunk

	flushHunk := func() {
		if cur != nil && curHunk != nil {
			cur.Hunks = append(cur.Hunks, *curHunk)
			curHunk = nil
		}
	}
	flushFile := func() {
		flushHunk()
		if cur != nil {
			changes = append(changes, *cur)
			cur = nil
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(patch))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	oldLine, newLine := 0, 0
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "diff --git "):
			flushFile()
			path := parseDiffGitLine(line)
			cur = &model.FileChange{Path: path, Type: model.ChangeModified}

		case strings.HasPrefix(line, "new file mode"):
			if cur != nil {
				cur.Type = model.ChangeAdded
			}
		case strings.HasPrefix(line, "deleted file mode"):
			if cur != nil {
				cur.Type = model.ChangeDeleted
			}
		case strings.HasPrefix(line, "rename from "):
			if cur != nil {
				cur.Type = model.ChangeRenamed
				cur.OldPath = strings.TrimPrefix(line, "rename from ")
			}
		case strings.HasPrefix(line, "copy from "):
			if cur != nil {
				cur.Type = model.ChangeCopied
				cur.OldPath = strings.TrimPrefix(line, "copy from ")
			}
		case strings.HasPrefix(line, "rename to "), strings.HasPrefix(line, "copy to "):
			// old_path already captured from the "from" line; "to" carries
			// the new path, already set from the "diff --git" header above.

		case strings.HasPrefix(line, "Binary files "):
			if cur != nil {
				cur.Binary = true
			}

		case strings.HasPrefix(line, "+++ "):
			if cur != nil && cur.Path == "" {
				cur.Path = strings.TrimPrefix(strings.TrimPrefix(line, "+++ "), "b/")
			}

		case strings.HasPrefix(line, "@@ "):
			flushHunk()
			oldStart, oldCount, newStart, newCount, ok := parseHunkHeader(line)
			if !ok || cur == nil {
				continue
			}
			curHunk = &model.Hunk{
				OldRange: model.LineRange{Start: oldStart, End: oldStart + oldCount},
				NewRange: model.LineRange{Start: newStart, End: newStart + newCount},
			}
			oldLine, newLine = oldStart, newStart

		case curHunk != nil && len(line) > 0:
			tagAndAppend(curHunk, line, &oldLine, &newLine)

		case curHunk != nil && len(line) == 0:
			// an empty context line
			curHunk.Lines = append(curHunk.Lines, model.HunkLine{
				Tag: model.LineContext, OldLineNumber: oldLine, NewLineNumber: newLine,
			})
			oldLine++
			newLine++
		}
	}
	flushFile()
	return changes
}

func tagAndAppend(h *model.Hunk, line string, oldLine, newLine *int) {
	switch line[0] {
	case '+':
		h.Lines = append(h.Lines, model.HunkLine{
			Content: line[1:], Tag: model.LineAdded, NewLineNumber: *newLine,
		})
		*newLine++
	case '-':
		h.Lines = append(h.Lines, model.HunkLine{
			Content: line[1:], Tag: model.LineRemoved, OldLineNumber: *oldLine,
		})
		*oldLine++
	case '\\':
		// "\ No newline at end of file" — not a content line.
	default:
		h.Lines = append(h.Lines, model.HunkLine{
			Content: strings.TrimPrefix(line, " "), Tag: model.LineContext,
			OldLineNumber: *oldLine, NewLineNumber: *newLine,
		})
		h.ContextN++
		*oldLine++
		*newLine++
	}
}

func parseDiffGitLine(line string) string {
	rest := strings.TrimPrefix(line, "diff --git ")
	parts := strings.SplitN(rest, " b/", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// parseHunkHeader parses "@@ -oldStart,oldCount +newStart,newCount @@ ...".
// A missing count defaults to 1, per unified-diff convention.
func parseHunkHeader(line string) (oldStart, oldCount, newStart, newCount int, ok bool) {
	parts := strings.Split(line, "@@")
	if len(parts) < 2 {
		return
	}
	fields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(fields) < 2 {
		return
	}
	old, okOld := parseRange(fields[0], "-")
	nw, okNew := parseRange(fields[1], "+")
	if !okOld || !okNew {
		return
	}
	return old[0], old[1], nw[0], nw[1], true
}

func parseRange(field, prefix string) ([2]int, bool) {
	field = strings.TrimPrefix(field, prefix)
	pieces := strings.SplitN(field, ",", 2)
	start, err := strconv.Atoi(pieces[0])
	if err != nil {
		return [2]int{}, false
	}
	count := 1
	if len(pieces) == 2 {
		count, err = strconv.Atoi(pieces[1])
		if err != nil {
			return [2]int{}, false
		}
	}
	return [2]int{start, count}, true
}
