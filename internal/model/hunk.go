package model

import "sort"

// LineTag classifies one line within a Hunk.
type LineTag string

const (
	LineAdded   LineTag = "added"
	LineRemoved LineTag = "removed"
	LineContext LineTag = "context"
)

// Hunk records one contiguous block of changed lines in a file, as reported
// by the VCS collaborator. OldRange and NewRange are half-open, 1-based line
// ranges: [start, end).
type Hunk struct {
	OldRange  LineRange
	NewRange  LineRange
	Lines     []HunkLine
	ContextN  int // number of pure-context lines carried by the diff driver
}

// LineRange is a half-open, 1-based line interval [Start, End).
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether a 1-based line number falls in the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line < r.End
}

// Empty reports whether the range spans zero lines.
func (r LineRange) Empty() bool {
	return r.End <= r.Start
}

// HunkLine is a single line of a hunk's unified-diff body.
type HunkLine struct {
	Content       string
	Tag           LineTag
	OldLineNumber int // 0 if the line does not exist in the old file (Tag == LineAdded)
	NewLineNumber int // 0 if the line does not exist in the new file (Tag == LineRemoved)
}

// ChangeType classifies how a file changed between two commits. Added from
// the original Rust implementation's git.rs; spec.md's FileChange only names
// path/language_hint/hunks, so this is an optional field that does not alter
// that contract.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
	ChangeRenamed  ChangeType = "renamed"
	ChangeCopied   ChangeType = "copied"
)

// FileChange is the unit produced by the VCS collaborator: one changed file
// and the hunks within it. The core never constructs these itself.
type FileChange struct {
	Path         string
	LanguageHint Language // zero value means "detect from suffix"
	Hunks        []Hunk
	Type         ChangeType
	OldPath      string // populated only for ChangeRenamed / ChangeCopied
	Binary       bool
}

// UnionNewRanges returns every line number covered by any hunk's NewRange,
// without duplicates, in ascending order.
func UnionNewRanges(hunks []Hunk) []int {
	seen := make(map[int]bool)
	var lines []int
	for _, h := range hunks {
		for l := h.NewRange.Start; l < h.NewRange.End; l++ {
			if !seen[l] {
				seen[l] = true
				lines = append(lines, l)
			}
		}
	}
	sort.Ints(lines)
	return lines
}
