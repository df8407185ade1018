// Package locate implements the change locator of spec.md §4.4: mapping a
// source-file model and its hunks to the declarations a change actually
// touched. Grounded on the original Rust implementation's analyzer.rs, which
// walks hunk line ranges against a file's extracted items the same way.
package locate

import (
	"sort"

	"github.com/dusk-indust/semslice/internal/model"
)

// Changed returns the ordered, span-deduplicated list of declarations whose
// [StartLine, EndLine] intersects the union of hunks' new-ranges. Top-level
// edits that fall outside every function/method (a type or constant touched
// directly) are still returned: callers feed every result into the resolver
// as a seed, regardless of kind.
func Changed(file *model.SourceFile, hunks []model.Hunk) []model.Declaration {
	lines := model.UnionNewRanges(hunks)
	if len(lines) == 0 {
		return nil
	}
	lineSet := make(map[int]bool, len(lines))
	for _, l := range lines {
		lineSet[l] = true
	}

	seen := make(map[model.ByteRange]bool)
	var out []model.Declaration
	for _, d := range file.Payload.Declarations {
		if !intersects(d, lineSet) {
			continue
		}
		if seen[d.Span] {
			continue
		}
		seen[d.Span] = true
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartLine < out[j].StartLine
	})
	return out
}

func intersects(d model.Declaration, lineSet map[int]bool) bool {
	for l := d.StartLine; l <= d.EndLine; l++ {
		if lineSet[l] {
			return true
		}
	}
	return false
}

// OutOfRange reports whether any hunk in hunks references a line beyond the
// file's last line, the ChangeOutOfRange condition of spec.md §7. Callers
// drop the seed and surface the error per-seed rather than aborting the run.
func OutOfRange(file *model.SourceFile, hunks []model.Hunk) bool {
	last := len(file.Lines())
	for _, l := range model.UnionNewRanges(hunks) {
		if l > last {
			return true
		}
	}
	return false
}
