// Package render implements the slice renderer of spec.md §4.6: turning a
// resolved semantic context into the deterministic, byte-stable artifact
// text. Grounded on the header/statistics shape of the original Rust
// implementation's formatter.rs, simplified to the single plain-text format
// the spec names.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
)

// Render produces the artifact string for ctx, marking every line of the
// seed declaration whose 1-based number intersects any hunk's new-range.
// The renderer never reformats source bytes beyond the change marker and a
// single trailing newline.
func Render(ctx model.SemanticContext, hunks []model.Hunk, opts model.RenderOptions) string {
	if opts.Marker == "" {
		opts.Marker = model.DefaultRenderOptions().Marker
	}

	var b strings.Builder
	b.WriteString(header(ctx, opts))
	b.WriteString("\n")

	if len(ctx.Imports) > 0 {
		b.WriteString(renderImports(ctx.Imports))
		b.WriteString("\n")
	}

	for _, block := range orderBlocks(ctx, ctx.Types) {
		writeDecl(&b, block)
	}
	for _, block := range orderBlocks(ctx, ctx.Constants) {
		writeDecl(&b, block)
	}
	for _, block := range orderBlocks(ctx, ctx.Functions) {
		writeDecl(&b, block)
	}

	writeSeed(&b, ctx.Seed, hunks, opts.Marker)

	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func header(ctx model.SemanticContext, opts model.RenderOptions) string {
	if opts.HeaderTemplate != "" {
		return opts.HeaderTemplate
	}
	commit := opts.CommitID
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("// Generated by semslice from commit %s\n// Seed: %s", commit, ctx.Seed.Decl.QualifiedName())
}

func renderImports(imports []model.Import) string {
	sorted := make([]model.Import, len(imports))
	copy(sorted, imports)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range sorted {
		switch imp.Kind {
		case model.AliasNamed:
			fmt.Fprintf(&b, "\t%s %q\n", imp.Alias, imp.Path)
		case model.AliasBlank:
			fmt.Fprintf(&b, "\t_ %q\n", imp.Path)
		case model.AliasDot:
			fmt.Fprintf(&b, "\t. %q\n", imp.Path)
		default:
			fmt.Fprintf(&b, "\t%q\n", imp.Path)
		}
	}
	b.WriteString(")\n")
	return b.String()
}

// orderBlocks sorts a bucket topologically by the uses relation recorded in
// ctx.Uses during resolution (spec.md §4.6/§3): a declaration is emitted only
// after every one of its dependencies that belongs to the same bucket. Ties
// among declarations with no outstanding dependency are broken by (file
// path, start line); the same tie-break is used to pick which node breaks a
// cycle (e.g. mutually recursive functions) when nothing is otherwise ready.
func orderBlocks(ctx model.SemanticContext, decls []model.ResolvedDecl) []model.ResolvedDecl {
	if len(decls) == 0 {
		return nil
	}

	byKey := make(map[model.DeclKey]model.ResolvedDecl, len(decls))
	for _, rd := range decls {
		byKey[rd.Key()] = rd
	}

	dependents := make(map[model.DeclKey][]model.DeclKey)
	indegree := make(map[model.DeclKey]int, len(byKey))
	for k := range byKey {
		for _, dep := range ctx.Uses[k] {
			if dep == k {
				continue
			}
			if _, ok := byKey[dep]; !ok {
				continue
			}
			dependents[dep] = append(dependents[dep], k)
			indegree[k]++
		}
	}

	var ready []model.DeclKey
	for k := range byKey {
		if indegree[k] == 0 {
			ready = append(ready, k)
		}
	}

	emitted := make(map[model.DeclKey]bool, len(byKey))
	out := make([]model.ResolvedDecl, 0, len(decls))
	for len(out) < len(decls) {
		if len(ready) == 0 {
			// Everything remaining is part of an unresolved cycle; break it
			// deterministically instead of stalling.
			for k := range byKey {
				if !emitted[k] {
					ready = append(ready, k)
				}
			}
		}
		sort.Slice(ready, func(i, j int) bool { return blockLess(byKey[ready[i]], byKey[ready[j]]) })

		k := ready[0]
		ready = ready[1:]
		if emitted[k] {
			continue
		}
		emitted[k] = true
		out = append(out, byKey[k])

		for _, dep := range dependents[k] {
			indegree[dep]--
			if indegree[dep] == 0 && !emitted[dep] {
				ready = append(ready, dep)
			}
		}
	}
	return out
}

func blockLess(a, b model.ResolvedDecl) bool {
	if a.File.Path != b.File.Path {
		return a.File.Path < b.File.Path
	}
	return a.Decl.StartLine < b.Decl.StartLine
}

func writeDecl(b *strings.Builder, rd model.ResolvedDecl) {
	text := rd.File.TextAt(rd.Decl.Span)
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// writeSeed emits the seed declaration verbatim from its source span, with
// every line whose 1-based number intersects any hunk's new-range suffixed
// by marker.
func writeSeed(b *strings.Builder, seed model.ResolvedDecl, hunks []model.Hunk, marker string) {
	changed := map[int]bool{}
	for _, l := range model.UnionNewRanges(hunks) {
		changed[l] = true
	}

	lines := strings.Split(seed.File.TextAt(seed.Decl.Span), "\n")
	startLine := seed.Decl.StartLine
	for i, line := range lines {
		lineNo := startLine + i
		b.WriteString(line)
		if changed[lineNo] {
			b.WriteString(marker)
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}
