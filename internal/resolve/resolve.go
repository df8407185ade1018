// Package resolve implements the dependency resolver of spec.md §4.5: given
// a seed declaration and the full set of source-file models for a run, it
// expands a bounded-depth closure of the types, functions/methods, and
// constants the seed transitively depends on, plus the minimal import set
// those members require. Grounded on the original Rust implementation's
// analyzer.rs, which drives the same breadth-first, visited-set-bounded
// expansion over a Go AST.
package resolve

import (
	"sort"
	"strings"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// Resolve expands seed into a SemanticContext against the given model set,
// per the algorithm in spec.md §4.5. seedFile must be the SourceFile that
// owns seed.
func Resolve(seed *model.Declaration, seedFile *model.SourceFile, files []*model.SourceFile, opts model.ResolveOptions) model.SemanticContext {
	idx := buildIndex(files)

	ctx := model.SemanticContext{
		Seed: model.ResolvedDecl{Decl: seed, File: seedFile},
		Uses: map[model.DeclKey][]model.DeclKey{},
	}

	visited := map[model.DeclKey]bool{}
	usedQualifiers := map[string]map[string]bool{} // file path -> qualifier -> used

	type queueEntry struct {
		decl  *model.Declaration
		file  *model.SourceFile
		depth int
	}
	queue := []queueEntry{{seed, seedFile, 0}}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		key := (model.ResolvedDecl{Decl: e.decl, File: e.file}).Key()
		if visited[key] {
			continue
		}
		visited[key] = true

		if e.depth > 0 {
			addToBucket(&ctx, e.decl, e.file)
		}

		if e.decl.Kind == model.DeclType {
			for _, ce := range idx.constantsOfType(e.file.Payload.PackageName, e.decl.Name) {
				rkey := (model.ResolvedDecl{Decl: ce.decl, File: ce.file}).Key()
				addUse(ctx.Uses, key, rkey)
				if visited[rkey] {
					continue
				}
				loc := model.Location{File: e.file.Path, Line: e.decl.StartLine}
				if e.depth+1 > opts.MaxDepth {
					ctx.DepthTruncated = append(ctx.DepthTruncated, model.UnresolvedRef{
						Name: ce.decl.Name, Location: loc, Reason: "depth bound reached",
					})
					continue
				}
				queue = append(queue, queueEntry{ce.decl, ce.file, e.depth + 1})
			}
		}

		cands := scanCandidates(e.decl, e.file)
		for _, c := range cands {
			if c.Qualifier != "" {
				markUsed(usedQualifiers, e.file.Path, c.Qualifier)
			}

			resolved, resolvedFile, reason, ok := idx.resolve(c, e.file, e.decl)
			loc := model.Location{File: e.file.Path, Line: c.Line}
			if !ok {
				// An empty reason is a deliberate silent drop (e.g. a plain
				// field read through a receiver/param variable), not a real
				// unresolved symbol reference.
				if reason != "" {
					ctx.Unresolved = append(ctx.Unresolved, model.UnresolvedRef{
						Name: c.display(), Location: loc, Reason: reason,
					})
				}
				continue
			}

			rkey := (model.ResolvedDecl{Decl: resolved, File: resolvedFile}).Key()
			addUse(ctx.Uses, key, rkey)
			if visited[rkey] {
				continue
			}
			if e.depth+1 > opts.MaxDepth {
				ctx.DepthTruncated = append(ctx.DepthTruncated, model.UnresolvedRef{
					Name: c.display(), Location: loc, Reason: "depth bound reached",
				})
				continue
			}
			queue = append(queue, queueEntry{resolved, resolvedFile, e.depth + 1})
		}
	}

	ctx.Imports = minimalImports(&ctx, usedQualifiers)
	return ctx
}

func markUsed(used map[string]map[string]bool, filePath, qualifier string) {
	if used[filePath] == nil {
		used[filePath] = map[string]bool{}
	}
	used[filePath][qualifier] = true
}

// addUse records a from-uses-to dependency edge, deduplicated, for the
// renderer's topological ordering.
func addUse(uses map[model.DeclKey][]model.DeclKey, from, to model.DeclKey) {
	for _, existing := range uses[from] {
		if existing == to {
			return
		}
	}
	uses[from] = append(uses[from], to)
}

func addToBucket(ctx *model.SemanticContext, decl *model.Declaration, file *model.SourceFile) {
	rd := model.ResolvedDecl{Decl: decl, File: file}
	switch decl.Kind {
	case model.DeclType:
		ctx.Types = append(ctx.Types, rd)
	case model.DeclConstant, model.DeclVariable:
		ctx.Constants = append(ctx.Constants, rd)
	default: // DeclFunction, DeclMethod
		ctx.Functions = append(ctx.Functions, rd)
	}
}

// candidateKind classifies one syntactic reference found while scanning a
// declaration's span.
type candidateKind string

const (
	candType candidateKind = "type"
	candCall candidateKind = "call"
	candRead candidateKind = "read" // constant/value read, or a field/selector access
)

// candidate is a syntactic reference produced by scanCandidates, not yet
// matched to any declaration. Qualifier is the package prefix or receiver
// variable for a qualified/selector reference; empty for a bare identifier.
type candidate struct {
	Kind      candidateKind
	Qualifier string
	Name      string
	Line      int
}

func (c candidate) display() string {
	if c.Qualifier != "" {
		return c.Qualifier + "." + c.Name
	}
	return c.Name
}

// scanCandidates enumerates syntactic references within decl's full source
// span (signature and body).
// Only Go is supported: the resolution algorithm itself (qualified package
// references, receiver-method dispatch by string-matched type) is specified
// in Go terms, and the reference implementation this was distilled from
// targets Go exclusively.
func scanCandidates(decl *model.Declaration, file *model.SourceFile) []candidate {
	if file.Language != model.LangGo || file.Tree == nil {
		return nil
	}
	node := findNode(file.Tree.RootNode(), decl.Span)
	if node == nil {
		return nil
	}
	return scanGoNode(node, file.Text)
}

func findNode(root *parser.Node, span model.ByteRange) *parser.Node {
	var found *parser.Node
	parser.Walk(root, func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if uint(n.StartByte()) == span.Start && uint(n.EndByte()) == span.End {
			found = n
			return false
		}
		return true
	})
	return found
}

func scanGoNode(root *parser.Node, source []byte) []candidate {
	var out []candidate
	var visit func(n *parser.Node) bool
	visit = func(n *parser.Node) bool {
		switch n.Kind() {
		case "call_expression":
			if fn := n.ChildByFieldName("function"); fn != nil {
				out = append(out, goCallTarget(fn, source)...)
			}
			if args := n.ChildByFieldName("arguments"); args != nil {
				parser.Walk(args, visit)
			}
			return false

		case "qualified_type":
			pkg := n.ChildByFieldName("package")
			name := n.ChildByFieldName("name")
			if pkg != nil && name != nil {
				out = append(out, candidate{
					Kind: candType, Qualifier: parser.TextOf(pkg, source),
					Name: parser.TextOf(name, source), Line: goLine(n),
				})
			}
			return false

		case "type_identifier":
			out = append(out, candidate{Kind: candType, Name: parser.TextOf(n, source), Line: goLine(n)})
			return false

		case "selector_expression":
			operand := n.ChildByFieldName("operand")
			field := n.ChildByFieldName("field")
			if operand != nil && field != nil {
				out = append(out, candidate{
					Kind: candRead, Qualifier: parser.TextOf(operand, source),
					Name: parser.TextOf(field, source), Line: goLine(n),
				})
			}
			return false

		case "identifier":
			out = append(out, candidate{Kind: candRead, Name: parser.TextOf(n, source), Line: goLine(n)})
			return false
		}
		return true
	}
	parser.Walk(root, visit)
	return out
}

func goCallTarget(fn *parser.Node, source []byte) []candidate {
	switch fn.Kind() {
	case "identifier":
		return []candidate{{Kind: candCall, Name: parser.TextOf(fn, source), Line: goLine(fn)}}
	case "selector_expression":
		operand := fn.ChildByFieldName("operand")
		field := fn.ChildByFieldName("field")
		if operand == nil || field == nil {
			return nil
		}
		return []candidate{{
			Kind: candCall, Qualifier: parser.TextOf(operand, source),
			Name: parser.TextOf(field, source), Line: goLine(fn),
		}}
	}
	return nil
}

func goLine(n *parser.Node) int { return int(n.StartPosition().Row) + 1 }

// entry pairs a declaration with the file that owns it, for index lookups.
type entry struct {
	decl *model.Declaration
	file *model.SourceFile
}

// index is the first-party symbol table the resolver matches candidates
// against, built fresh for every Resolve call from the run's model set.
type index struct {
	packages       map[string][]*model.SourceFile
	byPkgName      map[string]map[string][]entry // package -> name -> non-method decls
	byMethod       map[string]map[string][]entry // normalized receiver type -> method name -> decls
	byDeclaredType map[string]map[string][]entry // package -> normalized declared type -> const/var decls
}

func buildIndex(files []*model.SourceFile) *index {
	idx := &index{
		packages:       map[string][]*model.SourceFile{},
		byPkgName:      map[string]map[string][]entry{},
		byMethod:       map[string]map[string][]entry{},
		byDeclaredType: map[string]map[string][]entry{},
	}
	for _, f := range files {
		pkg := f.Payload.PackageName
		idx.packages[pkg] = append(idx.packages[pkg], f)
		for i := range f.Payload.Declarations {
			d := &f.Payload.Declarations[i]
			e := entry{decl: d, file: f}
			if d.Kind == model.DeclMethod && d.Receiver != nil {
				typ := normalizeType(d.Receiver.TypeName)
				if idx.byMethod[typ] == nil {
					idx.byMethod[typ] = map[string][]entry{}
				}
				idx.byMethod[typ][d.Name] = append(idx.byMethod[typ][d.Name], e)
				continue
			}
			if idx.byPkgName[pkg] == nil {
				idx.byPkgName[pkg] = map[string][]entry{}
			}
			idx.byPkgName[pkg][d.Name] = append(idx.byPkgName[pkg][d.Name], e)

			if (d.Kind == model.DeclConstant || d.Kind == model.DeclVariable) && d.DeclaredType != "" {
				typ := normalizeType(d.DeclaredType)
				if idx.byDeclaredType[pkg] == nil {
					idx.byDeclaredType[pkg] = map[string][]entry{}
				}
				idx.byDeclaredType[pkg][typ] = append(idx.byDeclaredType[pkg][typ], e)
			}
		}
	}
	return idx
}

// constantsOfType returns the first-party constants/variables in pkg whose
// declared type matches typeName, sorted deterministically by (file path,
// start line). Grounded on the original implementation's
// find_constants_of_type/find_variables_of_type: a type's enum-like members
// are pulled in by declared-type association, not by being read in a body.
func (idx *index) constantsOfType(pkg, typeName string) []entry {
	es := idx.byDeclaredType[pkg][normalizeType(typeName)]
	if len(es) == 0 {
		return nil
	}
	out := make([]entry, len(es))
	copy(out, es)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// resolve matches one candidate against the index, implementing spec.md
// §4.5 step 4's precedence rules. fromFile/fromDecl give the scope the
// candidate was found in (same file / same package / receiver & params).
func (idx *index) resolve(c candidate, fromFile *model.SourceFile, fromDecl *model.Declaration) (*model.Declaration, *model.SourceFile, string, bool) {
	if c.Qualifier != "" {
		if typ, ok := receiverOrParamType(fromDecl, c.Qualifier); ok {
			if es, ok := idx.byMethod[normalizeType(typ)][c.Name]; ok && len(es) > 0 {
				e := tieBreak(es)
				return e.decl, e.file, "", true
			}
			// c.Qualifier names a receiver/param of a known first-party type,
			// but c.Name isn't a method on it — a plain field read (e.g.
			// u.Status), not a symbol reference. Drop it silently instead of
			// recording it as an unresolved third-party package.
			if c.Kind != candCall {
				return nil, nil, "", false
			}
		}
		if _, known := idx.packages[c.Qualifier]; !known {
			return nil, nil, "third-party package", false
		}
		if es, ok := idx.byPkgName[c.Qualifier][c.Name]; ok && len(es) > 0 {
			e := tieBreak(es)
			return e.decl, e.file, "", true
		}
		return nil, nil, "not found in package " + c.Qualifier, false
	}

	pkg := fromFile.Payload.PackageName
	if es := filterSameFile(idx.byPkgName[pkg][c.Name], fromFile.Path); len(es) > 0 {
		e := tieBreak(es)
		return e.decl, e.file, "", true
	}
	if es, ok := idx.byPkgName[pkg][c.Name]; ok && len(es) > 0 {
		e := tieBreak(es)
		return e.decl, e.file, "", true
	}
	var others []entry
	for otherPkg, byName := range idx.byPkgName {
		if otherPkg == pkg {
			continue
		}
		others = append(others, byName[c.Name]...)
	}
	if len(others) > 0 {
		e := tieBreak(others)
		return e.decl, e.file, "", true
	}
	return nil, nil, "no first-party declaration found", false
}

func filterSameFile(es []entry, path string) []entry {
	var out []entry
	for _, e := range es {
		if e.file.Path == path {
			out = append(out, e)
		}
	}
	return out
}

// tieBreak picks the deterministic winner among candidates per spec.md
// §4.5: (package, file path, start line).
func tieBreak(es []entry) entry {
	best := es[0]
	for _, e := range es[1:] {
		if less(e, best) {
			best = e
		}
	}
	return best
}

func less(a, b entry) bool {
	if a.file.Payload.PackageName != b.file.Payload.PackageName {
		return a.file.Payload.PackageName < b.file.Payload.PackageName
	}
	if a.file.Path != b.file.Path {
		return a.file.Path < b.file.Path
	}
	return a.decl.StartLine < b.decl.StartLine
}

// receiverOrParamType looks up name as decl's receiver binding or a named
// parameter, returning its declared type string if found.
func receiverOrParamType(decl *model.Declaration, name string) (string, bool) {
	if decl.Receiver != nil && decl.Receiver.Name == name {
		return decl.Receiver.TypeName, true
	}
	for _, p := range decl.Params {
		if p.Name == name {
			return p.Type, true
		}
	}
	return "", false
}

// normalizeType strips a leading pointer marker and any package qualifier,
// matching the normalization spec.md §4.3 requires of receiver types.
func normalizeType(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimPrefix(t, "*")
	if i := strings.LastIndex(t, "."); i != -1 {
		t = t[i+1:]
	}
	return t
}

// minimalImports computes the union of imports actually referenced by any
// collected declaration's body, per spec.md §4.5 step 6.
func minimalImports(ctx *model.SemanticContext, usedQualifiers map[string]map[string]bool) []model.Import {
	seen := map[string]bool{}
	var out []model.Import

	add := func(file *model.SourceFile) {
		quals := usedQualifiers[file.Path]
		if quals == nil {
			return
		}
		for _, imp := range file.Payload.Imports {
			if !quals[importBindingName(imp)] {
				continue
			}
			dedupKey := imp.Path + "#" + imp.Alias
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true
			out = append(out, imp)
		}
	}

	add(ctx.Seed.File)
	for _, rd := range ctx.AllDecls() {
		add(rd.File)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

func importBindingName(imp model.Import) string {
	if imp.Kind == model.AliasNamed {
		return imp.Alias
	}
	parts := strings.Split(imp.Path, "/")
	return parts[len(parts)-1]
}
