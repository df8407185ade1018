package model

// UnresolvedRef is a candidate reference the resolver could not match to any
// declaration in the first-party scope. Non-fatal; recorded for visibility.
type UnresolvedRef struct {
	Name     string
	Location Location
	Reason   string // e.g. "third-party package", "no matching receiver"
}

// Location pinpoints one line in one file, used for diagnostics that don't
// warrant a full Declaration.
type Location struct {
	File string
	Line int
}

// ResolvedDecl pairs a Declaration with the SourceFile that owns it, so
// resolver output carries an unambiguous back-reference without requiring
// callers to re-look-up the owning file by path.
type ResolvedDecl struct {
	Decl *Declaration
	File *SourceFile
}

// Key returns the (owning file path, fully-qualified identifier, kind) tuple that
// the resolver's visited set and context buckets are deduplicated by.
func (r ResolvedDecl) Key() DeclKey {
	return DeclKey{File: r.File.Path, Qualified: r.Decl.QualifiedName(), Kind: r.Decl.Kind}
}

// DeclKey is the dedup/visited-set key spec.md §3 and §4.5 describe:
// (owning file path, identifier, declaration kind).
type DeclKey struct {
	File      string
	Qualified string
	Kind      DeclKind
}

// SemanticContext is the resolved closure produced per changed function (or
// free-standing top-level edit): the enclosing declaration, the types,
// functions/methods, and constants it transitively depends on (within the
// configured depth bound), the minimal set of imports used by any member,
// and any references that could not be resolved.
type SemanticContext struct {
	Seed ResolvedDecl

	Types     []ResolvedDecl
	Functions []ResolvedDecl
	Constants []ResolvedDecl

	Imports []Import

	Unresolved []UnresolvedRef

	// DepthTruncated records identifiers whose resolution was abandoned
	// because the configured depth bound was hit with the reference still
	// pending (spec.md §7, ResolutionDepthTruncated).
	DepthTruncated []UnresolvedRef

	// Uses records the dependency edges discovered during resolution: Uses[k]
	// holds the keys of every declaration k's own source directly references.
	// The renderer walks this to topologically order each bucket (spec.md
	// §4.6) instead of guessing order from discovery sequence.
	Uses map[DeclKey][]DeclKey
}

// AllDecls returns every resolved, non-seed declaration across all buckets,
// in a stable order: types, then functions, then constants.
func (c SemanticContext) AllDecls() []ResolvedDecl {
	out := make([]ResolvedDecl, 0, len(c.Types)+len(c.Functions)+len(c.Constants))
	out = append(out, c.Types...)
	out = append(out, c.Functions...)
	out = append(out, c.Constants...)
	return out
}
