package model

// ResolveOptions is the flat runtime-options record spec.md §9 calls for:
// named fields, documented defaults, no ambient/global state.
type ResolveOptions struct {
	// MaxDepth bounds the longest chain from a seed to a resolved
	// dependency. Default: 5.
	MaxDepth int

	// FollowImports names whether third-party package imports would be
	// parsed and recursed into. resolve.Resolve does not read it: imports
	// are never followed, whatever its value.
	FollowImports bool

	// FirstPartyOnly names whether resolution is restricted to packages
	// whose source files are present in the run's model set. resolve.Resolve
	// does not read it: resolution is always restricted that way.
	FirstPartyOnly bool
}

// DefaultResolveOptions returns the documented defaults.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		MaxDepth:       5,
		FollowImports:  false,
		FirstPartyOnly: true,
	}
}

// RenderOptions configures the slice renderer.
type RenderOptions struct {
	// Marker is appended to every line whose number falls in a hunk's new
	// range. Default: " // <-- changed".
	Marker string

	// HeaderTemplate, if non-empty, overrides the default header comment.
	// It is rendered verbatim; callers are responsible for formatting it as
	// a comment for the target language.
	HeaderTemplate string

	// CommitID is the source commit identifier the caller resolved the
	// change against. Surfaced in the header.
	CommitID string
}

// DefaultRenderOptions returns the documented defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Marker: " // <-- changed"}
}
