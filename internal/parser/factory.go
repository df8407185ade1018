package parser

import (
	"path/filepath"
	"sync"

	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/slicerr"
)

// CacheStats reports pool activity for observability, per spec.md §4.2.
type CacheStats struct {
	Hits     int
	Misses   int
	PoolSize map[model.Language]int
}

// Factory maps language tags and file suffixes to parser Adapter instances,
// pooling them by language for reuse. Pool operations are serialized by a
// single mutex; the adapters themselves are not safe for concurrent access
// while acquired (spec.md §4.1, §5 "Shared resources").
type Factory struct {
	mu    sync.Mutex
	pools map[model.Language][]Adapter

	hits   int
	misses int
}

// NewFactory returns an empty Factory. Adapters are created lazily on the
// first Acquire for a given language.
func NewFactory() *Factory {
	return &Factory{pools: make(map[model.Language][]Adapter)}
}

// Acquire returns an Adapter for tag, creating one on a pool miss. The
// returned Adapter must be returned via Release when the caller is done
// with it; it must not be used concurrently from two goroutines.
func (f *Factory) Acquire(tag model.Language) (Adapter, error) {
	f.mu.Lock()
	pool := f.pools[tag]
	if len(pool) > 0 {
		a := pool[len(pool)-1]
		f.pools[tag] = pool[:len(pool)-1]
		f.hits++
		f.mu.Unlock()
		return a, nil
	}
	f.misses++
	f.mu.Unlock()

	a, err := newAdapter(tag)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Release returns an Adapter to its language's pool for reuse.
func (f *Factory) Release(a Adapter) {
	if a == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tag := a.LanguageName()
	f.pools[tag] = append(f.pools[tag], a)
}

// Stats returns a snapshot of cache activity and current pool sizes.
func (f *Factory) Stats() CacheStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes := make(map[model.Language]int, len(f.pools))
	for lang, pool := range f.pools {
		sizes[lang] = len(pool)
	}
	return CacheStats{Hits: f.hits, Misses: f.misses, PoolSize: sizes}
}

// Detect matches a file path to a registered language by suffix: the
// path's final extension (filepath.Ext, e.g. ".tsx" for "foo.tsx") must
// equal a registered suffix exactly.
func Detect(path string) (model.Language, bool) {
	ext := filepath.Ext(path)
	return model.LanguageForExtension(ext)
}

// newAdapter constructs a fresh Adapter for tag. Each call compiles a new
// tree-sitter Language binding; callers should go through a Factory so this
// only happens once per language per process under normal use.
func newAdapter(tag model.Language) (Adapter, error) {
	switch tag {
	case model.LangGo:
		return newGoAdapter(), nil
	case model.LangPython:
		return newPythonAdapter(), nil
	case model.LangRust:
		return newRustAdapter(), nil
	case model.LangTypeScript:
		return newTypeScriptAdapter(), nil
	default:
		return nil, slicerr.New(slicerr.UnsupportedLanguage, string(tag), nil)
	}
}
