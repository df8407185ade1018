package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/semslice/internal/model"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		path string
		want model.Language
		ok   bool
	}{
		{"main.go", model.LangGo, true},
		{"script.py", model.LangPython, true},
		{"lib.rs", model.LangRust, true},
		{"app.ts", model.LangTypeScript, true},
		{"notes.txt", "", false},
	}
	for _, c := range cases {
		got, ok := Detect(c.path)
		assert.Equal(t, c.ok, ok, c.path)
		if c.ok {
			assert.Equal(t, c.want, got, c.path)
		}
	}
}

func TestFactory_AcquireReleaseReusesPooledAdapter(t *testing.T) {
	f := NewFactory()

	a1, err := f.Acquire(model.LangGo)
	require.NoError(t, err)
	stats := f.Stats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 0, stats.Hits)

	f.Release(a1)
	a2, err := f.Acquire(model.LangGo)
	require.NoError(t, err)

	stats = f.Stats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Hits)
	assert.Same(t, a1, a2, "the released adapter should be handed back out on the next acquire")
}

func TestFactory_AcquireUnsupportedLanguage(t *testing.T) {
	f := NewFactory()
	_, err := f.Acquire(model.Language("cobol"))
	assert.Error(t, err)
}

func TestFactory_PoolsAreIndependentPerLanguage(t *testing.T) {
	f := NewFactory()

	goAdapter, err := f.Acquire(model.LangGo)
	require.NoError(t, err)
	f.Release(goAdapter)

	pyAdapter, err := f.Acquire(model.LangPython)
	require.NoError(t, err)
	f.Release(pyAdapter)

	stats := f.Stats()
	assert.Equal(t, 1, stats.PoolSize[model.LangGo])
	assert.Equal(t, 1, stats.PoolSize[model.LangPython])
}
