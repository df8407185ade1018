package slicerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_FormatsWithAndWithoutCause(t *testing.T) {
	withCause := New(ParseFailure, "foo.go", errors.New("unexpected token"))
	assert.Equal(t, "parse_failure: foo.go: unexpected token", withCause.Error())

	withoutCause := New(UnsupportedLanguage, "foo.zig", nil)
	assert.Equal(t, "unsupported_language: foo.zig", withoutCause.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(IOError, "foo.go", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestError_IsMatchesByKind(t *testing.T) {
	err := New(ParseFailure, "foo.go", errors.New("boom"))
	assert.True(t, errors.Is(err, KindError(ParseFailure)))
	assert.False(t, errors.Is(err, KindError(IOError)))
}

func TestKind_Fatal(t *testing.T) {
	fatal := []Kind{ParseFailure, ChangeOutOfRange, IOError, UnsupportedLanguage, InternalInvariant}
	for _, k := range fatal {
		assert.True(t, k.Fatal(), "%s should be fatal", k)
	}

	nonFatal := []Kind{ExtractionWarning, ResolutionUnresolved, ResolutionDepthTruncated}
	for _, k := range nonFatal {
		assert.False(t, k.Fatal(), "%s should not be fatal", k)
	}
}
