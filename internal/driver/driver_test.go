package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseBatch_MixedSuccessAndFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.go", "package project\n\nfunc Foo() {}\n")
	missing := filepath.Join(dir, "missing.go")

	var events []Event
	drv := New(func(ev Event) { events = append(events, ev) })

	result := drv.ParseBatch(context.Background(), []Request{
		{Path: good},
		{Path: missing},
	}, 2)

	require.Len(t, result.Successes, 1)
	assert.Equal(t, good, result.Successes[0].Path)
	for _, sf := range result.Successes {
		sf.Close()
	}

	require.Len(t, result.Failures, 1)
	assert.Equal(t, missing, result.Failures[0].Path)

	assert.Equal(t, 2, result.Stats.Requested)
	assert.Equal(t, 1, result.Stats.Succeeded)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.NotEmpty(t, result.Stats.RunID)

	var sawWorking, sawComplete, sawFailed bool
	for _, ev := range events {
		switch ev.Status {
		case StatusWorking:
			sawWorking = true
		case StatusComplete:
			sawComplete = true
		case StatusFailed:
			sawFailed = true
		}
	}
	assert.True(t, sawWorking)
	assert.True(t, sawComplete)
	assert.True(t, sawFailed)
}

func TestParseBatch_DefaultsWorkersToHostCoreCount(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.go", "package project\n\nfunc Foo() {}\n")

	drv := New(nil)
	result := drv.ParseBatch(context.Background(), []Request{{Path: good}}, 0)
	require.Len(t, result.Successes, 1)
	result.Successes[0].Close()
}

func TestParseBatch_EmptyRequestSet(t *testing.T) {
	drv := New(nil)
	result := drv.ParseBatch(context.Background(), nil, 1)
	assert.Empty(t, result.Successes)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 0, result.Stats.Requested)
}
