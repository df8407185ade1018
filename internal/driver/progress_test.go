package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventFormat(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{Event{Path: "a.go", Status: StatusWorking}, "  ● a.go..."},
		{Event{Path: "a.go", Status: StatusComplete}, "  ✓ a.go"},
		{Event{Path: "a.go", Status: StatusFailed, Message: "boom"}, "  ✗ a.go: boom"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.ev.Format())
	}
}

func TestReporter_EmitAndSubscribe(t *testing.T) {
	r := NewReporter()
	r.Emit(Event{Path: "a.go", Status: StatusComplete})
	r.Emit(Event{Path: "b.go", Status: StatusComplete})

	ch := r.Subscribe()
	first := <-ch
	second := <-ch
	assert.Equal(t, "a.go", first.Path)
	assert.Equal(t, "b.go", second.Path)

	r.Close()
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after Close")
}

func TestReporter_EmitNeverBlocksWhenBufferFull(t *testing.T) {
	r := &Reporter{ch: make(chan Event, 1)}
	r.Emit(Event{Path: "first"})
	r.Emit(Event{Path: "second"}) // would block on a full unbuffered-drain channel; must not

	got := <-r.ch
	assert.Equal(t, "first", got.Path)
}
