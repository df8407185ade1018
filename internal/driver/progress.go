package driver

import "fmt"

// Status classifies a single Event emitted during a batch run.
type Status string

const (
	StatusWorking  Status = "working"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Event is one per-file progress notification. onEvent callbacks are called
// synchronously from the worker goroutine that produced them, so callers
// that need non-blocking delivery should buffer internally (see Reporter).
type Event struct {
	RunID   string
	Path    string
	Status  Status
	Message string
}

// Format renders an Event as a human-readable status line, for CLI
// verbose output.
func (e Event) Format() string {
	switch e.Status {
	case StatusWorking:
		return fmt.Sprintf("  ● %s...", e.Path)
	case StatusComplete:
		return fmt.Sprintf("  ✓ %s", e.Path)
	case StatusFailed:
		return fmt.Sprintf("  ✗ %s: %s", e.Path, e.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", e.Path)
	}
}

// Reporter buffers Events on a non-blocking channel, so a slow consumer
// (e.g. a terminal redraw) never stalls the workers producing them.
// Grounded on internal/orchestrator/progress.go's ProgressReporter.
type Reporter struct {
	ch chan Event
}

// NewReporter creates a Reporter with a buffered channel of size 256.
func NewReporter() *Reporter {
	return &Reporter{ch: make(chan Event, 256)}
}

// Emit sends ev without blocking; it is dropped if the buffer is full.
func (r *Reporter) Emit(ev Event) {
	select {
	case r.ch <- ev:
	default:
	}
}

// Subscribe returns a read-only channel of emitted Events.
func (r *Reporter) Subscribe() <-chan Event { return r.ch }

// Close closes the underlying channel. Callers must stop calling Emit
// before calling Close.
func (r *Reporter) Close() { close(r.ch) }
