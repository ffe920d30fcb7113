// Package telemetry collects hierarchical operation timings. Collectors
// travel through context so pipeline code can be instrumented without
// threading extra parameters; when no collector is installed, timers
// are no-ops with zero overhead.
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector gathers timings for a run.
type Collector interface {
	// Start begins timing a top-level operation. End the returned
	// timer when the operation completes.
	Start(name string) Timer

	// Report writes the collected timings.
	Report(w io.Writer)
}

// Timer tracks one operation. Nested operations are timed with Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector installs a collector in the context.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, collectorKey, c)
}

// FromContext returns the installed collector, or a no-op collector
// when none is present.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey).(Collector); ok {
		return c
	}
	return noopCollector{}
}

type noopCollector struct{}

func (noopCollector) Start(string) Timer { return noopTimer{} }
func (noopCollector) Report(io.Writer)   {}

type noopTimer struct{}

func (noopTimer) End()               {}
func (noopTimer) Child(string) Timer { return noopTimer{} }
