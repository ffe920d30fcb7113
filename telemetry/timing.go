package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// TimingCollector records a tree of timed operations and reports it as
// an indented listing:
//
//	transform trial_balances.xlsx: 125ms
//	├─ reshape: 85ms
//	└─ profit synthesis: 12ms
type TimingCollector struct {
	mu      sync.Mutex
	root    *node
	current *node
}

type node struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *node
	children []*node
}

// NewTimingCollector creates an empty collector. The first Start call
// becomes the report's root.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation under the currently running one.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := &node{name: name, start: time.Now()}
	if c.root == nil {
		c.root = n
	} else {
		n.parent = c.current
		c.current.children = append(c.current.children, n)
	}
	c.current = n

	return &timer{collector: c, node: n}
}

// Report writes the timing tree.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}
	writeNode(w, c.root, "")
}

type timer struct {
	collector *TimingCollector
	node      *node
}

func (t *timer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.node.end.IsZero() {
		t.node.end = time.Now()
	}
	if t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}

func (t *timer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	n := &node{name: name, start: time.Now(), parent: t.node}
	t.node.children = append(t.node.children, n)

	return &timer{collector: t.collector, node: n}
}

func writeNode(w io.Writer, n *node, prefix string) {
	end := n.end
	if end.IsZero() {
		end = time.Now()
	}
	if prefix == "" {
		_, _ = fmt.Fprintf(w, "%s: %s\n", n.name, formatDuration(end.Sub(n.start)))
	}

	for i, child := range n.children {
		connector, childPrefix := "├─ ", prefix+"│  "
		if i == len(n.children)-1 {
			connector, childPrefix = "└─ ", prefix+"   "
		}
		childEnd := child.end
		if childEnd.IsZero() {
			childEnd = time.Now()
		}
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, connector, child.name, formatDuration(childEnd.Sub(child.start)))
		writeNode(w, child, childPrefix)
	}
}

// formatDuration rounds to a readable precision; sub-millisecond noise
// is not useful in a batch report.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(100 * time.Microsecond).String()
	default:
		return d.Round(time.Microsecond).String()
	}
}
