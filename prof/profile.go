// Package prof records wall clock durations of labelled phases.
package prof

import (
	"sort"
	"sync"
	"time"
)

// Entry is a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Recorder collects entries from concurrent goroutines. The zero value is
// ready to use.
type Recorder struct {
	mu     sync.Mutex
	record []Entry
}

// Track records the duration since start under label. Use it as
// defer r.Track(time.Now(), "phase").
func (r *Recorder) Track(start time.Time, label string) {
	elapsed := time.Since(start)
	r.mu.Lock()
	r.record = append(r.record, Entry{Label: label, Dur: elapsed})
	r.mu.Unlock()
}

// Snapshot returns a copy of the entries in recording order.
func (r *Recorder) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.record))
	copy(out, r.record)
	return out
}

// SnapshotAndReset returns the collected entries and clears them.
func (r *Recorder) SnapshotAndReset() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.record
	r.record = nil
	return out
}

// Total is the accumulated time and count of one label.
type Total struct {
	Label string
	Count int
	Sum   time.Duration
}

// Totals aggregates the entries per label, sorted by label.
func (r *Recorder) Totals() []Total {
	byLabel := map[string]*Total{}
	for _, e := range r.Snapshot() {
		t, ok := byLabel[e.Label]
		if !ok {
			t = &Total{Label: e.Label}
			byLabel[e.Label] = t
		}
		t.Count++
		t.Sum += e.Dur
	}
	out := make([]Total, 0, len(byLabel))
	for _, t := range byLabel {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
