// Package status is the lock-free metrics facade shared by the generation scheduler,
// render selector and metrics engine. Writers cache metric pointers at construction
// and store into atomics on the hot path; readers list everything with Entries.
package status

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry is the central metrics facade
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Entry is one formatted metric for display
type Entry struct {
	Key   string
	Value string
}

// Entries returns every metric formatted as text, sorted by key
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Bools.Range(func(k string, p *atomic.Bool) {
		out = append(out, Entry{k, strconv.FormatBool(p.Load())})
	})
	r.Ints.Range(func(k string, p *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(p.Load(), 10)})
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		out = append(out, Entry{k, strconv.FormatFloat(p.Get(), 'f', 2, 64)})
	})
	r.Strings.Range(func(k string, p *AtomicString) {
		out = append(out, Entry{k, p.Load()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
