package perf

import (
	"math"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 4096

// Kind distinguishes what a timing sample measured.
type Kind uint8

const (
	KindRequest Kind = iota // an HTTP request
	KindStore               // a key-value or SQL operation
	KindEvent               // a broadcast delivery to one subscriber
)

// Sample is a single timing record.
type Sample struct {
	Kind       Kind
	Name       string // "GET /api/availability", "kv.Get", "sse"
	StatusCode int    // HTTP status, 0 otherwise
	DurationMs float64
	At         time.Time
}

// Collector keeps the most recent samples in a fixed ring.
// Record never allocates; aggregation happens in Snapshot.
type Collector struct {
	mu    sync.Mutex
	ring  []Sample
	next  int
	total atomic.Int64
}

// NewCollector creates a collector holding up to size samples.
// PRE: size > 0 (DefaultRingSize otherwise)
// POST: Returns an empty collector
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{ring: make([]Sample, size)}
}

// Record stores a sample, overwriting the oldest when the ring is full.
func (c *Collector) Record(s Sample) {
	c.mu.Lock()
	c.ring[c.next] = s
	c.next = (c.next + 1) % len(c.ring)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns how many samples were ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return c.total.Load()
}

// Stat aggregates samples sharing a name.
type Stat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	AvgMs   float64 `json:"avgMs"`
	MaxMs   float64 `json:"maxMs"`
	TotalMs float64 `json:"-"`
}

// Snapshot is the aggregated view served on the admin perf endpoint.
type Snapshot struct {
	TotalRecorded  int64   `json:"totalRecorded"`
	Requests       int     `json:"requests"`
	RequestP50Ms   float64 `json:"requestP50Ms"`
	RequestP95Ms   float64 `json:"requestP95Ms"`
	RequestP99Ms   float64 `json:"requestP99Ms"`
	ServerErrors   int     `json:"serverErrors"`
	SlowestRoutes  []Stat  `json:"slowestRoutes"`
	SlowestStore   []Stat  `json:"slowestStore"`
	EventDelivered int     `json:"eventDelivered"`
}

// Snapshot aggregates samples recorded at or after since.
// POST: lists hold at most topN entries, slowest average first
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := slices.Clone(c.ring)
	c.mu.Unlock()

	routes := map[string]*Stat{}
	store := map[string]*Stat{}
	var durations []float64
	snap := Snapshot{TotalRecorded: c.TotalRecorded()}

	for _, s := range buf {
		if s.At.IsZero() || s.At.Before(since) {
			continue
		}
		switch s.Kind {
		case KindRequest:
			durations = append(durations, s.DurationMs)
			if s.StatusCode >= 500 {
				snap.ServerErrors++
			}
			add(routes, s)
		case KindStore:
			add(store, s)
		case KindEvent:
			snap.EventDelivered++
		}
	}

	snap.Requests = len(durations)
	snap.SlowestRoutes = slowest(routes, topN)
	snap.SlowestStore = slowest(store, topN)
	if len(durations) > 0 {
		sort.Float64s(durations)
		snap.RequestP50Ms = percentile(durations, 50)
		snap.RequestP95Ms = percentile(durations, 95)
		snap.RequestP99Ms = percentile(durations, 99)
	}
	return snap
}

func add(m map[string]*Stat, s Sample) {
	st, ok := m[s.Name]
	if !ok {
		st = &Stat{Name: s.Name}
		m[s.Name] = st
	}
	st.Count++
	st.TotalMs += s.DurationMs
	st.MaxMs = math.Max(st.MaxMs, s.DurationMs)
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func slowest(m map[string]*Stat, n int) []Stat {
	list := make([]Stat, 0, len(m))
	for _, st := range m {
		st.AvgMs = st.TotalMs / float64(st.Count)
		list = append(list, *st)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs == list[j].AvgMs {
			return list[i].Name < list[j].Name
		}
		return list[i].AvgMs > list[j].AvgMs
	})
	if n >= 0 && len(list) > n {
		list = list[:n]
	}
	return list
}
