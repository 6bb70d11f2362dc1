package telemetry

import (
	"sort"
	"sync"
	"time"
)

// HealthTracker reports stale background loops. Loops register with an
// expected heartbeat interval; a loop that misses two intervals is stale.
type HealthTracker struct {
	mu    sync.Mutex
	loops map[string]*Heartbeat
	now   func() time.Time
}

type Heartbeat struct {
	tracker  *HealthTracker
	name     string
	interval time.Duration
	last     time.Time
}

type HealthReport struct {
	Status string       `json:"status"`
	Loops  []LoopHealth `json:"loops,omitempty"`
}

type LoopHealth struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	LastSeen string `json:"lastSeen"`
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{
		loops: make(map[string]*Heartbeat),
		now:   time.Now,
	}
}

// Register adds a loop and marks it alive immediately.
func (h *HealthTracker) Register(name string, interval time.Duration) *Heartbeat {
	h.mu.Lock()
	defer h.mu.Unlock()
	beat := &Heartbeat{
		tracker:  h,
		name:     name,
		interval: interval,
		last:     h.now(),
	}
	h.loops[name] = beat
	return beat
}

// Unregister drops a loop, typically when it exits cleanly.
func (h *HealthTracker) Unregister(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.loops, name)
}

func (b *Heartbeat) Beat() {
	if b == nil || b.tracker == nil {
		return
	}
	b.tracker.mu.Lock()
	b.last = b.tracker.now()
	b.tracker.mu.Unlock()
}

func (h *HealthTracker) Report() HealthReport {
	if h == nil {
		return HealthReport{Status: "ok"}
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	report := HealthReport{Status: "ok"}
	names := make([]string, 0, len(h.loops))
	for name := range h.loops {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		beat := h.loops[name]
		healthy := beat.interval <= 0 || now.Sub(beat.last) <= 2*beat.interval
		if !healthy {
			report.Status = "degraded"
		}
		report.Loops = append(report.Loops, LoopHealth{
			Name:     name,
			Healthy:  healthy,
			LastSeen: beat.last.UTC().Format(time.RFC3339),
		})
	}
	return report
}
