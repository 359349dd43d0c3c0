package locator

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Layer identifies which restoration strategy produced a result. Layer 0
// means "no layer succeeded" (a terminal failure).
type Layer int

const (
	LayerNone Layer = iota
	LayerIdentity
	LayerStructuralPath
	LayerMultiAnchor
	LayerFingerprint
)

// String returns the layer's human-readable name ("restore failed" for LayerNone).
func (l Layer) String() string {
	switch l {
	case LayerIdentity:
		return "identity anchor"
	case LayerStructuralPath:
		return "structural path"
	case LayerMultiAnchor:
		return "multi-anchor"
	case LayerFingerprint:
		return "structural fingerprint"
	default:
		return "restore failed"
	}
}

// LayerStats accumulates attempts, successes, and timing for one layer.
type LayerStats struct {
	Attempts  int
	Successes int
	TotalTime time.Duration
	AvgTime   time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

func (s *LayerStats) record(elapsed time.Duration, success bool) {
	s.Attempts++
	if success {
		s.Successes++
	}
	s.TotalTime += elapsed
	s.AvgTime = s.TotalTime / time.Duration(s.Attempts)
	if s.MinTime == 0 || elapsed < s.MinTime {
		s.MinTime = elapsed
	}
	if elapsed > s.MaxTime {
		s.MaxTime = elapsed
	}
}

// MetricsSnapshot is a point-in-time copy of the Metrics record, safe to
// read without holding the collector's lock.
type MetricsSnapshot struct {
	Layers         [4]LayerStats // indexed by Layer-1 (Identity..Fingerprint)
	TotalRestores  int
	TotalSuccesses int
	SuccessRate    float64
	AvgTime        time.Duration
	LastUpdated    time.Time
}

// Metrics is a per-process restoration counter. It is a single mutable
// record: per spec §5, if the host calls the core from multiple threads it
// must either disable metrics or wrap calls with its own mutex. Metrics
// itself uses a lock only so a single Metrics value can be shared safely
// by a cooperating host; it does not make concurrent Restore calls safe on
// its own.
type Metrics struct {
	mu      sync.Mutex
	enabled bool
	layers  [4]LayerStats
	total   int
	success int
}

// NewMetrics returns a Metrics collector with collection enabled.
func NewMetrics() *Metrics {
	return &Metrics{enabled: true}
}

// Enable turns metrics collection on.
func (m *Metrics) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}

// Disable turns metrics collection off; subsequent record calls are no-ops.
func (m *Metrics) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

// Reset clears all recorded stats without changing the enabled flag.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = [4]LayerStats{}
	m.total = 0
	m.success = 0
}

func (m *Metrics) recordLayer(layer Layer, elapsed time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	idx := int(layer) - 1
	if idx < 0 || idx >= len(m.layers) {
		return
	}
	m.layers[idx].record(elapsed, success)
}

func (m *Metrics) recordRestore(succeeded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	m.total++
	if succeeded {
		m.success++
	}
}

// Snapshot returns a consistent copy of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Layers:         m.layers,
		TotalRestores:  m.total,
		TotalSuccesses: m.success,
		LastUpdated:    time.Now(),
	}
	if m.total > 0 {
		snap.SuccessRate = float64(m.success) / float64(m.total)
	}
	var totalTime time.Duration
	var totalAttempts int
	for _, l := range m.layers {
		totalTime += l.TotalTime
		totalAttempts += l.Attempts
	}
	if totalAttempts > 0 {
		snap.AvgTime = totalTime / time.Duration(totalAttempts)
	}
	return snap
}

// Report renders a human-readable summary, the way a teammate would paste
// into a bug report.
func (m *Metrics) Report() string {
	snap := m.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "restores: %d, successes: %d, success rate: %.1f%%\n",
		snap.TotalRestores, snap.TotalSuccesses, snap.SuccessRate*100)
	names := []string{"L1 identity", "L2 structural path", "L3 multi-anchor", "L4 fingerprint"}
	for i, name := range names {
		l := snap.Layers[i]
		fmt.Fprintf(&b, "  %-20s attempts=%-5d successes=%-5d avg=%-10s max=%s\n",
			name, l.Attempts, l.Successes, l.AvgTime, l.MaxTime)
	}
	return b.String()
}
