package locator

import (
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// RestoreResult is what Restore returns: either a located Range and the
// layer that produced it, or a terminal error.
type RestoreResult struct {
	Range Range
	Layer Layer
	Error error
}

// Succeeded reports whether a layer located the selection.
func (r RestoreResult) Succeeded() bool {
	return r.Error == nil && r.Layer != LayerNone
}

// Restorer runs the four-layer cascade described in spec §4.2 over a single
// TreeAdapter-bound tree. It holds no hidden state beyond what's passed to
// NewRestorer: the scope root (if any), the id filter/custom-id
// configuration, and an optional Metrics collector.
type Restorer struct {
	ta        TreeAdapter
	cfg       *Config
	container ContainerConfig
	metrics   *Metrics
	logger    kitlog.Logger
}

// NewRestorer builds a Restorer bound to ta. cfg and metrics may be nil; a
// nil logger falls back to a no-op logger, matching spec §3.8's "no
// implicit global state" stance — every collaborator is explicit.
func NewRestorer(ta TreeAdapter, cfg *Config, container ContainerConfig, metrics *Metrics, logger kitlog.Logger) *Restorer {
	if cfg == nil {
		cfg = NewConfig()
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Restorer{ta: ta, cfg: cfg, container: container, metrics: metrics, logger: logger}
}

// Restore runs L1 through L4 in order, returning the first Range that
// passes the Validator. Every layer's own internal errors (missing anchor,
// offset mismatch, text mismatch) are swallowed into a "try the next layer"
// decision; only total exhaustion surfaces as RestoreResult.Error.
func (r *Restorer) Restore(d *Descriptor) RestoreResult {
	scope := r.resolveScope()

	layers := []struct {
		id Layer
		fn func(TreeAdapter, *Config, ElementHandle, *Descriptor) (Range, error)
	}{
		{LayerIdentity, restoreLayerIdentity},
		{LayerStructuralPath, restoreLayerStructuralPath},
		{LayerMultiAnchor, restoreLayerMultiAnchor},
		{LayerFingerprint, restoreLayerFingerprint},
	}

	for _, l := range layers {
		start := time.Now()
		rng, err := r.runLayer(l.fn, scope, d)
		elapsed := time.Since(start)
		success := err == nil
		if r.metrics != nil {
			r.metrics.recordLayer(l.id, elapsed, success)
		}
		if success {
			if r.metrics != nil {
				r.metrics.recordRestore(true)
			}
			return RestoreResult{Range: rng, Layer: l.id}
		}
		level.Debug(r.logger).Log("msg", "layer failed to restore selection", "layer", l.id.String(), "descriptor_id", d.ID, "err", err)
	}

	if r.metrics != nil {
		r.metrics.recordRestore(false)
	}
	level.Warn(r.logger).Log("msg", "all layers exhausted", "descriptor_id", d.ID)
	return RestoreResult{Error: ErrAllLayersExhausted}
}

// runLayer invokes a layer and converts any panic it raises into a plain
// failure, per spec §7: a layer's internal exceptions never cross the
// cascade boundary. This is the one place in the package a recover
// appears.
func (r *Restorer) runLayer(fn func(TreeAdapter, *Config, ElementHandle, *Descriptor) (Range, error), scope ElementHandle, d *Descriptor) (rng Range, err error) {
	defer func() {
		if p := recover(); p != nil {
			level.Error(r.logger).Log("msg", "layer panicked", "descriptor_id", d.ID, "panic", p)
			rng, err = Range{}, ErrMissingAnchor
		}
	}()
	return fn(r.ta, r.cfg, scope, d)
}

// resolveScope looks up the container's root element, if configured. A
// missing root falls back to the whole tree with a warning, per spec §3.8.
func (r *Restorer) resolveScope() ElementHandle {
	if r.container.RootID == "" {
		return nil
	}
	el := r.ta.GetElementByID(nil, r.container.RootID)
	if el == nil {
		level.Warn(r.logger).Log("msg", "configured root id not found; falling back to whole tree", "root_id", r.container.RootID)
	}
	return el
}
