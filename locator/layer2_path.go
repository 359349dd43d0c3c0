package locator

// restoreLayerPathCandidates lets restoreLayerStructuralPath try the
// primary (start_offset/end_offset) and, if those fail validation, the
// fallback (start_text_offset/end_text_offset) offset pairs recorded in
// PathAnchors.
func restoreLayerPathCandidates(p PathAnchors) [][2]int {
	pairs := [][2]int{{p.StartOffset, p.EndOffset}}
	if p.StartTextOffset != p.StartOffset || p.EndTextOffset != p.EndOffset {
		pairs = append(pairs, [2]int{p.StartTextOffset, p.EndTextOffset})
	}
	return pairs
}

// restoreLayerStructuralPath implements L2 (spec §4.5): re-resolve the
// start/end elements by descending their recorded path expressions from
// scope, then re-apply the stored offsets. Unlike L3/L4, L2 never falls
// back to text search — a path that no longer resolves is a flat miss.
func restoreLayerStructuralPath(ta TreeAdapter, cfg *Config, scope ElementHandle, d *Descriptor) (Range, error) {
	p := d.Paths
	if p.StartPath == "" || p.EndPath == "" || d.Text == "" {
		return Range{}, ErrMissingAnchor
	}

	startEl := ta.QuerySelector(scope, p.StartPath)
	endEl := ta.QuerySelector(scope, p.EndPath)
	if startEl == nil || endEl == nil {
		return Range{}, ErrMissingAnchor
	}

	for _, offsets := range restoreLayerPathCandidates(p) {
		startNode, startOff, ok1 := locateTextOffset(ta, startEl, offsets[0])
		endNode, endOff, ok2 := locateTextOffset(ta, endEl, offsets[1])
		if !ok1 || !ok2 {
			continue
		}
		candidate := Range{StartContainer: startNode, StartOffset: startOff, EndContainer: endNode, EndOffset: endOff}
		if rng, accepted := validate(ta, candidate, d.Text); accepted {
			return rng, nil
		}
	}
	return Range{}, ErrOffsetMismatch
}
