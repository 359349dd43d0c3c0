package locator

// restoreLayerMultiAnchor implements L3 (spec §4.6): re-identify the start
// and end elements by their AnchorSignature (tag, BEM-scored class
// similarity, whitelisted attributes, id), scoped by the recorded common
// parent when it still resolves, then locate the selection text inside
// that region via the intelligent text matcher rather than any stored
// offset (MultiAnchor carries none).
func restoreLayerMultiAnchor(ta TreeAdapter, cfg *Config, scope ElementHandle, d *Descriptor) (Range, error) {
	m := d.Multi
	if m.StartAnchor.Tag == "" {
		return Range{}, ErrMissingAnchor
	}

	searchScope := scope
	if m.CommonParent != "" {
		if cp := ta.QuerySelector(scope, m.CommonParent); cp != nil {
			searchScope = cp
		}
	}

	startEl := bestAnchorCandidate(ta, searchScope, m.StartAnchor, m.SiblingInfo)
	if startEl == nil {
		startEl = bestAnchorCandidate(ta, scope, m.StartAnchor, m.SiblingInfo)
	}

	endEl := startEl
	if !sameAnchorSignature(m.StartAnchor, m.EndAnchor) {
		endEl = bestAnchorCandidate(ta, searchScope, m.EndAnchor, m.SiblingInfo)
		if endEl == nil {
			endEl = bestAnchorCandidate(ta, scope, m.EndAnchor, m.SiblingInfo)
		}
	}
	if startEl == nil || endEl == nil {
		return Range{}, ErrMissingAnchor
	}

	root := startEl
	if endEl != startEl {
		if lca := lowestCommonAncestor(ta, startEl, endEl); lca != nil {
			root = lca
		}
	}

	candidate, ok := locateTextInElement(ta, root, d.Text)
	if !ok {
		return Range{}, ErrTextMismatch
	}
	if rng, accepted := validate(ta, candidate, d.Text); accepted {
		return rng, nil
	}
	return Range{}, ErrTextMismatch
}
