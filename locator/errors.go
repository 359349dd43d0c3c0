package locator

import "errors"

// Error kinds from spec §7. They classify why a layer yielded to the next
// one; none of them ever crosses the Restore boundary as a panic or a
// returned error — the cascade always converts them into a failed layer
// and, ultimately, into RestoreResult.Error.
var (
	// ErrMissingAnchor: a layer could not resolve an element (id gone,
	// path dead, tag absent).
	ErrMissingAnchor = errors.New("locator: missing anchor")
	// ErrOffsetMismatch: the element exists but the stored offset does
	// not reproduce the expected text.
	ErrOffsetMismatch = errors.New("locator: offset mismatch")
	// ErrTextMismatch: the Validator rejected a candidate range because
	// its text did not equal the descriptor's text.
	ErrTextMismatch = errors.New("locator: text mismatch")
	// ErrInvalidInput: a collapsed or empty selection. Serialize reports
	// that case by returning nil, not this error.
	ErrInvalidInput = errors.New("locator: invalid input")
)

// ErrAllLayersExhausted is the terminal, user-facing error returned in
// RestoreResult when no layer could restore the selection.
var ErrAllLayersExhausted = errors.New("content changed; reselect required")
