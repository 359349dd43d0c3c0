// Package locator implements a durable text-range locator: it serializes a
// user selection over a structured document tree into a portable Descriptor
// and later reconstructs an equivalent Range after the tree has mutated.
//
// The package never touches a concrete tree implementation directly. It
// consumes any host tree through the TreeAdapter capability interface (see
// adapter.go); github.com/acsamson/range-kit/domadapter binds that interface
// to the in-memory DOM implemented in the dom package.
package locator

// Descriptor is the serialized, portable representation of a selection.
// Once returned by Serialize, a Descriptor is immutable; ownership passes
// to the caller.
type Descriptor struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Anchors     IdentityAnchors `json:"anchors"`
	Paths       PathAnchors     `json:"paths"`
	Multi       MultiAnchor     `json:"multi"`
	Fingerprint Fingerprint     `json:"fingerprint"`
	Context     TextContext     `json:"context"`
}

// IdentityAnchors carries stable element identifiers plus an in-element
// character offset. See spec §3.3.
type IdentityAnchors struct {
	StartID     string `json:"start_id,omitempty"`
	EndID       string `json:"end_id,omitempty"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`

	StartCustomID      string `json:"start_custom_id,omitempty"`
	EndCustomID        string `json:"end_custom_id,omitempty"`
	CustomIDAttribute  string `json:"custom_id_attribute,omitempty"`
}

// SameElement reports whether start and end resolve to the same anchor,
// preferring the custom-id pair when both sides carry one.
func (a IdentityAnchors) SameElement() bool {
	if a.StartCustomID != "" || a.EndCustomID != "" {
		return a.StartCustomID != "" && a.StartCustomID == a.EndCustomID
	}
	return a.StartID != "" && a.StartID == a.EndID
}

// PathAnchors carries CSS-like path expressions sufficient to re-locate the
// start and end elements by descending from a scope root. See spec §3.4.
type PathAnchors struct {
	StartPath string `json:"start_path,omitempty"`
	EndPath   string `json:"end_path,omitempty"`

	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	// StartTextOffset/EndTextOffset duplicate the above and are used as a
	// fallback for cross-element reconstruction.
	StartTextOffset int `json:"start_text_offset"`
	EndTextOffset   int `json:"end_text_offset"`
}

// AnchorSignature describes the tag/class/id/attribute fingerprint the
// core uses to identify a candidate element regardless of path. See §3.5.
type AnchorSignature struct {
	Tag        string            `json:"tag"`
	ClassString string           `json:"class_string,omitempty"`
	ID         string            `json:"id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// SiblingInfo is a tie-breaker for L3 candidate pairing when the start and
// end anchors share a direct parent.
type SiblingInfo struct {
	Index      int    `json:"index"`
	Total      int    `json:"total"`
	TagPattern string `json:"tag_pattern"`
}

// MultiAnchor is the candidate-identification payload consumed by L3.
// See spec §3.5.
type MultiAnchor struct {
	StartAnchor  AnchorSignature `json:"start_anchor"`
	EndAnchor    AnchorSignature `json:"end_anchor"`
	CommonParent string          `json:"common_parent,omitempty"`
	SiblingInfo  *SiblingInfo    `json:"sibling_info,omitempty"`
}

// ParentChainEntry is one level of Fingerprint.ParentChain.
type ParentChainEntry struct {
	Tag         string `json:"tag"`
	ClassString string `json:"class_string,omitempty"`
	ID          string `json:"id,omitempty"`
}

// SiblingPattern describes the start element's position among its siblings,
// truncated to at most two tags on either side.
type SiblingPattern struct {
	Position   int      `json:"position"`
	Total      int      `json:"total"`
	BeforeTags []string `json:"before_tags,omitempty"`
	AfterTags  []string `json:"after_tags,omitempty"`
}

// Fingerprint is the structural-similarity signature of the start element.
// See spec §3.6. ParentChain is capped at maxParentChainDepth entries.
type Fingerprint struct {
	Tag         string            `json:"tag"`
	ClassString string            `json:"class_string,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	TextLength  int               `json:"text_length"`
	ChildCount  int               `json:"child_count"`
	Depth       int               `json:"depth"`

	ParentChain    []ParentChainEntry `json:"parent_chain,omitempty"`
	SiblingPattern SiblingPattern     `json:"sibling_pattern"`
}

// TextPosition locates the selection within TextContext.ParentText.
type TextPosition struct {
	Start       int `json:"start"`
	End         int `json:"end"`
	TotalLength int `json:"total_length"`
}

// TextContext carries surrounding text. L4 reads ParentText as a hint; the
// other fields are recorded but not read during restoration.
// See spec §3.7.
type TextContext struct {
	PrecedingText string       `json:"preceding_text,omitempty"`
	FollowingText string       `json:"following_text,omitempty"`
	ParentText    string       `json:"parent_text,omitempty"`
	TextPosition  TextPosition `json:"text_position"`
}

// whitelisted attribute names considered for AnchorSignature.Attributes and
// Fingerprint.Attributes (spec §3.5: "a small whitelist").
var whitelistedAttributes = []string{"data-id", "data-key", "data-testid", "role", "type", "name"}
