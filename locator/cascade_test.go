package locator

import "testing"

func newFakeDoc(top *fakeNode) *fakeAdapter {
	root := &fakeNode{children: []*fakeNode{top}}
	top.parent = root
	return &fakeAdapter{root: root}
}

// TestRestore_MultiAnchorSurvivesWrapperChange models a cross-element
// selection whose two anchor elements keep their tag+class signature
// while their containing wrapper is renamed and loses its id — L1 and L2
// both miss, L3 locates the pair by signature and common-ancestor text
// search (spec §4.6).
func TestRestore_MultiAnchorSurvivesWrapperChange(t *testing.T) {
	h3 := elem("h3", map[string]string{"class": "pt"}, text("Title"))
	p := elem("p", map[string]string{"class": "pe"}, text("Excerpt"))
	before := elem("div", map[string]string{"id": "old"}, h3, p)
	beforeAdapter := newFakeDoc(before)

	cfg := NewConfig()
	d := Serialize(beforeAdapter, cfg, h3.children[0], 0, p.children[0], len([]rune("Excerpt")), SerializeOptions{})
	if d == nil {
		t.Fatal("Serialize returned nil")
	}
	if d.Text != "TitleExcerpt" {
		t.Fatalf("descriptor text = %q, want %q", d.Text, "TitleExcerpt")
	}

	afterH3 := elem("h3", map[string]string{"class": "pt"}, text("Title"))
	afterP := elem("p", map[string]string{"class": "pe"}, text("Excerpt"))
	after := elem("article", map[string]string{"class": "x"}, afterH3, afterP)
	afterAdapter := newFakeDoc(after)

	restorer := NewRestorer(afterAdapter, cfg, ContainerConfig{}, nil, nil)
	result := restorer.Restore(d)
	if !result.Succeeded() {
		t.Fatalf("Restore failed: %v", result.Error)
	}
	if result.Layer != LayerMultiAnchor {
		t.Fatalf("layer = %v, want LayerMultiAnchor", result.Layer)
	}
	got := rangeText(afterAdapter, result.Range)
	if got != "TitleExcerpt" {
		t.Fatalf("restored text = %q, want %q", got, "TitleExcerpt")
	}
}

// TestRestore_FingerprintSemanticTagExpansion models S4: both anchor tags
// change to a semantically compatible tag and the wrapper is renamed —
// only L4's structural fingerprint (with semantic-tag expansion) finds
// the pair.
func TestRestore_FingerprintSemanticTagExpansion(t *testing.T) {
	h2 := elem("h2", nil, text("Hdr"))
	div := elem("div", nil, text("Body"))
	before := elem("article", map[string]string{"class": "post"}, h2, div)
	beforeAdapter := newFakeDoc(before)

	cfg := NewConfig()
	d := Serialize(beforeAdapter, cfg, h2.children[0], 0, div.children[0], len([]rune("Body")), SerializeOptions{})
	if d == nil {
		t.Fatal("Serialize returned nil")
	}
	if d.Text != "HdrBody" {
		t.Fatalf("descriptor text = %q, want %q", d.Text, "HdrBody")
	}

	afterH3 := elem("h3", nil, text("Hdr"))
	afterP := elem("p", nil, text("Body"))
	after := elem("section", map[string]string{"class": "blog"}, afterH3, afterP)
	afterAdapter := newFakeDoc(after)

	restorer := NewRestorer(afterAdapter, cfg, ContainerConfig{}, nil, nil)
	result := restorer.Restore(d)
	if !result.Succeeded() {
		t.Fatalf("Restore failed: %v", result.Error)
	}
	if result.Layer != LayerFingerprint {
		t.Fatalf("layer = %v, want LayerFingerprint", result.Layer)
	}
	got := rangeText(afterAdapter, result.Range)
	if got != "HdrBody" {
		t.Fatalf("restored text = %q, want %q", got, "HdrBody")
	}
}

// TestRestore_CascadeMonotonicity checks spec §8.1: a selection whose
// elements are untouched must succeed at L1 and record exactly one
// attempt (and success) at that layer; metrics show L2-L4 are never
// entered.
func TestRestore_CascadeMonotonicity(t *testing.T) {
	p := elem("p", map[string]string{"id": "b"}, text("Hello World"))
	top := elem("div", map[string]string{"id": "a"}, p)
	adapter := newFakeDoc(top)

	cfg := NewConfig()
	d := Serialize(adapter, cfg, p.children[0], 6, p.children[0], 11, SerializeOptions{})
	if d == nil {
		t.Fatal("Serialize returned nil")
	}

	metrics := NewMetrics()
	restorer := NewRestorer(adapter, cfg, ContainerConfig{}, metrics, nil)
	result := restorer.Restore(d)
	if !result.Succeeded() || result.Layer != LayerIdentity {
		t.Fatalf("got %+v, want success at LayerIdentity", result)
	}

	snap := metrics.Snapshot()
	if snap.Layers[0].Attempts != 1 || snap.Layers[0].Successes != 1 {
		t.Fatalf("L1 stats = %+v, want one attempt/success", snap.Layers[0])
	}
	for i := 1; i < 4; i++ {
		if snap.Layers[i].Attempts != 0 {
			t.Fatalf("layer %d was entered after L1 already succeeded", i+1)
		}
	}
}

func TestIndexText_EnhancedNormalizationFoldsPunctuation(t *testing.T) {
	haystack := "Price: ＜ $100 ＆ ＞ $50"
	needle := "< $100 & > $50"
	if idx := IndexText(haystack, needle); idx < 0 {
		t.Fatalf("IndexText(%q, %q) = -1, want a match", haystack, needle)
	}
}

func TestValidate_RejectsOnTextMismatch(t *testing.T) {
	p := elem("p", map[string]string{"id": "b"}, text("Hello World"))
	top := elem("div", nil, p)
	adapter := newFakeDoc(top)

	candidate := Range{StartContainer: p.children[0], StartOffset: 0, EndContainer: p.children[0], EndOffset: 5}
	if _, ok := validate(adapter, candidate, "Goodbye"); ok {
		t.Fatal("validate accepted a range whose text does not match")
	}
}
