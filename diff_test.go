package canvasd

import "testing"

// TestDiffSelfIsEmpty checks that diffing a state against itself sets no
// tile bits and leaves the layer-props flag clear.
func TestDiffSelfIsEmpty(t *testing.T) {
	s := newCanvas(t, 128, 128)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Fill: 0xffff0000, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}

	d := Diff(s, s)
	if d.TilesChanged() {
		t.Fatal("diff(S,S) should mark no tiles dirty")
	}
	if d.LayerPropsChangedReset() {
		t.Fatal("diffing a state against itself should leave the layer-props flag false")
	}
}

// TestDiffMarksOnlyChangedTile confirms the dirty set stays minimal for a
// single-tile pixel edit: flattening the two snapshots differs only within
// the tile diff(new,old) marks dirty.
func TestDiffMarksOnlyChangedTile(t *testing.T) {
	s := newCanvas(t, 128, 128)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	old := s

	ns, err := Handle(old, NewDrawContext(), FillRect{LayerID: 1, Width: 10, Height: 10, Color: 0xffff0000})
	if err != nil {
		t.Fatal(err)
	}

	d := Diff(ns, old)
	dirty := map[[2]int]bool{}
	d.EachPos(func(tx, ty int) { dirty[[2]int{tx, ty}] = true })
	if len(dirty) != 1 || !dirty[[2]int{0, 0}] {
		t.Fatalf("dirty tiles = %v, want only (0,0)", dirty)
	}
}

func TestDiffLayerPropsChangeWithoutPixelChange(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	old := s

	ns, err := Handle(old, NewDrawContext(), LayerVisibility{LayerID: 1, Visible: false})
	if err != nil {
		t.Fatal(err)
	}

	d := Diff(ns, old)
	if !d.LayerPropsChangedReset() {
		t.Fatal("expected the layer-props flag after a visibility flip")
	}
}

// TestStateIncrefDecrefRoundTrip checks that a paired incref/decref leaves
// the refcount where it started.
func TestStateIncrefDecrefRoundTrip(t *testing.T) {
	s := NewState().Persist()
	before := s.Refcount()
	s.Incref()
	s.Decref()
	if s.Refcount() != before {
		t.Fatalf("refcount after incref+decref = %d, want %d", s.Refcount(), before)
	}
}

// TestPersistTransientNewRoundTrip checks that persisting an untouched
// transient clone reproduces the source's dimensions and layer count, and
// shares the source's layer content by reference.
func TestPersistTransientNewRoundTrip(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Fill: 0xffff0000, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}

	clone := TransientNew(s).Persist()
	if clone.Width != s.Width || clone.Height != s.Height {
		t.Fatalf("clone dims = %dx%d, want %dx%d", clone.Width, clone.Height, s.Width, s.Height)
	}
	if clone.Layers.Len() != s.Layers.Len() {
		t.Fatalf("clone layer count = %d, want %d", clone.Layers.Len(), s.Layers.Len())
	}
	if clone.Layers.Contents[0] != s.Layers.Contents[0] {
		t.Fatal("an untouched clone should share its layer content by reference")
	}
}
