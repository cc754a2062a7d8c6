package tile

import "testing"

func TestTransientNewFromNilIsBlank(t *testing.T) {
	tr := TransientNew(nil)
	if !tr.IsTransient() {
		t.Error("TransientNew(nil) should be transient")
	}
	for _, p := range tr.Data {
		if p != (Pixel{}) {
			t.Fatalf("TransientNew(nil) pixel = %+v, want zero", p)
		}
	}
}

func TestTransientNewClonesData(t *testing.T) {
	src := NewFromColor(Pixel{B: 1, G: 2, R: 3, A: 4})
	clone := TransientNew(src)
	if !clone.IsTransient() {
		t.Error("clone should be transient")
	}
	if clone.Data[0] != (Pixel{B: 1, G: 2, R: 3, A: 4}) {
		t.Errorf("clone.Data[0] = %+v, want copied pixel", clone.Data[0])
	}
	clone.Data[0] = Pixel{A: 255}
	if src.Data[0] == clone.Data[0] {
		t.Error("mutating clone should not affect source")
	}
}

func TestPersistClearsTransientFlag(t *testing.T) {
	tr := TransientBlank()
	if !tr.IsTransient() {
		t.Fatal("expected transient before Persist")
	}
	p := tr.Persist()
	if p.IsTransient() {
		t.Error("expected non-transient after Persist")
	}
	if p.Persist() != p {
		t.Error("Persist on an already-persistent tile should be a no-op returning itself")
	}
}

func TestRefcountIncrefDecref(t *testing.T) {
	tr := TransientBlank()
	sh := tr.Persist()
	if sh.Refcount() != 1 {
		t.Fatalf("fresh tile refcount = %d, want 1", sh.Refcount())
	}
	sh.Incref()
	sh.Incref()
	if sh.Refcount() != 3 {
		t.Fatalf("refcount after 2 increfs = %d, want 3", sh.Refcount())
	}
	sh.Decref()
	sh.Decref()
	if sh.Refcount() != 1 {
		t.Fatalf("refcount after 2 decrefs = %d, want 1", sh.Refcount())
	}
}

func TestNilTileIncrefDecrefIsNoOp(t *testing.T) {
	var nilTile *Tile
	nilTile.Incref()
	nilTile.Decref()
	if nilTile.Refcount() != 0 {
		t.Errorf("nil tile refcount = %d, want 0", nilTile.Refcount())
	}
}

func TestEqualIsPointerIdentity(t *testing.T) {
	a := NewFromColor(Pixel{A: 255})
	b := NewFromColor(Pixel{A: 255})
	if Equal(a, b) {
		t.Error("distinct tiles with identical pixels should not be Equal")
	}
	if !Equal(a, a) {
		t.Error("a tile should Equal itself")
	}
	if !Equal(nil, nil) {
		t.Error("nil should Equal nil")
	}
}
