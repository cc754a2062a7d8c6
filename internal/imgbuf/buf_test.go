package imgbuf

import "testing"

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Error("New(0, 10): expected error")
	}
	if _, err := New(10, -1); err == nil {
		t.Error("New(10, -1): expected error")
	}
}

func TestSetAndAtRoundTrip(t *testing.T) {
	b, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Set(2, 1, 10, 20, 30, 255)
	r, g, bl, a := b.At(2, 1)
	if r != 30 || g != 20 || bl != 10 || a != 255 {
		t.Errorf("At(2,1) = (%d,%d,%d,%d), want (30,20,10,255)", r, g, bl, a)
	}
}

func TestAtOutOfBoundsReturnsZero(t *testing.T) {
	b, _ := New(2, 2)
	r, g, bl, a := b.At(5, 5)
	if r != 0 || g != 0 || bl != 0 || a != 0 {
		t.Errorf("At out of bounds = (%d,%d,%d,%d), want zero", r, g, bl, a)
	}
}

func TestFillSetsEveryPixel(t *testing.T) {
	b, _ := New(3, 3)
	b.Fill(1, 2, 3, 4)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			r, g, bl, a := b.At(x, y)
			if r != 3 || g != 2 || bl != 1 || a != 4 {
				t.Fatalf("At(%d,%d) = (%d,%d,%d,%d), want (3,2,1,4)", x, y, r, g, bl, a)
			}
		}
	}
}

func TestClearZeroesBuffer(t *testing.T) {
	b, _ := New(2, 2)
	b.Fill(1, 1, 1, 1)
	b.Clear()
	r, g, bl, a := b.At(0, 0)
	if r != 0 || g != 0 || bl != 0 || a != 0 {
		t.Errorf("after Clear, At(0,0) = (%d,%d,%d,%d), want zero", r, g, bl, a)
	}
}

func TestSubImageSharesStorage(t *testing.T) {
	b, _ := New(4, 4)
	sub := b.SubImage(1, 1, 2, 2)
	if sub.Width() != 2 || sub.Height() != 2 {
		t.Fatalf("SubImage dims = %dx%d, want 2x2", sub.Width(), sub.Height())
	}
	sub.Set(0, 0, 9, 9, 9, 9)
	r, g, bl, a := b.At(1, 1)
	if r != 9 || g != 9 || bl != 9 || a != 9 {
		t.Errorf("parent At(1,1) = (%d,%d,%d,%d), want mutation visible through SubImage", r, g, bl, a)
	}
}

func TestSubImageClipsToParentBounds(t *testing.T) {
	b, _ := New(4, 4)
	sub := b.SubImage(3, 3, 10, 10)
	if sub.Width() != 1 || sub.Height() != 1 {
		t.Errorf("SubImage(3,3,10,10) on 4x4 = %dx%d, want 1x1", sub.Width(), sub.Height())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, _ := New(2, 2)
	b.Fill(1, 1, 1, 1)
	c := b.Clone()
	c.Set(0, 0, 255, 255, 255, 255)
	r, _, _, _ := b.At(0, 0)
	if r != 1 {
		t.Errorf("Clone mutation leaked into original: At(0,0).r = %d, want 1", r)
	}
}
