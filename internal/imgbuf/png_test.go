package imgbuf

import (
	"bytes"
	"testing"
)

func TestPNGRoundTripExact(t *testing.T) {
	b, _ := New(5, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			b.Set(x, y, byte(x*10), byte(y*20), byte(x+y), 255)
		}
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, b); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	decoded, err := DecodePNG(&buf)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	if decoded.Width() != 5 || decoded.Height() != 3 {
		t.Fatalf("decoded dims = %dx%d, want 5x3", decoded.Width(), decoded.Height())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			wantR, wantG, wantB, wantA := b.At(x, y)
			gotR, gotG, gotB, gotA := decoded.At(x, y)
			if wantR != gotR || wantG != gotG || wantB != gotB || wantA != gotA {
				t.Fatalf("pixel (%d,%d): got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					x, y, gotR, gotG, gotB, gotA, wantR, wantG, wantB, wantA)
			}
		}
	}
}

func TestDecodePNGRejectsGarbage(t *testing.T) {
	if _, err := DecodePNG(bytes.NewReader([]byte("not a png"))); err == nil {
		t.Error("expected error decoding garbage")
	}
}
