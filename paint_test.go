package canvasd

import (
	"errors"
	"testing"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/tile"
	"github.com/inkmural/canvasd/internal/xform"
)

// TestScenarioSingleSolidFill paints a red-filled layer and overpaints its
// top-left tile with opaque green, then checks the flattened quadrants.
func TestScenarioSingleSolidFill(t *testing.T) {
	s := newCanvas(t, 128, 128)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Fill: 0xffff0000, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Handle(s, NewDrawContext(), FillRect{
		LayerID: 1, Mode: byte(blend.Normal),
		X: 0, Y: 0, Width: 64, Height: 64,
		Color: 0xff00ff00,
	})
	if err != nil {
		t.Fatal(err)
	}

	buf, err := Flatten(s, false)
	if err != nil {
		t.Fatal(err)
	}
	green := colorToPixel(0xff00ff00)
	red := colorToPixel(0xffff0000)
	checkPixel := func(x, y int, want tile.Pixel) {
		t.Helper()
		r, g, b, a := buf.At(x, y)
		if r != want.R || g != want.G || b != want.B || a != want.A {
			t.Fatalf("pixel (%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)", x, y, r, g, b, a, want.R, want.G, want.B, want.A)
		}
	}
	checkPixel(10, 10, green)
	checkPixel(70, 10, red)
	checkPixel(10, 70, red)
	checkPixel(70, 70, red)
}

func TestHandleFillRectRejectsUnknownMode(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Handle(s, NewDrawContext(), FillRect{LayerID: 1, Mode: 255, Width: 10, Height: 10}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("err = %v, want ErrInvalidCommand", err)
	}
}

func TestHandleFillRectRejectsReplaceMode(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Handle(s, NewDrawContext(), FillRect{LayerID: 1, Mode: byte(blend.Replace), Width: 10, Height: 10}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("err = %v, want ErrInvalidCommand (Replace is not ValidForBrush)", err)
	}
}

// TestScenarioPutTileRepeat broadcasts one solid tile across a row.
func TestScenarioPutTileRepeat(t *testing.T) {
	s := newCanvas(t, 320, 256)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Handle(s, NewDrawContext(), PutTile{LayerID: 1, X: 0, Y: 0, HasColor: true, Color: 0xff00ff00, Repeat: 3})
	if err != nil {
		t.Fatal(err)
	}

	content := s.Layers.Contents[0]
	want := colorToPixel(0xff00ff00)
	for tx := 0; tx < 4; tx++ {
		tl := content.TileAt(tx, 0)
		if tl == nil || tl.Data[0] != want {
			t.Fatalf("tile (%d,0) = %+v, want filled with %+v", tx, tl, want)
		}
	}
	if tl := content.TileAt(4, 0); tl != nil {
		t.Fatalf("tile (4,0) should remain null, got %+v", tl)
	}
}

func TestHandlePutTileCompressedPayload(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}

	raw := make([]byte, 64*64*4)
	for i := 0; i < 64*64; i++ {
		off := i * 4
		raw[off], raw[off+1], raw[off+2], raw[off+3] = 0, 0, 255, 255 // opaque red, BGRA
	}
	payload := zlibCompress(t, raw)

	s, err = Handle(s, NewDrawContext(), PutTile{LayerID: 1, X: 0, Y: 0, Data: payload})
	if err != nil {
		t.Fatalf("PutTile with compressed payload: %v", err)
	}
	tl := s.Layers.Contents[0].TileAt(0, 0)
	want := colorToPixel(0xffff0000)
	if tl == nil || tl.Data[0] != want {
		t.Fatalf("tile = %+v, want %+v", tl, want)
	}
}

func TestHandlePutImageCompressedPayload(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}

	const w, h = 4, 4
	raw := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		off := i * 4
		raw[off], raw[off+1], raw[off+2], raw[off+3] = 0, 255, 0, 255 // opaque green, BGRA
	}
	payload := zlibCompress(t, raw)

	s, err = Handle(s, NewDrawContext(), PutImage{LayerID: 1, Mode: byte(blend.Normal), X: 2, Y: 2, Width: w, Height: h, Data: payload})
	if err != nil {
		t.Fatalf("PutImage: %v", err)
	}
	buf, err := Flatten(s, false)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := buf.At(2, 2)
	if r != 0 || g != 255 || b != 0 || a != 255 {
		t.Fatalf("pixel = (%d,%d,%d,%d), want opaque green", r, g, b, a)
	}
}

// TestScenarioRegionMoveIdentity moves the full canvas rectangle onto
// itself via an identity quad, which must leave the content unchanged.
func TestScenarioRegionMoveIdentity(t *testing.T) {
	s := newCanvas(t, 128, 128)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Fill: 0xffff0000, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Handle(s, NewDrawContext(), FillRect{LayerID: 1, Mode: byte(blend.Normal), Width: 64, Height: 64, Color: 0xff00ff00})
	if err != nil {
		t.Fatal(err)
	}

	before, err := Flatten(s, false)
	if err != nil {
		t.Fatal(err)
	}

	quad := xform.Quad{{X: 0, Y: 0}, {X: 128, Y: 0}, {X: 128, Y: 128}, {X: 0, Y: 128}}
	s, err = Handle(s, NewDrawContext(), RegionMove{
		LayerID: 1, SrcX: 0, SrcY: 0, SrcWidth: 128, SrcHeight: 128, DstQuad: quad,
	})
	if err != nil {
		t.Fatalf("RegionMove: %v", err)
	}

	after, err := Flatten(s, false)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 128; y += 8 {
		for x := 0; x < 128; x += 8 {
			br, bg, bb, ba := before.At(x, y)
			ar, ag, ab, aa := after.At(x, y)
			if br != ar || bg != ag || bb != ab || ba != aa {
				t.Fatalf("pixel (%d,%d) changed under identity region move: before=(%d,%d,%d,%d) after=(%d,%d,%d,%d)",
					x, y, br, bg, bb, ba, ar, ag, ab, aa)
			}
		}
	}
}

func TestHandleRegionMoveRejectsEmptySelection(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	quad := xform.Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if _, err := Handle(s, NewDrawContext(), RegionMove{LayerID: 1, SrcWidth: 0, SrcHeight: 10, DstQuad: quad}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("err = %v, want ErrInvalidCommand", err)
	}
}
