package canvasd

import (
	"testing"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/layer"
)

func TestFlattenRejectsZeroSizedCanvas(t *testing.T) {
	s := NewState().Persist()
	if _, err := Flatten(s, false); err == nil {
		t.Fatal("expected an error flattening a 0x0 canvas")
	}
}

func TestFlattenIncludesBackground(t *testing.T) {
	s := newCanvas(t, 64, 64)
	s, err := Handle(s, NewDrawContext(), CanvasBackground{HasColor: true, Color: 0xff0000ff})
	if err != nil {
		t.Fatal(err)
	}
	buf, err := Flatten(s, true)
	if err != nil {
		t.Fatal(err)
	}
	want := colorToPixel(0xff0000ff)
	if r, g, b, a := buf.At(5, 5); r != want.R || g != want.G || b != want.B || a != want.A {
		t.Fatalf("pixel = (%d,%d,%d,%d), want background color", r, g, b, a)
	}

	bufNoBG, err := Flatten(s, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := bufNoBG.At(5, 5); a != 0 {
		t.Fatal("excluding background should leave the canvas transparent with no layers")
	}
}

func TestFlattenTileMatchesFlatten(t *testing.T) {
	s := newCanvas(t, 128, 128)
	s, err := Handle(s, NewDrawContext(), LayerCreate{LayerID: 1, Fill: 0xffff0000, Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Handle(s, NewDrawContext(), FillRect{LayerID: 1, Mode: byte(blend.Normal), Width: 64, Height: 64, Color: 0xff00ff00})
	if err != nil {
		t.Fatal(err)
	}

	full, err := Flatten(s, false)
	if err != nil {
		t.Fatal(err)
	}
	tl := FlattenTile(s, 0, 0)
	if tl == nil {
		t.Fatal("expected a non-nil tile")
	}
	r, g, b, a := full.At(10, 10)
	p := tl.Data[10*64+10]
	if p.R != r || p.G != g || p.B != b || p.A != a {
		t.Fatalf("FlattenTile pixel = %+v, want (%d,%d,%d,%d)", p, r, g, b, a)
	}
}

func TestRenderWritesOnlyDirtyTiles(t *testing.T) {
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

	target := layer.NewContent(ns.Width, ns.Height)
	d := Diff(ns, old)
	Render(ns, target, d)

	if target.TileAt(0, 0) == nil {
		t.Fatal("dirty tile (0,0) should have been rendered")
	}
	if target.TileAt(1, 1) != nil {
		t.Fatal("untouched tile (1,1) should remain null")
	}
}
