package layer

import (
	"testing"

	"github.com/inkmural/canvasd/internal/tile"
)

func TestResizeExpandKeepsExistingFullTilesShared(t *testing.T) {
	c := NewContent(64, 64)
	sh := tile.NewFromColor(tile.Pixel{A: 255})
	c.SetTile(0, 0, sh)
	c.Persist()

	// Expand right by 64px: the existing tile is still at grid (0,0) and
	// its region is untouched, so it should be shared rather than resampled.
	c.Resize(0, 64, 0, 0)

	if c.Width != 128 || c.Height != 64 {
		t.Fatalf("after Resize dims = %dx%d, want 128x64", c.Width, c.Height)
	}
	if c.TileAt(0, 0) != sh {
		t.Error("unaffected tile should be shared (pointer-equal), not resampled")
	}
	if c.TileAt(1, 0) != nil {
		t.Error("newly exposed tile should default to null")
	}
}

func TestResizeShrinkDropsOutOfBoundsTiles(t *testing.T) {
	c := NewContent(128, 64)
	c.SetTile(1, 0, tile.NewFromColor(tile.Pixel{A: 255}))
	c.Persist()

	c.Resize(0, -64, 0, 0) // drop the right half

	if c.Width != 64 {
		t.Fatalf("Width after shrink = %d, want 64", c.Width)
	}
	if c.TilesX() != 1 {
		t.Errorf("TilesX() after shrink = %d, want 1", c.TilesX())
	}
}

func TestResizeLeftInsetShiftsContent(t *testing.T) {
	c := NewContent(64, 64)
	tl := tile.TransientBlank()
	tl.Data[0] = tile.Pixel{R: 9, A: 255}
	c.SetTile(0, 0, tl.Persist())
	c.Persist()

	// Expand left by 64px: old pixel (0,0) should now be at new pixel (64,0).
	c.Resize(0, 0, 0, 64)

	if c.Width != 128 {
		t.Fatalf("Width after left expand = %d, want 128", c.Width)
	}
	newTile := c.TileAt(1, 0)
	if newTile == nil || newTile.Data[0].R != 9 {
		t.Error("content should have shifted right by the left inset amount")
	}
}

func TestResizeToZeroEmptiesGrid(t *testing.T) {
	c := NewContent(64, 64)
	c.Persist()
	c.Resize(0, -64, 0, 0)
	if c.Width != 0 || len(c.Tiles) != 0 {
		t.Errorf("after shrinking to 0 width, Width=%d len(Tiles)=%d, want 0,0", c.Width, len(c.Tiles))
	}
}
