package layer

import (
	"testing"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/tile"
)

func TestMergeNullSourceTileSkippedUnderNormal(t *testing.T) {
	dst := NewContent(64, 64)
	existing := tile.NewFromColor(tile.Pixel{R: 10, A: 255})
	dst.SetTile(0, 0, existing)
	dst.Persist()

	src := NewContent(64, 64) // all-null tiles
	Merge(dst, src, 255, blend.Normal)

	if dst.TileAt(0, 0) != existing {
		t.Error("merging a null source tile under Normal should leave the destination tile reference untouched")
	}
}

func TestMergeNullSourceUnderReplaceClearsDest(t *testing.T) {
	dst := NewContent(64, 64)
	existing := tile.NewFromColor(tile.Pixel{R: 10, A: 255})
	dst.SetTile(0, 0, existing)
	dst.Persist()

	src := NewContent(64, 64)
	Merge(dst, src, 255, blend.Replace)

	got := dst.TileAt(0, 0)
	if got == existing {
		t.Fatal("Replace with a null source should still touch the destination tile")
	}
	if got.Data[0].A != 0 {
		t.Errorf("Replace with a null source should clear the destination, got alpha %d", got.Data[0].A)
	}
}

func TestMergeCompositesNonNullTiles(t *testing.T) {
	dst := NewContent(64, 64)
	dstTile := tile.NewFromColor(tile.Pixel{A: 0})
	dst.SetTile(0, 0, dstTile)
	dst.Persist()

	src := NewContent(64, 64)
	srcTile := tile.NewFromColor(tile.Pixel{R: 200, A: 255})
	src.SetTile(0, 0, srcTile)
	src.Persist()

	Merge(dst, src, 255, blend.Normal)

	got := dst.TileAt(0, 0).Data[0]
	if got.R != 200 || got.A != 255 {
		t.Errorf("merged pixel = %+v, want {R:200 A:255}", got)
	}
}

func TestMergeZeroOpacityIsNoOp(t *testing.T) {
	dst := NewContent(64, 64)
	existing := tile.NewFromColor(tile.Pixel{R: 1, A: 255})
	dst.SetTile(0, 0, existing)
	dst.Persist()

	src := NewContent(64, 64)
	src.SetTile(0, 0, tile.NewFromColor(tile.Pixel{R: 200, A: 255}))
	src.Persist()

	Merge(dst, src, 0, blend.Normal)
	if dst.TileAt(0, 0) != existing {
		t.Error("zero-opacity merge should leave the destination untouched")
	}
}
