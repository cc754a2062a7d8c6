package layer

import "github.com/inkmural/canvasd/internal/tile"

// Resize expands or contracts a transient c by the signed insets
// (top,right,bottom,left): new tiles
// default to null, tiles entirely outside the new region are dropped, and
// tiles with only partial coverage after the resize are re-sampled at tile
// granularity (the overlapping portion of their old pixel content is
// copied into the corresponding region of the new tile; pixels with no
// prior coverage stay null/transparent within that tile).
func (c *Content) Resize(top, right, bottom, left int) {
	newWidth := c.Width + left + right
	newHeight := c.Height + top + bottom
	if newWidth < 0 {
		newWidth = 0
	}
	if newHeight < 0 {
		newHeight = 0
	}

	// offsetX/offsetY translate a coordinate in the new canvas into the old
	// one: new content's origin sits `left` pixels before the old origin.
	offsetX := -left
	offsetY := -top

	oldTiles := c.Tiles
	oldTilesX, oldTilesY := c.tilesX, c.tilesY
	oldWidth, oldHeight := c.Width, c.Height

	newTilesX, newTilesY := TilesX(newWidth), TilesY(newHeight)
	newTiles := make([]*tile.Tile, newTilesX*newTilesY)

	oldTileAt := func(tx, ty int) *tile.Tile {
		if tx < 0 || tx >= oldTilesX || ty < 0 || ty >= oldTilesY {
			return nil
		}
		return oldTiles[ty*oldTilesX+tx]
	}

	for ty := 0; ty < newTilesY; ty++ {
		for tx := 0; tx < newTilesX; tx++ {
			// Pixel rect of this new tile, in new-canvas coordinates.
			nx0, ny0 := tx*tile.Size, ty*tile.Size
			nx1 := min(nx0+tile.Size, newWidth)
			ny1 := min(ny0+tile.Size, newHeight)

			// Corresponding rect in old-canvas coordinates.
			ox0, oy0 := nx0+offsetX, ny0+offsetY
			ox1, oy1 := nx1+offsetX, ny1+offsetY

			fullTile := nx1-nx0 == tile.Size && ny1-ny0 == tile.Size
			aligned := ox0%tile.Size == 0 && oy0%tile.Size == 0
			if fullTile && aligned && ox0 >= 0 && oy0 >= 0 && ox1 <= oldWidth && oy1 <= oldHeight {
				// Fast path: this new tile maps onto exactly one old tile
				// at the same tile-local offset (pure translation by whole
				// tiles) — share the reference instead of resampling.
				if src := oldTileAt(ox0/tile.Size, oy0/tile.Size); src != nil {
					src.Incref()
					newTiles[ty*newTilesX+tx] = src
					continue
				}
			}

			newTiles[ty*newTilesX+tx] = resampleTile(oldTileAt, oldWidth, oldHeight, ox0, oy0, nx1-nx0, ny1-ny0)
		}
	}

	for _, t := range oldTiles {
		t.Decref()
	}

	c.Width, c.Height = newWidth, newHeight
	c.tilesX, c.tilesY = newTilesX, newTilesY
	c.Tiles = newTiles
}

// resampleTile builds a new transient tile covering a w x h pixel region of
// the old canvas starting at (ox0, oy0) (old-canvas coordinates, possibly
// negative or beyond the old bounds), copying whatever old pixel content
// overlaps it and leaving the rest null/transparent. Returns nil if the
// region has no overlap with any old tile at all (the tile stays null).
func resampleTile(oldTileAt func(tx, ty int) *tile.Tile, oldWidth, oldHeight, ox0, oy0, w, h int) *tile.Tile {
	if w <= 0 || h <= 0 {
		return nil
	}
	clipL, clipT := max(ox0, 0), max(oy0, 0)
	clipR, clipB := min(ox0+w, oldWidth), min(oy0+h, oldHeight)
	if clipL >= clipR || clipT >= clipB {
		return nil
	}

	out := tile.TransientBlank()
	for y := clipT; y < clipB; y++ {
		ty, localOY := y/tile.Size, y%tile.Size
		destY := y - oy0
		for x := clipL; x < clipR; x++ {
			tx, localOX := x/tile.Size, x%tile.Size
			src := oldTileAt(tx, ty)
			if src == nil {
				continue
			}
			destX := x - ox0
			out.Data[destY*tile.Size+destX] = src.Data[localOY*tile.Size+localOX]
		}
	}
	return out
}
