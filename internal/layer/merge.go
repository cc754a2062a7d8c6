package layer

import (
	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/tile"
)

// Merge composites src over a transient dst under mode at a uniform
// opacity, tile by tile. A destination tile is only promoted to transient
// (cloned, or mutated in place if already uniquely owned) when the
// corresponding source tile actually has something to contribute —
// blend.NoopOnNullSource skips the whole tile when src is null and the mode
// is guaranteed to leave an unchanged destination.
func Merge(dst *Content, src *Content, opacity byte, mode blend.Mode) {
	if src == nil || opacity == 0 {
		return
	}
	for i := range dst.Tiles {
		var srcTile *tile.Tile
		if i < len(src.Tiles) {
			srcTile = src.Tiles[i]
		}
		if srcTile == nil && blend.NoopOnNullSource(mode) {
			continue
		}
		dstTile := promoteTile(dst, i)
		tile.BlendInto(dstTile, srcTile, opacity, mode)
	}
}

// promoteTile ensures Tiles[i] is a uniquely-owned transient tile ready for
// in-place mutation, cloning it first if it is still shared, and returns it.
func promoteTile(c *Content, i int) *tile.Tile {
	t := c.Tiles[i]
	if t.IsTransient() {
		return t
	}
	clone := tile.TransientNew(t)
	t.Decref()
	c.Tiles[i] = clone
	return clone
}
