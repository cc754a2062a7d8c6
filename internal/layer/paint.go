package layer

import (
	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/imgbuf"
	"github.com/inkmural/canvasd/internal/tile"
)

// FillRect fills the intersection of [l,t)-[r,b) (layer-local pixel
// coordinates) with color under mode, on a transient c. Coordinates are
// clamped to the layer bounds first; a zero-area result after clipping is a
// silent no-op (the FILL_RECT handler rejects that case itself, since an
// empty fill is sometimes a legitimate no-op elsewhere).
func (c *Content) FillRect(l, t, r, b int, color tile.Pixel, mode blend.Mode) {
	l, t = max(l, 0), max(t, 0)
	r, b = min(r, c.Width), min(b, c.Height)
	if l >= r || t >= b {
		return
	}

	tx0, ty0 := l/tile.Size, t/tile.Size
	tx1, ty1 := (r-1)/tile.Size, (b-1)/tile.Size
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			i := c.Index(tx, ty)
			if i < 0 {
				continue
			}
			localL := max(l-tx*tile.Size, 0)
			localT := max(t-ty*tile.Size, 0)
			localR := min(r-tx*tile.Size, tile.Size)
			localB := min(b-ty*tile.Size, tile.Size)

			dstTile := promoteTile(c, i)
			tile.FillRect(dstTile, localL, localT, localR, localB, color, mode)
		}
	}
}

// PutImage blits src (premultiplied BGRA8) at layer-local top-left (x,y)
// under mode, clipping to the layer bounds. Coverage outside src's own
// bounds (if the image hangs off an edge not clipped by the layer) is
// skipped per pixel.
func (c *Content) PutImage(x, y int, src *imgbuf.Buffer, mode blend.Mode) {
	l, t := max(x, 0), max(y, 0)
	r, b := min(x+src.Width(), c.Width), min(y+src.Height(), c.Height)
	if l >= r || t >= b {
		return
	}

	tx0, ty0 := l/tile.Size, t/tile.Size
	tx1, ty1 := (r-1)/tile.Size, (b-1)/tile.Size
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			i := c.Index(tx, ty)
			if i < 0 {
				continue
			}
			originX, originY := tx*tile.Size, ty*tile.Size
			localL := max(l-originX, 0)
			localT := max(t-originY, 0)
			localR := min(r-originX, tile.Size)
			localB := min(b-originY, tile.Size)

			dstTile := promoteTile(c, i)
			for py := localT; py < localB; py++ {
				srcY := originY + py - y
				for px := localL; px < localR; px++ {
					srcX := originX + px - x
					// src.At returns channels in (actual-R, actual-G,
					// actual-B, actual-A) order; re-pair them as (B,G,R,A)
					// to match dstTile.Data's field order before compositing.
					sr, sg, sb, sa := src.At(srcX, srcY)
					d := dstTile.Data[py*tile.Size+px]
					rb, rg, rr, ra := blend.Composite(mode, sb, sg, sr, sa, d.B, d.G, d.R, d.A, 255)
					dstTile.Data[py*tile.Size+px] = tile.Pixel{B: rb, G: rg, R: rr, A: ra}
				}
			}
		}
	}
}

// PutTile sets the tile at (tx,ty) to t, then broadcasts t to repeat
// further tiles in row-major grid order (wrapping row to row). Each
// broadcast target shares the same tile reference (increfed once per
// cell).
func (c *Content) PutTile(tx, ty int, t *tile.Tile, repeat int) {
	i := c.Index(tx, ty)
	if i < 0 {
		return
	}
	c.SetTile(tx, ty, t)
	for n := 1; n <= repeat; n++ {
		j := i + n
		if j >= len(c.Tiles) {
			break
		}
		t.Incref()
		c.Tiles[j].Decref()
		c.Tiles[j] = t
	}
}

// BrushStampApply composites a pre-rasterized circular brush stamp (an
// anti-aliased coverage mask the same size as the stamp's bounding box, one
// byte per pixel) at layer-local top-left (x,y), filling covered pixels
// with color under mode.
func (c *Content) BrushStampApply(x, y int, coverage []byte, stampW, stampH int, color tile.Pixel, mode blend.Mode) {
	l, t := max(x, 0), max(y, 0)
	r, b := min(x+stampW, c.Width), min(y+stampH, c.Height)
	if l >= r || t >= b {
		return
	}

	tx0, ty0 := l/tile.Size, t/tile.Size
	tx1, ty1 := (r-1)/tile.Size, (b-1)/tile.Size
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			i := c.Index(tx, ty)
			if i < 0 {
				continue
			}
			originX, originY := tx*tile.Size, ty*tile.Size
			localL := max(l-originX, 0)
			localT := max(t-originY, 0)
			localR := min(r-originX, tile.Size)
			localB := min(b-originY, tile.Size)

			dstTile := promoteTile(c, i)
			for py := localT; py < localB; py++ {
				stampY := originY + py - y
				for px := localL; px < localR; px++ {
					stampX := originX + px - x
					cov := coverage[stampY*stampW+stampX]
					if cov == 0 {
						continue
					}
					d := dstTile.Data[py*tile.Size+px]
					rb, rg, rr, ra := blend.Composite(mode, color.B, color.G, color.R, color.A, d.B, d.G, d.R, d.A, cov)
					dstTile.Data[py*tile.Size+px] = tile.Pixel{B: rb, G: rg, R: rr, A: ra}
				}
			}
		}
	}
}
