package tile

import "github.com/inkmural/canvasd/internal/blend"

// BlendInto composites src over dst (both Size×Size) under mode, scaling
// src's contribution by a uniform opacity (0-255). dst must be transient;
// src may be nil, meaning "fully transparent". For most modes a transparent
// source leaves the destination unchanged, but not all (REPLACE with a null
// source still clears the destination), so a nil src is composited as
// all-zero pixels whenever blend.NoopOnNullSource says the mode needs it.
//
// Normal mode is the overwhelmingly common case (plain layer merge, most
// brush strokes), so it takes the blendNormalBatch fast path instead of a
// per-pixel blend.Composite call.
func BlendInto(dst *Tile, src *Tile, opacity byte, mode blend.Mode) {
	if opacity == 0 {
		return
	}
	if src == nil {
		if blend.NoopOnNullSource(mode) {
			return
		}
		for i := range dst.Data {
			d := dst.Data[i]
			r, g, bl, a := blend.Composite(mode, 0, 0, 0, 0, d.B, d.G, d.R, d.A, opacity)
			dst.Data[i] = Pixel{B: r, G: g, R: bl, A: a}
		}
		return
	}
	if mode == blend.Normal {
		blendNormalBatch(dst, src, opacity)
		return
	}
	for i := range dst.Data {
		s := src.Data[i]
		d := dst.Data[i]
		r, g, bl, a := blend.Composite(mode, s.B, s.G, s.R, s.A, d.B, d.G, d.R, d.A, opacity)
		dst.Data[i] = Pixel{B: r, G: g, R: bl, A: a}
	}
}

// BlendIntoMasked is BlendInto with a per-pixel coverage mask (Size×Size
// bytes, 0-255) instead of a single uniform opacity.
func BlendIntoMasked(dst *Tile, src *Tile, mask []byte, mode blend.Mode) {
	if src == nil {
		return
	}
	for i := range dst.Data {
		cov := mask[i]
		if cov == 0 {
			continue
		}
		s := src.Data[i]
		d := dst.Data[i]
		r, g, bl, a := blend.Composite(mode, s.B, s.G, s.R, s.A, d.B, d.G, d.R, d.A, cov)
		dst.Data[i] = Pixel{B: r, G: g, R: bl, A: a}
	}
}

// FillRect composites a solid color into the rectangle [x0,y0)-[x1,y1)
// (tile-local pixel coordinates, clamped to the tile bounds) under mode.
// dst must be transient.
func FillRect(dst *Tile, x0, y0, x1, y1 int, c Pixel, mode blend.Mode) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, Size), min(y1, Size)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for y := y0; y < y1; y++ {
		row := y * Size
		for x := x0; x < x1; x++ {
			d := dst.Data[row+x]
			r, g, bl, a := blend.Composite(mode, c.B, c.G, c.R, c.A, d.B, d.G, d.R, d.A, 255)
			dst.Data[row+x] = Pixel{B: r, G: g, R: bl, A: a}
		}
	}
}
