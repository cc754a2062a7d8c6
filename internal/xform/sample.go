package xform

import (
	"math"

	"github.com/inkmural/canvasd/internal/imgbuf"
)

// sampleBilinear samples src (premultiplied BGRA8) at continuous source
// coordinates (sx, sy), clamping to the edge at [0, W-1]x[0, H-1] (no wrap),
// and returns the interpolated premultiplied BGRA pixel.
//
// Fractional parts are 8-bit sub-pixel distances, and the four corners are
// combined using the 0x00ff00ff two-channel packing trick so the red/blue
// channels interpolate in one integer multiply instead of two.
func sampleBilinear(src *imgbuf.Buffer, sx, sy float64) (r, g, bl, a byte) {
	w, h := src.Width(), src.Height()

	fx := math.Floor(sx)
	fy := math.Floor(sy)
	x0 := int(fx)
	y0 := int(fy)
	// 8-bit sub-pixel weights, 0-255.
	tx := byte((sx - fx) * 256)
	ty := byte((sy - fy) * 256)

	x1 := x0 + 1
	y1 := y0 + 1
	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)
	x1 = clampInt(x1, 0, w-1)
	y1 = clampInt(y1, 0, h-1)

	p00 := packPixel(src.At(x0, y0))
	p10 := packPixel(src.At(x1, y0))
	p01 := packPixel(src.At(x0, y1))
	p11 := packPixel(src.At(x1, y1))

	top := lerpPacked(p00, p10, tx)
	bottom := lerpPacked(p01, p11, tx)
	return unpackPixel(lerpPacked(top, bottom, ty))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// packPixel packs an (r,g,bl,a) pixel into a 32-bit word as byte lanes
// (byte order is arbitrary here, only internal consistency with
// unpackPixel matters).
func packPixel(r, g, bl, a byte) uint32 {
	return uint32(bl) | uint32(g)<<8 | uint32(r)<<16 | uint32(a)<<24
}

func unpackPixel(v uint32) (r, g, bl, a byte) {
	return byte(v >> 16), byte(v >> 8), byte(v), byte(v >> 24)
}

// lerpPacked interpolates two packed BGRA words by weight t (0-255, t=255
// is fully b) using the classic two-channel-at-a-time trick: the B and R
// lanes (bits 0-7 and 16-23) are masked together into one uint32 so a single
// multiply/shift interpolates both, and likewise for G and A (bits 8-15 and
// 24-31). Weights always sum to 256, so each lane's weighted sum tops out at
// 255*256 = 0xff00 and never carries into the neighboring lane.
func lerpPacked(a, b uint32, t byte) uint32 {
	if t == 0 {
		return a
	}
	if t == 255 {
		return b
	}
	const loMask = 0x00ff00ff
	const hiMask = 0xff00ff00

	aLo := a & loMask
	bLo := b & loMask
	aHi := (a & hiMask) >> 8
	bHi := (b & hiMask) >> 8

	w1 := uint32(t)
	w0 := 256 - w1
	lo := ((aLo*w0 + bLo*w1) >> 8) & loMask
	hi := ((aHi*w0 + bHi*w1) >> 8) & loMask

	return lo | (hi << 8)
}
