package xform

import (
	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/imgbuf"
)

// Transform resamples src into the quadrilateral region of dst described by
// quad (both in the same canvas coordinate space; dstOriginX/dstOriginY give
// the canvas-space coordinate of dst's pixel (0,0)), end to end:
//
//  1. build the destination->source matrix (QuadToQuad, perturbed to dodge
//     singularities),
//  2. rasterize quad's outline to an anti-aliased coverage mask bounded to
//     quad's bounding box intersected with dst,
//  3. for every covered destination pixel, inverse-transform to a source
//     coordinate, bilinear-sample src there, and alpha-composite the result
//     into dst at Normal blend, weighted by the rasterized coverage (and, if
//     alphaMask is non-nil, by the source's own per-pixel coverage too).
//
// alphaMask, if non-nil, is a src.Width() x src.Height() coverage buffer (as
// produced by a decoded monochrome brush mask) consulted in source space
// before sampling; pass nil when src has no separate mask.
//
// scratch bounds the per-row sampling buffer so a single oversized transform
// cannot grow memory unboundedly; Transform returns ErrResourceExhausted if
// the destination bounding box is wider than scratch can ever grow to hold.
func Transform(dst *imgbuf.Buffer, dstOriginX, dstOriginY int, src *imgbuf.Buffer, quad Quad, alphaMask []byte, scratch *Scratch) error {
	inv, err := QuadToQuad(float64(src.Width()), float64(src.Height()), quad)
	if err != nil {
		return err
	}

	minX, minY, maxX, maxY := quad.Bounds()
	bx0 := clampInt(int(minX), dstOriginX, dstOriginX+dst.Width())
	by0 := clampInt(int(minY), dstOriginY, dstOriginY+dst.Height())
	bx1 := clampInt(int(maxX)+1, dstOriginX, dstOriginX+dst.Width())
	by1 := clampInt(int(maxY)+1, dstOriginY, dstOriginY+dst.Height())
	if bx1 <= bx0 || by1 <= by0 {
		return nil
	}
	w := bx1 - bx0
	h := by1 - by0

	if _, err := scratch.Row(w * 4); err != nil {
		return err
	}

	mask := CoverageMask(quad, float64(bx0), float64(by0), w, h)

	for y := by0; y < by1; y++ {
		localY := y - by0
		dstY := y - dstOriginY
		for x := bx0; x < bx1; x++ {
			localX := x - bx0
			cov := mask.AlphaAt(localX, localY).A
			if cov == 0 {
				continue
			}
			dstX := x - dstOriginX

			sx, sy := inv.Apply(float64(x)+0.5, float64(y)+0.5)
			sx -= 0.5
			sy -= 0.5

			sr, sg, sb, sa := sampleBilinear(src, sx, sy)
			if alphaMask != nil {
				mcov := sourceMaskCoverage(alphaMask, src.Width(), src.Height(), sx, sy)
				sa = blend256(sa, mcov)
				sr = blend256(sr, mcov)
				sg = blend256(sg, mcov)
				sb = blend256(sb, mcov)
			}

			dr, dg, db, da := dst.At(dstX, dstY)
			r, g, b, a := blend.Composite(blend.Normal, sr, sg, sb, sa, dr, dg, db, da, cov)
			dst.Set(dstX, dstY, b, g, r, a)
		}
	}
	return nil
}

// sourceMaskCoverage nearest-samples a source-space coverage mask (one byte
// per source pixel) at continuous coordinates (sx, sy), clamping to the
// edge.
func sourceMaskCoverage(mask []byte, w, h int, sx, sy float64) byte {
	x := clampInt(int(sx), 0, w-1)
	y := clampInt(int(sy), 0, h-1)
	return mask[y*w+x]
}

// blend256 scales v by weight/255.
func blend256(v, weight byte) byte {
	return byte((uint32(v) * uint32(weight)) / 255)
}
