package xform

import (
	"image"

	"golang.org/x/image/vector"
)

// CoverageMask rasterizes the closed quad outline q into a w×h anti-aliased
// coverage mask (one byte per pixel, 0-255), offset so that q's bounding box
// origin maps to mask pixel (0,0).
//
// x/image/vector.Rasterizer only exposes its coverage accumulator through
// draw.Draw — there is no direct "give me the spans" API — so the standard
// trick is to Draw an opaque, fully-covering source through the rasterizer's
// path into a fresh *image.Alpha; the resulting alpha channel at each pixel
// is exactly the path's coverage there. A closed quadrilateral is the only
// shape canvasd ever rasterizes, so the general rasterizer is not wrapped
// any further.
func CoverageMask(q Quad, originX, originY float64, w, h int) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	toLocal := func(p Point) (float32, float32) {
		return float32(p.X - originX), float32(p.Y - originY)
	}

	x0, y0 := toLocal(q[0])
	r.MoveTo(x0, y0)
	x1, y1 := toLocal(q[1])
	r.LineTo(x1, y1)
	x2, y2 := toLocal(q[2])
	r.LineTo(x2, y2)
	x3, y3 := toLocal(q[3])
	r.LineTo(x3, y3)
	r.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
