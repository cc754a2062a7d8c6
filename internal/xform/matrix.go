// Package xform implements the quad-to-quad projective image transform:
// computing the 3x3 matrix that maps a source rectangle onto an arbitrary
// destination quadrilateral, rasterizing the destination outline to an
// anti-aliased coverage mask, and resampling the source bilinearly into
// each covered destination pixel.
//
// The matrix is a full 3x3 projective transform rather than a 2x3 affine
// one: REGION_MOVE's destination quad is not guaranteed to be a
// parallelogram, so an affine-only model cannot represent it.
package xform

import (
	"errors"
	"fmt"
)

// ErrDegenerateTransform is returned when a quad-to-quad mapping has no
// finite inverse (the quad is self-intersecting, has duplicate/collinear
// vertices, or collapses to zero area).
var ErrDegenerateTransform = errors.New("xform: degenerate transform")

// Matrix is a row-major 3x3 projective transform:
//
//	| m00 m01 m02 |   | x |
//	| m10 m11 m12 | * | y |
//	| m20 m21 m22 |   | 1 |
//
// Apply performs the perspective divide by the resulting w (= m20*x +
// m21*y + m22).
type Matrix struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// Identity is the 3x3 identity matrix.
var Identity = Matrix{
	M00: 1, M11: 1, M22: 1,
}

// Apply maps (x,y) through m, performing the perspective divide.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	w := m.M20*x + m.M21*y + m.M22
	px := m.M00*x + m.M01*y + m.M02
	py := m.M10*x + m.M11*y + m.M12
	if w == 0 {
		return px, py
	}
	return px / w, py / w
}

// Mul returns m applied after other (m * other, matching standard matrix
// composition order).
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		M00: m.M00*o.M00 + m.M01*o.M10 + m.M02*o.M20,
		M01: m.M00*o.M01 + m.M01*o.M11 + m.M02*o.M21,
		M02: m.M00*o.M02 + m.M01*o.M12 + m.M02*o.M22,
		M10: m.M10*o.M00 + m.M11*o.M10 + m.M12*o.M20,
		M11: m.M10*o.M01 + m.M11*o.M11 + m.M12*o.M21,
		M12: m.M10*o.M02 + m.M11*o.M12 + m.M12*o.M22,
		M20: m.M20*o.M00 + m.M21*o.M10 + m.M22*o.M20,
		M21: m.M20*o.M01 + m.M21*o.M11 + m.M22*o.M21,
		M22: m.M20*o.M02 + m.M21*o.M12 + m.M22*o.M22,
	}
}

// det returns the determinant of m.
func (m Matrix) det() float64 {
	return m.M00*(m.M11*m.M22-m.M12*m.M21) -
		m.M01*(m.M10*m.M22-m.M12*m.M20) +
		m.M02*(m.M10*m.M21-m.M11*m.M20)
}

// invertPerturbed inverts m after adding a tiny perturbation delta to the
// perspective row (M20, M21, M22): this nudges exact singularities (e.g.
// an axis-aligned, purely affine quad, whose perspective row is naturally
// (0,0,1)) off the knife edge without perceptibly changing the mapping.
func (m Matrix) invertPerturbed(delta float64) (Matrix, error) {
	m.M20 += delta
	m.M21 += delta
	m.M22 += delta

	d := m.det()
	if d == 0 {
		return Matrix{}, ErrDegenerateTransform
	}
	invD := 1 / d

	return Matrix{
		M00: (m.M11*m.M22 - m.M12*m.M21) * invD,
		M01: (m.M02*m.M21 - m.M01*m.M22) * invD,
		M02: (m.M01*m.M12 - m.M02*m.M11) * invD,
		M10: (m.M12*m.M20 - m.M10*m.M22) * invD,
		M11: (m.M00*m.M22 - m.M02*m.M20) * invD,
		M12: (m.M02*m.M10 - m.M00*m.M12) * invD,
		M20: (m.M10*m.M21 - m.M11*m.M20) * invD,
		M21: (m.M01*m.M20 - m.M00*m.M21) * invD,
		M22: (m.M00*m.M11 - m.M01*m.M10) * invD,
	}, nil
}

// perturbDelta is the nudge added to the perspective row before inversion.
const perturbDelta = 1.0 / 65536.0

// Point is a 2D coordinate in destination (or source) pixel space.
type Point struct{ X, Y float64 }

// Quad is a destination quadrilateral, vertices in order TL, TR, BR, BL.
type Quad [4]Point

// unitSquareToQuad computes the projective matrix mapping the unit square
// (0,0)-(1,0)-(1,1)-(0,1) onto q, using the standard Heckbert/Paeth
// construction: three of the unit square's corners map affinely, and the
// fourth corner's deviation from that affine image fixes the perspective
// row.
func unitSquareToQuad(q Quad) (Matrix, error) {
	x0, y0 := q[0].X, q[0].Y
	x1, y1 := q[1].X, q[1].Y
	x2, y2 := q[2].X, q[2].Y
	x3, y3 := q[3].X, q[3].Y

	dx1 := x1 - x2
	dy1 := y1 - y2
	dx2 := x3 - x2
	dy2 := y3 - y2
	sx := x0 - x1 + x2 - x3
	sy := y0 - y1 + y2 - y3

	denom := dx1*dy2 - dx2*dy1
	if denom == 0 {
		return Matrix{}, fmt.Errorf("%w: collinear quad edges", ErrDegenerateTransform)
	}

	g := (sx*dy2 - sy*dx2) / denom
	h := (dx1*sy - dy1*sx) / denom

	a := x1 - x0 + g*x1
	b := x3 - x0 + h*x3
	c := x0
	d := y1 - y0 + g*y1
	e := y3 - y0 + h*y3
	f := y0

	return Matrix{
		M00: a, M01: b, M02: c,
		M10: d, M11: e, M12: f,
		M20: g, M21: h, M22: 1,
	}, nil
}

// QuadToQuad computes the matrix mapping the source rectangle
// [0,srcW]×[0,srcH] onto the destination quad dst. It returns the inverse
// (destination → source) transform used for sampling, perturbed to avoid
// exact singularities.
func QuadToQuad(srcW, srcH float64, dst Quad) (Matrix, error) {
	if srcW <= 0 || srcH <= 0 {
		return Matrix{}, fmt.Errorf("%w: empty source rect", ErrDegenerateTransform)
	}

	toDst, err := unitSquareToQuad(dst)
	if err != nil {
		return Matrix{}, err
	}

	// Compose with the unit-square normalization of the source rect so
	// toDst maps full source pixel coordinates directly to destination
	// pixel coordinates.
	normalize := Matrix{M00: 1 / srcW, M11: 1 / srcH, M22: 1}
	full := toDst.Mul(normalize)

	inv, err := full.invertPerturbed(perturbDelta)
	if err != nil {
		return Matrix{}, err
	}
	return inv, nil
}

// Bounds returns the axis-aligned bounding box of q, as (minX, minY, maxX,
// maxY).
func (q Quad) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = q[0].X, q[0].Y
	maxX, maxY = q[0].X, q[0].Y
	for _, p := range q[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return
}
