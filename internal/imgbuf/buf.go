// Package imgbuf implements the rectangular BGRA8 image buffer used for
// PNG import/export, PUT_IMAGE payloads, and flattened canvas snapshots,
// plus the zlib-compressed wire formats those payloads arrive in.
//
// Buffer always stores premultiplied BGRA8, one tile.Pixel-compatible byte
// layout per pixel. There is deliberately no multi-format support: every
// canvasd buffer is premultiplied BGRA8 from the moment it is decoded.
package imgbuf

import "fmt"

// Buffer is a width×height grid of premultiplied BGRA8 pixels, stored
// row-major with a possibly padded stride (so SubImage can share storage
// with its parent without copying).
type Buffer struct {
	width, height int
	stride        int
	data          []byte
}

// New allocates a zeroed (fully transparent) buffer of the given size.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imgbuf: invalid dimensions %dx%d", width, height)
	}
	stride := width * 4
	return &Buffer{width: width, height: height, stride: stride, data: make([]byte, stride*height)}, nil
}

// FromRaw wraps an existing tightly-packed BGRA8 byte slice without
// copying. len(data) must equal width*height*4.
func FromRaw(width, height int, data []byte) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imgbuf: invalid dimensions %dx%d", width, height)
	}
	stride := width * 4
	if len(data) != stride*height {
		return nil, fmt.Errorf("imgbuf: data length %d does not match %dx%d", len(data), width, height)
	}
	return &Buffer{width: width, height: height, stride: stride, data: data}, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }
func (b *Buffer) Stride() int { return b.stride }
func (b *Buffer) Data() []byte { return b.data }

// RowBytes returns the byte slice for row y (length Width()*4).
func (b *Buffer) RowBytes(y int) []byte {
	start := y * b.stride
	return b.data[start : start+b.width*4]
}

// PixelOffset returns the byte offset of pixel (x,y), or -1 if out of
// bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*4
}

// At returns the pixel at (x,y) as red, green, blue and alpha bytes, in that
// order. Out-of-bounds coordinates return (0,0,0,0).
func (b *Buffer) At(x, y int) (r, g, bl, a byte) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	return b.data[off+2], b.data[off+1], b.data[off], b.data[off+3]
}

// Set writes premultiplied BGRA bytes at (x,y). Out-of-bounds coordinates
// are a no-op.
func (b *Buffer) Set(x, y int, bl, g, r, a byte) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return
	}
	b.data[off] = bl
	b.data[off+1] = g
	b.data[off+2] = r
	b.data[off+3] = a
}

// Fill sets every pixel to the given premultiplied BGRA bytes.
func (b *Buffer) Fill(bl, g, r, a byte) {
	for y := 0; y < b.height; y++ {
		row := b.RowBytes(y)
		for x := 0; x < b.width; x++ {
			off := x * 4
			row[off], row[off+1], row[off+2], row[off+3] = bl, g, r, a
		}
	}
}

// Clear zeroes every pixel (fully transparent).
func (b *Buffer) Clear() {
	for y := 0; y < b.height; y++ {
		clear(b.RowBytes(y))
	}
}

// SubImage returns a Buffer sharing storage with b, covering the
// intersection of (x,y,w,h) with b's bounds. Mutating the result mutates b.
func (b *Buffer) SubImage(x, y, w, h int) *Buffer {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, b.width), min(y+h, b.height)
	if x1 <= x0 || y1 <= y0 {
		return &Buffer{width: 0, height: 0, stride: b.stride}
	}
	start := y0*b.stride + x0*4
	return &Buffer{
		width:  x1 - x0,
		height: y1 - y0,
		stride: b.stride,
		data:   b.data[start:],
	}
}

// Clone returns an independent, tightly-packed copy of b.
func (b *Buffer) Clone() *Buffer {
	out, _ := New(b.width, b.height)
	for y := 0; y < b.height; y++ {
		copy(out.RowBytes(y), b.RowBytes(y))
	}
	return out
}

// ByteSize returns the number of bytes addressable through RowBytes
// (width*4*height, not counting any trailing stride padding on the last row).
func (b *Buffer) ByteSize() int {
	return b.width * 4 * b.height
}
