package imgbuf

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// MaxDimension is the largest width or height accepted anywhere pixel
// dimensions are validated.
const MaxDimension = 32767

// DecodePNG decodes an 8- or 16-bit RGB/RGBA/Gray PNG into a premultiplied
// BGRA8 Buffer.
//
// Go's image.Color.RGBA() method always returns alpha-premultiplied
// 16-bit-per-channel values regardless of the source format, so reading
// through the generic image.Image interface and truncating to 8 bits gives
// BGR channel-swap, gray-to-RGB expansion and 16-bit-to-8-bit scaling for
// free, without a per-source-format decode path.
func DecodePNG(r io.Reader) (*Buffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: PNG: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty PNG image", ErrDecode)
	}
	if w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("%w: PNG dimensions %dx%d exceed max %d", ErrDecode, w, h, MaxDimension)
	}

	out, err := New(w, h)
	if err != nil {
		return nil, err
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 {
		decodeFromPremultipliedRGBA(out, rgba, bounds)
		return out, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, a16 := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, byte(b16>>8), byte(g16>>8), byte(r16>>8), byte(a16>>8))
		}
	}
	return out, nil
}

// decodeFromPremultipliedRGBA takes the fast path for the common case: the
// stdlib already decoded into *image.RGBA (premultiplied), so only the
// channel order needs swapping.
func decodeFromPremultipliedRGBA(out *Buffer, src *image.RGBA, bounds image.Rectangle) {
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dstRow := out.RowBytes(y)
		for x := 0; x < w; x++ {
			so, do := x*4, x*4
			dstRow[do], dstRow[do+1], dstRow[do+2], dstRow[do+3] =
				srcRow[so+2], srcRow[so+1], srcRow[so], srcRow[so+3]
		}
	}
}

// EncodePNG writes b as an 8-bit RGBA PNG (default compression, no
// interlacing), swapping our internal BGRA channel order to the RGBA order
// image/png expects. image.RGBA's pixel format is itself alpha-premultiplied,
// matching Buffer's native representation exactly, so no unpremultiply pass
// is needed.
func EncodePNG(w io.Writer, b *Buffer) error {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		srcRow := b.RowBytes(y)
		dstRow := img.Pix[y*img.Stride : y*img.Stride+b.width*4]
		for x := 0; x < b.width; x++ {
			so, do := x*4, x*4
			dstRow[do], dstRow[do+1], dstRow[do+2], dstRow[do+3] =
				srcRow[so+2], srcRow[so+1], srcRow[so], srcRow[so+3]
		}
	}

	enc := &png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("imgbuf: encode PNG: %w", err)
	}
	return nil
}
