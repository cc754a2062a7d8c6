package imgbuf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrDecode wraps malformed-payload failures: a bad DEFLATE stream, or one
// that inflates to a size other than the caller's expected size.
var ErrDecode = errors.New("imgbuf: decode error")

// InflateExact zlib-inflates data and requires the result to be exactly
// wantBytes long, the contract every compressed tile/image/mask payload
// shares.
func InflateExact(data []byte, wantBytes int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib header: %v", ErrDecode, err)
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(io.LimitReader(zr, int64(wantBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrDecode, err)
	}
	if len(out) != wantBytes {
		return nil, fmt.Errorf("%w: inflated to %d bytes, want %d", ErrDecode, len(out), wantBytes)
	}
	return out, nil
}

// DecodeCompressedBGRA inflates a zlib-wrapped little-endian BGRA8 payload
// for a width×height region and returns it byte-swapped for the host's
// native order where necessary.
//
// Payloads are little-endian 32-bit BGRA on the wire, so the inflated
// bytes must be swapped on big-endian hosts. swapBGRA32 is a no-op on
// little-endian hosts (the overwhelming majority target) and reverses each
// 4-byte pixel word otherwise.
func DecodeCompressedBGRA(data []byte, width, height int) ([]byte, error) {
	want := 4 * width * height
	raw, err := InflateExact(data, want)
	if err != nil {
		return nil, err
	}
	swapBGRA32(raw)
	return raw, nil
}

// MaskRowStride returns the byte stride of a 1-bit-per-pixel mask row for
// the given width: ceil(width/32) 32-bit words, MSB first.
func MaskRowStride(width int) int {
	return ((width + 31) / 32) * 4
}

// DecodeCompressedMask inflates a zlib-wrapped 1-bit-per-pixel monochrome
// mask (MSB first, 32-bit row padding) and expands it to one coverage byte
// (0 or 255) per pixel, row-major, width*height long.
func DecodeCompressedMask(data []byte, width, height int) ([]byte, error) {
	stride := MaskRowStride(width)
	want := stride * height
	raw, err := InflateExact(data, want)
	if err != nil {
		return nil, err
	}

	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		row := raw[y*stride : y*stride+stride]
		for wordIdx := 0; wordIdx*4 < stride; wordIdx++ {
			word := binary.BigEndian.Uint32(row[wordIdx*4 : wordIdx*4+4])
			base := wordIdx * 32
			for bit := 0; bit < 32; bit++ {
				x := base + bit
				if x >= width {
					break
				}
				// MSB first: bit 31 of the word is pixel x=base.
				if word&(1<<uint(31-bit)) != 0 {
					out[y*width+x] = 255
				}
			}
		}
	}
	return out, nil
}

// isBigEndianHost is computed once via encoding/binary's native-order
// accessor, avoiding unsafe or build-tag-per-GOARCH tricks.
var isBigEndianHost = binary.NativeEndian.Uint16([]byte{0x01, 0x00}) != 0x0001

// swapBGRA32 reverses the byte order of every 4-byte pixel in place when
// running on a big-endian host. On little-endian hosts it is a no-op.
func swapBGRA32(data []byte) {
	if !isBigEndianHost {
		return
	}
	for i := 0; i+4 <= len(data); i += 4 {
		data[i], data[i+1], data[i+2], data[i+3] = data[i+3], data[i+2], data[i+1], data[i]
	}
}
