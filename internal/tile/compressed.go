package tile

import (
	"fmt"

	"github.com/inkmural/canvasd/internal/imgbuf"
)

// NewFromCompressed zlib-inflates data into a tile-sized BGRA8 buffer and
// returns a Shared tile. It fails if the decompressed size is not exactly
// Bytes.
func NewFromCompressed(data []byte) (*Tile, error) {
	return NewFromCompressedCtx(0, data)
}

// NewFromCompressedCtx is NewFromCompressed, additionally tagging the
// resulting tile with the authoring context id (see NewFromColorCtx).
func NewFromCompressedCtx(ctx uint32, data []byte) (*Tile, error) {
	raw, err := imgbuf.DecodeCompressedBGRA(data, Size, Size)
	if err != nil {
		return nil, fmt.Errorf("tile: decompress: %w", err)
	}

	t := TransientBlank()
	t.ContextID = ctx
	for i := range t.Data {
		off := i * 4
		t.Data[i] = Pixel{B: raw[off], G: raw[off+1], R: raw[off+2], A: raw[off+3]}
	}
	return t.Persist(), nil
}
