package canvasd

import (
	"fmt"
	"hash/fnv"

	"github.com/inkmural/canvasd/internal/layer"
	"github.com/inkmural/canvasd/internal/tile"
)

// colorToPixel unpacks a wire color word into a premultiplied tile.Pixel.
// Wire colors are 0xAARRGGBB (0xffff0000 is opaque red).
func colorToPixel(c uint32) tile.Pixel {
	return tile.Pixel{
		B: byte(c),
		G: byte(c >> 8),
		R: byte(c >> 16),
		A: byte(c >> 24),
	}
}

// promoteLayerContent ensures the layer content at index i on a transient
// list is uniquely owned and mutable, cloning it first if it is still
// shared. The same shape as internal/layer's unexported promoteTile, one level up
// the tree (list -> content instead of content -> tile).
func promoteLayerContent(l *layer.List, i int) *layer.Content {
	c := l.Contents[i]
	if c.IsTransient() {
		return c
	}
	clone := layer.TransientNew(c)
	c.Decref()
	l.Contents[i] = clone
	return clone
}

// promoteLayerProps is promoteLayerContent's counterpart for a layer's
// metadata.
func promoteLayerProps(l *layer.List, i int) *layer.Props {
	p := l.Props[i]
	if p.IsTransient() {
		return p
	}
	clone := layer.TransientProps(p)
	p.Decref()
	l.Props[i] = clone
	return clone
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// payloadKey derives a DrawContext cache key for a compressed payload,
// scoped by tag (so an image payload and a mask payload of identical bytes
// never collide) and dimensions. A 64-bit FNV hash of the compressed bytes
// keeps the key small; a payload this function's caller decoded once is
// assumed immutable for the lifetime of the cache entry.
func payloadKey(tag string, data []byte, w, h int) string {
	h64 := fnv.New64a()
	_, _ = h64.Write(data)
	return fmt.Sprintf("%s:%016x:%dx%d", tag, h64.Sum64(), w, h)
}
