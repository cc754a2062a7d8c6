// Package tile implements the fixed-size pixel tile: the unit of storage,
// sharing and change-tracking for a canvas layer.
//
// A Tile is always Size×Size pixels of premultiplied BGRA8. It follows the
// persistent/transient duality used throughout canvasd (see internal/rc):
// a Shared tile is immutable and may be referenced from many grid cells at
// once; a Transient tile is exclusively owned and safe to mutate in place.
package tile

import "github.com/inkmural/canvasd/internal/rc"

// Size is the tile edge length in pixels (T in spec terms).
const Size = 64

// Pixels is the number of pixels in one tile.
const Pixels = Size * Size

// Bytes is the size in bytes of one tile's pixel data (BGRA8: 4 bytes/px).
const Bytes = Pixels * 4

// Pixel is a single premultiplied BGRA8 pixel. Field order matches the
// logical wire byte order (B,G,R,A), the order in which NewFromCompressed
// reads each pixel's inflated bytes into the fields.
type Pixel struct {
	B, G, R, A byte
}

// Tile is a Size×Size grid of premultiplied BGRA8 pixels plus the refcount
// and transient flag that give it its shared/owned duality.
//
// Transient ⇔ refcount == 1 and the tile was produced by TransientNew or
// TransientBlank; Persist flips transient back to false and the tile becomes
// safely shareable. Mutating a non-transient Tile is a programmer error.
type Tile struct {
	counter   *rc.Counter
	transient bool
	// ContextID names the authoring context that produced the tile (0 when
	// untagged). PEN_UP does not read it: it matches sublayers by their own
	// ID.
	ContextID uint32

	Data [Pixels]Pixel
}

// TransientBlank allocates a brand-new transient tile, all pixels zeroed
// (fully transparent black).
func TransientBlank() *Tile {
	return &Tile{counter: rc.NewCounter(), transient: true}
}

// NewFromColor returns a Shared tile with every pixel set to c.
func NewFromColor(c Pixel) *Tile {
	return NewFromColorCtx(0, c)
}

// NewFromColorCtx is NewFromColor, additionally tagging the tile with the
// authoring context id. The command handlers that originate a solid tile
// (LAYER_CREATE's fill, PUT_TILE's color form, CANVAS_BACKGROUND's color
// form) use this form so attribution-aware consumers can see who painted
// it.
func NewFromColorCtx(ctx uint32, c Pixel) *Tile {
	t := TransientBlank()
	t.ContextID = ctx
	for i := range t.Data {
		t.Data[i] = c
	}
	return t.Persist()
}

// Incref increments the tile's reference count. Safe to call on a nil Tile
// (a null tile reference means "fully transparent").
func (t *Tile) Incref() {
	if t == nil {
		return
	}
	t.counter.Incref()
}

// Decref decrements the tile's reference count. Safe to call on a nil Tile.
func (t *Tile) Decref() {
	if t == nil {
		return
	}
	t.counter.Decref()
}

// Refcount reports the tile's current reference count, or 0 for a nil Tile.
func (t *Tile) Refcount() int32 {
	if t == nil {
		return 0
	}
	return t.counter.Load()
}

// IsTransient reports whether t is exclusively owned and mutable.
func (t *Tile) IsTransient() bool {
	return t != nil && t.transient
}

// TransientNew returns a mutable, exclusively-owned clone of a Shared tile.
// The clone starts with refcount 1; the original's refcount is untouched
// (the caller is expected to Decref it once the clone supersedes it in the
// owning grid cell).
func TransientNew(src *Tile) *Tile {
	if src == nil {
		return TransientBlank()
	}
	clone := &Tile{
		counter:   rc.NewCounter(),
		transient: true,
		ContextID: src.ContextID,
		Data:      src.Data,
	}
	return clone
}

// Persist freezes a transient tile, making it safely shareable. It is a
// no-op (returning t) if t is already persistent.
func (t *Tile) Persist() *Tile {
	if t == nil || !t.transient {
		return t
	}
	t.transient = false
	return t
}

// Equal reports whether a and b are the same underlying tile (pointer
// identity). Because shared tiles are immutable, pointer equality is a
// correct and fast test for "did this grid cell change" — the basis of the
// canvas diff engine (internal/diff).
func Equal(a, b *Tile) bool {
	return a == b
}
