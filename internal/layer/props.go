// Package layer implements the layer-content / layer-props / layer-list
// triad: the 2-D grid of tile references that makes up one drawing layer,
// its id/title/opacity/blend-mode/visibility metadata, and the parallel
// ordered sequences of both that make up a canvas's full stack.
//
// Content stores its grid as a flat, row-major slice of refcounted,
// persistent/transient, possibly-null tile.Tile references addressed by
// ty*tilesX+tx, the representation canvasd's compositing model is built
// on.
package layer

import "github.com/inkmural/canvasd/internal/rc"

// Props holds one layer's metadata. Like tile.Tile and Content, Props has a
// persistent/transient duality via an embedded refcount.
type Props struct {
	counter   *rc.Counter
	transient bool

	ID         int32
	Title      string
	Opacity    byte
	Mode       byte // blend.Mode, stored as a byte to keep this package blend-mode-agnostic at the struct level
	Visible    bool
	Censored   bool
	Fixed      bool
	SublayerOf int32 // 0 means "not a sublayer"; sublayer ids are always non-zero
}

// NewProps returns a fresh transient Props with default visible, opaque,
// Normal-mode metadata and the given id.
func NewProps(id int32) *Props {
	return &Props{
		counter:   rc.NewCounter(),
		transient: true,
		ID:        id,
		Opacity:   255,
		Visible:   true,
	}
}

// TransientProps clones src (or, if src is nil, returns a zero-valued
// transient) into a new exclusively-owned copy. Props has no child
// references, so cloning is a plain value copy.
func TransientProps(src *Props) *Props {
	p := &Props{counter: rc.NewCounter(), transient: true}
	if src != nil {
		*p = *src
		p.counter = rc.NewCounter()
		p.transient = true
	}
	return p
}

// Persist flips p from transient to persistent in place and returns it.
// Idempotent.
func (p *Props) Persist() *Props {
	if p == nil {
		return nil
	}
	p.transient = false
	return p
}

// IsTransient reports whether p is exclusively owned and mutable.
func (p *Props) IsTransient() bool {
	return p != nil && p.transient
}

func (p *Props) Incref() {
	if p != nil {
		p.counter.Incref()
	}
}

func (p *Props) Decref() bool {
	if p == nil {
		return false
	}
	return p.counter.Decref()
}

func (p *Props) Refcount() int32 {
	if p == nil {
		return 0
	}
	return p.counter.Load()
}

// IsSublayer reports whether p describes a sublayer (as opposed to a
// top-level layer).
func (p *Props) IsSublayer() bool {
	return p != nil && p.SublayerOf != 0
}
