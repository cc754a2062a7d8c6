package layer

import (
	"fmt"

	"github.com/inkmural/canvasd/internal/rc"
	"github.com/inkmural/canvasd/internal/tile"
)

// TilesX/TilesY compute the tile-grid dimensions for a W x H layer.
func TilesX(width int) int { return (width + tile.Size - 1) / tile.Size }
func TilesY(height int) int { return (height + tile.Size - 1) / tile.Size }

// Content is one layer's pixel data: a W x H grid of (possibly null) tile
// references, plus the sublayers currently drawing indirectly into it.
// Content has the same persistent/transient duality as tile.Tile.
type Content struct {
	counter   *rc.Counter
	transient bool

	Width, Height  int
	tilesX, tilesY int
	Tiles          []*tile.Tile

	// Sublayers never recurse: a sublayer's own Content.Sublayers is always
	// empty.
	Sublayers []*Sublayer
}

// Sublayer pairs a sublayer's content and props, keyed by the id of the
// context (author) currently drawing indirectly into it.
type Sublayer struct {
	ID      int32
	Content *Content
	Props   *Props
}

// NewContent returns a fresh transient Content of the given size, every
// tile reference null (fully transparent) and no sublayers.
func NewContent(width, height int) *Content {
	tx, ty := TilesX(width), TilesY(height)
	return &Content{
		counter:   rc.NewCounter(),
		transient: true,
		Width:     width,
		Height:    height,
		tilesX:    tx,
		tilesY:    ty,
		Tiles:     make([]*tile.Tile, tx*ty),
	}
}

// TilesX reports the grid width in tiles.
func (c *Content) TilesX() int { return c.tilesX }

// TilesY reports the grid height in tiles.
func (c *Content) TilesY() int { return c.tilesY }

// Index returns the flat Tiles index for tile coordinates (tx,ty), or -1 if
// out of bounds.
func (c *Content) Index(tx, ty int) int {
	if tx < 0 || tx >= c.tilesX || ty < 0 || ty >= c.tilesY {
		return -1
	}
	return ty*c.tilesX + tx
}

// TileAt returns the tile reference at tile coordinates (tx,ty), or nil if
// out of bounds or null.
func (c *Content) TileAt(tx, ty int) *tile.Tile {
	i := c.Index(tx, ty)
	if i < 0 {
		return nil
	}
	return c.Tiles[i]
}

// TransientNew clones src (or, if nil, returns an empty 0x0 transient) into
// an exclusively-owned copy: the Tiles and Sublayers slices are copied
// (so the clone can mutate its grid independently) but every non-nil tile
// and sublayer reference is shared and increfed: a shallow clone whose
// children stay shared until a mutation promotes them.
func TransientNew(src *Content) *Content {
	if src == nil {
		return NewContent(0, 0)
	}
	c := &Content{
		counter:   rc.NewCounter(),
		transient: true,
		Width:     src.Width,
		Height:    src.Height,
		tilesX:    src.tilesX,
		tilesY:    src.tilesY,
		Tiles:     make([]*tile.Tile, len(src.Tiles)),
	}
	for i, t := range src.Tiles {
		t.Incref()
		c.Tiles[i] = t
	}
	if len(src.Sublayers) > 0 {
		// Fresh Sublayer structs, not shared pointers: the clone promotes
		// sublayer content/props in place, which must never write through
		// to the source's entries.
		c.Sublayers = make([]*Sublayer, len(src.Sublayers))
		for i, s := range src.Sublayers {
			s.Content.Incref()
			s.Props.Incref()
			c.Sublayers[i] = &Sublayer{ID: s.ID, Content: s.Content, Props: s.Props}
		}
	}
	return c
}

// Persist recursively persists any still-transient tiles and sublayers,
// then flips c itself to persistent. Idempotent.
func (c *Content) Persist() *Content {
	if c == nil || !c.transient {
		return c
	}
	for i, t := range c.Tiles {
		if t.IsTransient() {
			c.Tiles[i] = t.Persist()
		}
	}
	for _, s := range c.Sublayers {
		if s.Content.IsTransient() {
			s.Content = s.Content.Persist()
		}
		if s.Props.IsTransient() {
			s.Props = s.Props.Persist()
		}
	}
	c.transient = false
	return c
}

// IsTransient reports whether c is exclusively owned and mutable.
func (c *Content) IsTransient() bool { return c != nil && c.transient }

func (c *Content) Incref() {
	if c != nil {
		c.counter.Incref()
	}
}

// Decref decrements c's refcount, releasing its tile and sublayer
// references when it reaches zero. Returns true if c was destroyed.
func (c *Content) Decref() bool {
	if c == nil {
		return false
	}
	if !c.counter.Decref() {
		return false
	}
	for _, t := range c.Tiles {
		t.Decref()
	}
	for _, s := range c.Sublayers {
		s.Content.Decref()
		s.Props.Decref()
	}
	return true
}

func (c *Content) Refcount() int32 {
	if c == nil {
		return 0
	}
	return c.counter.Load()
}

// SetTile sets the tile reference at (tx,ty) on a transient c, increfing
// the new reference and decrefing the one it replaces. Out-of-bounds
// coordinates are a no-op.
func (c *Content) SetTile(tx, ty int, t *tile.Tile) {
	i := c.Index(tx, ty)
	if i < 0 {
		return
	}
	t.Incref()
	c.Tiles[i].Decref()
	c.Tiles[i] = t
}

// String aids test failure messages.
func (c *Content) String() string {
	if c == nil {
		return "<nil content>"
	}
	return fmt.Sprintf("Content{%dx%d, %dx%d tiles}", c.Width, c.Height, c.tilesX, c.tilesY)
}
