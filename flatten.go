package canvasd

import (
	"fmt"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/diff"
	"github.com/inkmural/canvasd/internal/imgbuf"
	"github.com/inkmural/canvasd/internal/layer"
	"github.com/inkmural/canvasd/internal/tile"
)

// Flatten composites every visible, non-sublayer layer bottom-to-top into a
// single BGRA8 image, optionally pre-filled with the canvas's background
// tile.
func Flatten(s *State, includeBackground bool) (*imgbuf.Buffer, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: can't flatten a zero-pixel canvas", ErrInvalidCommand)
	}

	target := layer.NewContent(s.Width, s.Height)
	if includeBackground && s.Background != nil {
		for ty := 0; ty < target.TilesY(); ty++ {
			for tx := 0; tx < target.TilesX(); tx++ {
				target.PutTile(tx, ty, s.Background, 0)
			}
		}
	}

	for i, content := range s.Layers.Contents {
		props := s.Layers.Props[i]
		if !props.Visible || props.IsSublayer() {
			continue
		}
		layer.Merge(target, content, props.Opacity, blend.Mode(props.Mode))
	}

	return contentToBuffer(target)
}

// contentToBuffer reads every pixel of c's tile grid into a freshly
// allocated, tightly-packed BGRA8 buffer. Null tile references read as
// fully transparent.
func contentToBuffer(c *layer.Content) (*imgbuf.Buffer, error) {
	buf, err := imgbuf.New(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < c.Height; y++ {
		ty, localY := y/tile.Size, y%tile.Size
		for x := 0; x < c.Width; x++ {
			tx, localX := x/tile.Size, x%tile.Size
			t := c.TileAt(tx, ty)
			if t == nil {
				continue
			}
			p := t.Data[localY*tile.Size+localX]
			buf.Set(x, y, p.B, p.G, p.R, p.A)
		}
	}
	return buf, nil
}

// FlattenTile composites every visible, non-sublayer layer's tile at grid
// coordinates (tx,ty) over the canvas's background tile, returning a
// single persisted result tile; the incremental renderer calls this once
// per dirty tile.
func FlattenTile(s *State, tx, ty int) *tile.Tile {
	var base *tile.Tile
	if s.Background != nil {
		base = tile.TransientNew(s.Background)
	} else {
		base = tile.TransientBlank()
	}

	for i, content := range s.Layers.Contents {
		props := s.Layers.Props[i]
		if !props.Visible || props.IsSublayer() {
			continue
		}
		mode := blend.Mode(props.Mode)
		src := content.TileAt(tx, ty)
		if src == nil && blend.NoopOnNullSource(mode) {
			continue
		}
		tile.BlendInto(base, src, props.Opacity, mode)
	}

	return base.Persist()
}

// Render writes the flattened result of every dirty tile named by d into
// target, a tile grid the caller has already sized to match s (e.g. via
// layer.NewContent(s.Width, s.Height)).
func Render(s *State, target *layer.Content, d *diff.Diff) {
	d.EachPos(func(tx, ty int) {
		target.SetTile(tx, ty, FlattenTile(s, tx, ty))
	})
}
