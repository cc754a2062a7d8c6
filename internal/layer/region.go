package layer

import (
	"github.com/inkmural/canvasd/internal/imgbuf"
	"github.com/inkmural/canvasd/internal/tile"
)

// ReadRegion copies the w x h pixel rectangle at layer-local (x,y) into a
// fresh premultiplied BGRA8 buffer, reading through whatever tiles (or null
// gaps, left fully transparent) cover it. Used by REGION_MOVE to snapshot
// both the source rectangle and the destination quad's current background
// before warping one into the other.
func (c *Content) ReadRegion(x, y, w, h int) (*imgbuf.Buffer, error) {
	buf, err := imgbuf.New(w, h)
	if err != nil {
		return nil, err
	}

	clipL, clipT := max(x, 0), max(y, 0)
	clipR, clipB := min(x+w, c.Width), min(y+h, c.Height)
	if clipL >= clipR || clipT >= clipB {
		return buf, nil
	}

	for py := clipT; py < clipB; py++ {
		ty, localY := py/tile.Size, py%tile.Size
		for px := clipL; px < clipR; px++ {
			tx, localX := px/tile.Size, px%tile.Size
			t := c.TileAt(tx, ty)
			if t == nil {
				continue
			}
			p := t.Data[localY*tile.Size+localX]
			buf.Set(px-x, py-y, p.B, p.G, p.R, p.A)
		}
	}
	return buf, nil
}
