package canvasd

import (
	"github.com/inkmural/canvasd/internal/diff"
	"github.com/inkmural/canvasd/internal/layer"
	"github.com/inkmural/canvasd/internal/tile"
)

// Diff computes which tiles (and whether any layer's props) differ between
// new and old. old may be nil, meaning "compare against an empty canvas"
// (every tile starts dirty).
func Diff(new, old *State) *diff.Diff {
	if old == nil {
		return diff.Begin(0, 0, new.Width, new.Height, tile.Size)
	}

	d := diff.Begin(old.Width, old.Height, new.Width, new.Height, tile.Size)
	if new != old {
		diffStates(new, old, d)
	}
	return d
}

// diffStates compares two snapshots top-down: a background or dimension change marks
// every tile dirty (the tile grid itself was reshaped or rebased), since a
// per-tile comparison would be meaningless or require re-indexing; a
// dimension-stable change defers to the layer-by-layer tile comparison.
func diffStates(new, old *State, d *diff.Diff) {
	if !tile.Equal(new.Background, old.Background) || new.Width != old.Width || new.Height != old.Height {
		d.CheckAll()
		return
	}
	diffLayerList(new.Layers, old.Layers, d)
}

// diffLayerList compares two layer stacks layer by layer. A change in
// layer count, order, or identity at any position is treated the same as a
// structural canvas change (mark everything dirty) rather than attempting a
// finer-grained positional diff.
func diffLayerList(newList, oldList *layer.List, d *diff.Diff) {
	if newList == oldList {
		return
	}
	if len(newList.Props) != len(oldList.Props) {
		d.CheckAll()
		d.MarkLayerPropsChanged()
		return
	}

	for i := range newList.Props {
		np, op := newList.Props[i], oldList.Props[i]
		if np.ID != op.ID {
			d.CheckAll()
			d.MarkLayerPropsChanged()
			return
		}
		if np != op && !propsEqual(np, op) {
			d.MarkLayerPropsChanged()
		}
		diffLayerContent(newList.Contents[i], oldList.Contents[i], d)
	}
}

func propsEqual(a, b *layer.Props) bool {
	return a.Title == b.Title && a.Opacity == b.Opacity && a.Mode == b.Mode &&
		a.Visible == b.Visible && a.Censored == b.Censored && a.Fixed == b.Fixed &&
		a.SublayerOf == b.SublayerOf
}

// diffLayerContent marks every tile position whose reference differs
// between the two snapshots. Tile identity (pointer equality) is a correct
// and cheap test because persistent tiles are immutable — see tile.Equal.
func diffLayerContent(newContent, oldContent *layer.Content, d *diff.Diff) {
	if newContent == oldContent {
		return
	}
	tx, ty := newContent.TilesX(), newContent.TilesY()
	for y := 0; y < ty; y++ {
		for x := 0; x < tx; x++ {
			if !tile.Equal(newContent.TileAt(x, y), oldContent.TileAt(x, y)) {
				d.Mark(x, y)
			}
		}
	}
}
