package canvasd

import (
	"fmt"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/layer"
	"github.com/inkmural/canvasd/internal/tile"
)

// handleLayerCreate appends or inserts a new layer. When both Copy and
// Fill are set, Fill is ignored: the copied source content already
// determines every pixel.
func handleLayerCreate(s *State, m LayerCreate) (*State, error) {
	if s.Layers.IndexOf(m.LayerID) >= 0 {
		return nil, fmt.Errorf("%w: layer id %d already exists", ErrInvalidCommand, m.LayerID)
	}

	var sourceIdx = -1
	if m.Insert || m.Copy {
		sourceIdx = s.Layers.IndexOf(m.SourceID)
		if sourceIdx < 0 {
			return nil, fmt.Errorf("%w: source layer %d", ErrNotFound, m.SourceID)
		}
	}

	ns := TransientNew(s)

	var content *layer.Content
	if m.Copy {
		content = layer.TransientNew(ns.Layers.Contents[sourceIdx])
	} else {
		content = layer.NewContent(ns.Width, ns.Height)
		if m.Fill != 0 {
			fillTile := tile.NewFromColorCtx(m.ContextID, colorToPixel(m.Fill))
			for ty := 0; ty < content.TilesY(); ty++ {
				for tx := 0; tx < content.TilesX(); tx++ {
					content.SetTile(tx, ty, fillTile)
				}
			}
			fillTile.Decref()
		}
	}

	props := layer.NewProps(m.LayerID)
	props.Title = m.Title

	insertAt := ns.Layers.Len()
	if m.Insert {
		insertAt = sourceIdx + 1
	}
	ns.Layers.Insert(insertAt, content.Persist(), props.Persist())
	return ns.Persist(), nil
}

// handleLayerAttr updates a layer's (or one of its sublayers') opacity,
// blend mode, censored and fixed flags. Unlike FILL_RECT/PUT_IMAGE/
// DRAW_DABS_*, the mode byte is only checked to be a known mode, not for
// brush validity: a layer (as opposed to a brush stroke) may legitimately
// composite with BEHIND or REPLACE.
func handleLayerAttr(s *State, m LayerAttr) (*State, error) {
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}
	if _, err := blend.ParseMode(m.Mode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	ns := TransientNew(s)
	content := promoteLayerContent(ns.Layers, idx)

	if m.SublayerID != 0 {
		si := content.FindSublayer(m.SublayerID)
		if si < 0 {
			return nil, fmt.Errorf("%w: sublayer %d on layer %d", ErrNotFound, m.SublayerID, m.LayerID)
		}
		sub := content.Sublayers[si]
		if !sub.Props.IsTransient() {
			old := sub.Props
			sub.Props = layer.TransientProps(old)
			old.Decref()
		}
		applyLayerAttr(sub.Props, m)
	} else {
		applyLayerAttr(promoteLayerProps(ns.Layers, idx), m)
	}
	return ns.Persist(), nil
}

func applyLayerAttr(p *layer.Props, m LayerAttr) {
	p.Opacity = m.Opacity
	p.Mode = m.Mode
	p.Censored = m.Censored
	p.Fixed = m.Fixed
}

// handleLayerOrder permutes the layer stack.
func handleLayerOrder(s *State, m LayerOrder) (*State, error) {
	ns := TransientNew(s)
	ns.Layers.Reorder(m.LayerIDs)
	return ns.Persist(), nil
}

// handleLayerRetitle replaces a layer's title.
func handleLayerRetitle(s *State, m LayerRetitle) (*State, error) {
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	ns := TransientNew(s)
	promoteLayerProps(ns.Layers, idx).Title = m.Title
	return ns.Persist(), nil
}

// handleLayerDelete removes a layer, optionally merging its content into
// the layer directly beneath it first.
//
// Open question resolved here: deleting the bottom-most layer (index 0)
// with Merge set is rejected — there is no layer beneath it to merge into
// — rather than silently discarding the content.
func handleLayerDelete(s *State, m LayerDelete) (*State, error) {
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}
	if m.Merge && idx == 0 {
		return nil, fmt.Errorf("%w: layer %d has no layer beneath it to merge into", ErrInvalidCommand, m.LayerID)
	}

	ns := TransientNew(s)
	if m.Merge {
		content := ns.Layers.Contents[idx]
		props := ns.Layers.Props[idx]
		below := promoteLayerContent(ns.Layers, idx-1)
		layer.Merge(below, content, props.Opacity, blend.Mode(props.Mode))
	}
	ns.Layers.RemoveAt(idx)
	return ns.Persist(), nil
}

// handleLayerVisibility sets a layer's visible flag.
func handleLayerVisibility(s *State, m LayerVisibility) (*State, error) {
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	ns := TransientNew(s)
	promoteLayerProps(ns.Layers, idx).Visible = m.Visible
	return ns.Persist(), nil
}
