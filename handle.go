package canvasd

import (
	"fmt"

	"github.com/inkmural/canvasd/internal/tile"
)

// Handle applies msg to s and returns the resulting snapshot. s itself is
// never mutated: on success Handle returns a new, already-persisted State
// (s's refcount is untouched), except that a command with nothing to do
// (PEN_UP with no matching sublayer, DRAW_DABS with no dabs) returns s
// itself with its refcount incremented; on error it returns (nil, err) and
// s is guaranteed untouched. dc supplies the scratch buffers and payload cache
// a handler may need; it is not safe for concurrent use by more than one
// Handle call at a time.
func Handle(s *State, dc *DrawContext, msg Message) (*State, error) {
	switch m := msg.(type) {
	case CanvasResize:
		return handleCanvasResize(s, m)
	case LayerCreate:
		return handleLayerCreate(s, m)
	case LayerAttr:
		return handleLayerAttr(s, m)
	case LayerOrder:
		return handleLayerOrder(s, m)
	case LayerRetitle:
		return handleLayerRetitle(s, m)
	case LayerDelete:
		return handleLayerDelete(s, m)
	case LayerVisibility:
		return handleLayerVisibility(s, m)
	case PutImage:
		return handlePutImage(s, dc, m)
	case FillRect:
		return handleFillRect(s, m)
	case RegionMove:
		return handleRegionMove(s, dc, m)
	case PutTile:
		return handlePutTile(s, m)
	case CanvasBackground:
		return handleCanvasBackground(s, m)
	case PenUp:
		return handlePenUp(s, m)
	case DrawDabs:
		return handleDrawDabs(s, m)
	default:
		return nil, fmt.Errorf("%w: unhandled message type %T", ErrInvalidCommand, msg)
	}
}

// handleCanvasResize adjusts the canvas dimensions by the signed insets and
// resizes every layer's tile grid to match.
func handleCanvasResize(s *State, m CanvasResize) (*State, error) {
	newWidth := s.Width + m.Left + m.Right
	newHeight := s.Height + m.Top + m.Bottom
	if newWidth < 1 || newHeight < 1 || newWidth > MaxDimension || newHeight > MaxDimension {
		return nil, fmt.Errorf("%w: resize to %dx%d is out of range", ErrInvalidCommand, newWidth, newHeight)
	}

	Logger().Info("canvas resize", "width", newWidth, "height", newHeight)

	ns := TransientNew(s)
	ns.Width, ns.Height = newWidth, newHeight
	for i := range ns.Layers.Contents {
		promoteLayerContent(ns.Layers, i).Resize(m.Top, m.Right, m.Bottom, m.Left)
	}
	return ns.Persist(), nil
}

// handleCanvasBackground replaces the canvas's background tile.
func handleCanvasBackground(s *State, m CanvasBackground) (*State, error) {
	t, err := decodeMessageTile(m.ContextID, m.HasColor, m.Color, m.Data)
	if err != nil {
		return nil, err
	}

	ns := TransientNew(s)
	ns.Background.Decref()
	ns.Background = t
	return ns.Persist(), nil
}

// handlePenUp flushes every sublayer keyed by m.ContextID into its parent
// layer. It only creates a transient snapshot the first time a matching
// sublayer is actually found on some layer; if none exists anywhere (the
// overwhelmingly common case, since direct draw mode never creates
// sublayers), it simply increfs and returns s unchanged.
func handlePenUp(s *State, m PenUp) (*State, error) {
	sublayerID := int32(m.ContextID)
	var ns *State

	for i := range s.Layers.Contents {
		content := s.Layers.Contents[i]
		if ns != nil {
			content = ns.Layers.Contents[i]
		}
		if content.FindSublayer(sublayerID) < 0 {
			continue
		}

		if ns == nil {
			ns = TransientNew(s)
		}
		content = promoteLayerContent(ns.Layers, i)
		for {
			si := content.FindSublayer(sublayerID)
			if si < 0 {
				break
			}
			content.MergeSublayerAt(si)
		}
	}

	if ns == nil {
		s.Incref()
		return s, nil
	}
	return ns.Persist(), nil
}

// decodeMessageTile builds the tile named by a PUT_TILE/CANVAS_BACKGROUND
// message's color-or-compressed-payload union.
func decodeMessageTile(contextID uint32, hasColor bool, color uint32, data []byte) (*tile.Tile, error) {
	if hasColor {
		return tile.NewFromColorCtx(contextID, colorToPixel(color)), nil
	}
	t, err := tile.NewFromCompressedCtx(contextID, data)
	if err != nil {
		Logger().Warn("tile payload decode failed", "context", contextID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return t, nil
}
