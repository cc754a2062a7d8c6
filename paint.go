package canvasd

import (
	"errors"
	"fmt"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/imgbuf"
	"github.com/inkmural/canvasd/internal/tile"
	"github.com/inkmural/canvasd/internal/xform"
)

// handlePutImage blits a compressed BGRA8 image into a layer. The mode is
// held to the same ValidForBrush check as FILL_RECT and DRAW_DABS_*, so
// all three paint surfaces agree on which modes a client may paint with.
func handlePutImage(s *State, dc *DrawContext, m PutImage) (*State, error) {
	mode, err := blend.ParseMode(m.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if !blend.ValidForBrush(mode) {
		return nil, fmt.Errorf("%w: blend mode not applicable to put image", ErrInvalidCommand)
	}
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	src, err := decodeImagePayload(dc, m.Data, m.Width, m.Height)
	if err != nil {
		return nil, err
	}

	ns := TransientNew(s)
	promoteLayerContent(ns.Layers, idx).PutImage(m.X, m.Y, src, mode)
	return ns.Persist(), nil
}

// decodeImagePayload inflates a compressed BGRA8 payload into an
// imgbuf.Buffer, consulting dc's payload cache first (a resent or replayed
// PUT_IMAGE/REGION_MOVE often carries an identical payload).
func decodeImagePayload(dc *DrawContext, data []byte, w, h int) (*imgbuf.Buffer, error) {
	key := payloadKey("img", data, w, h)
	if buf, ok := dc.cachedPayload(key); ok {
		Logger().Debug("image payload cache hit", "key", key)
		return buf, nil
	}

	raw, err := imgbuf.DecodeCompressedBGRA(data, w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	buf, err := imgbuf.FromRaw(w, h, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	dc.storePayload(key, buf)
	return buf, nil
}

// handleFillRect fills a clipped rectangle of a layer with a solid color.
func handleFillRect(s *State, m FillRect) (*State, error) {
	mode, err := blend.ParseMode(m.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if !blend.ValidForBrush(mode) {
		return nil, fmt.Errorf("%w: blend mode not applicable to brushes", ErrInvalidCommand)
	}
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	left, top := max(m.X, 0), max(m.Y, 0)
	right, bottom := min(m.X+m.Width, s.Width), min(m.Y+m.Height, s.Height)
	if left >= right || top >= bottom {
		return nil, fmt.Errorf("%w: fill rect area is empty after clipping", ErrInvalidCommand)
	}

	ns := TransientNew(s)
	promoteLayerContent(ns.Layers, idx).FillRect(left, top, right, bottom, colorToPixel(m.Color), mode)
	return ns.Persist(), nil
}

// handleRegionMove warps a layer-local rectangle into a destination quad:
// snapshot the source pixels, cut them from the layer (clear to
// transparent), then transform and composite them over the destination
// quad's current (already-cut, if overlapping) background.
func handleRegionMove(s *State, dc *DrawContext, m RegionMove) (*State, error) {
	if m.SrcWidth <= 0 || m.SrcHeight <= 0 {
		return nil, fmt.Errorf("%w: region move selection is empty", ErrInvalidCommand)
	}
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	minX, minY, maxX, maxY := m.DstQuad.Bounds()
	maxSize := float64(s.Width+1) * float64(s.Height+1)
	if (maxX-minX)*(maxY-minY) > maxSize {
		return nil, fmt.Errorf("%w: region move scales beyond canvas size", ErrInvalidCommand)
	}

	var maskBytes []byte
	if m.Mask != nil {
		key := payloadKey("mask", m.Mask, m.SrcWidth, m.SrcHeight)
		if cached, ok := dc.cachedMask(key); ok {
			maskBytes = cached
		} else {
			var err error
			maskBytes, err = imgbuf.DecodeCompressedMask(m.Mask, m.SrcWidth, m.SrcHeight)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDecode, err)
			}
			dc.storeMask(key, maskBytes)
		}
	}

	ns := TransientNew(s)
	content := promoteLayerContent(ns.Layers, idx)

	srcBuf, err := content.ReadRegion(m.SrcX, m.SrcY, m.SrcWidth, m.SrcHeight)
	if err != nil {
		return nil, err
	}
	content.FillRect(m.SrcX, m.SrcY, m.SrcX+m.SrcWidth, m.SrcY+m.SrcHeight, tile.Pixel{}, blend.Replace)

	bx0 := clampInt(int(minX), 0, content.Width)
	by0 := clampInt(int(minY), 0, content.Height)
	bx1 := clampInt(int(maxX)+1, 0, content.Width)
	by1 := clampInt(int(maxY)+1, 0, content.Height)
	if bx1 > bx0 && by1 > by0 {
		dstBuf, err := content.ReadRegion(bx0, by0, bx1-bx0, by1-by0)
		if err != nil {
			return nil, err
		}
		if err := xform.Transform(dstBuf, bx0, by0, srcBuf, m.DstQuad, maskBytes, dc.scratch); err != nil {
			if errors.Is(err, xform.ErrResourceExhausted) {
				Logger().Warn("region move rejected", "layer", m.LayerID, "err", err)
				return nil, fmt.Errorf("%w: %v", ErrResourceExhausted, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
		content.PutImage(bx0, by0, dstBuf, blend.Replace)
	}

	return ns.Persist(), nil
}

// handlePutTile sets one or more grid tiles (or, if SublayerID is set, the
// same cells on an in-progress indirect-draw sublayer) to a solid color or
// compressed payload. X,Y are tile-grid coordinates, not pixel coordinates.
func handlePutTile(s *State, m PutTile) (*State, error) {
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	t, err := decodeMessageTile(m.ContextID, m.HasColor, m.Color, m.Data)
	if err != nil {
		return nil, err
	}

	ns := TransientNew(s)
	content := promoteLayerContent(ns.Layers, idx)

	if m.SublayerID != 0 {
		subContent, _ := content.TransientSublayer(m.SublayerID)
		subContent.PutTile(m.X, m.Y, t, m.Repeat)
	} else {
		content.PutTile(m.X, m.Y, t, m.Repeat)
	}
	return ns.Persist(), nil
}

// handleDrawDabs applies a prepared batch of brush dabs, either straight
// into the layer or into an indirect-draw sublayer keyed by m.ContextID
// (later flushed by PEN_UP). When indirect, the sublayer's props take the
// command's blend mode and its color's alpha channel as opacity, and the
// dabs themselves are drawn at full Normal strength: the real opacity/mode
// applies once at merge time instead of once per dab.
func handleDrawDabs(s *State, m DrawDabs) (*State, error) {
	mode, err := blend.ParseMode(m.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if !blend.ValidForBrush(mode) {
		return nil, fmt.Errorf("%w: blend mode not applicable to brushes", ErrInvalidCommand)
	}
	if len(m.Dabs) == 0 {
		s.Incref()
		return s, nil
	}
	idx := s.Layers.IndexOf(m.LayerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: layer %d", ErrNotFound, m.LayerID)
	}

	color := colorToPixel(m.Color)

	ns := TransientNew(s)
	content := promoteLayerContent(ns.Layers, idx)

	target := content
	dabsMode := mode
	if m.Indirect {
		subContent, subProps := content.TransientSublayer(int32(m.ContextID))
		subProps.Opacity = byte(m.Color >> 24)
		subProps.Mode = byte(mode)
		target = subContent
		dabsMode = blend.Normal
	}

	for _, dab := range m.Dabs {
		target.BrushStampApply(m.OriginX+dab.DX, m.OriginY+dab.DY, dab.Coverage, dab.W, dab.H, color, dabsMode)
	}

	return ns.Persist(), nil
}
