package canvasd

import (
	"fmt"
	"io"

	"github.com/inkmural/canvasd/internal/blend"
	"github.com/inkmural/canvasd/internal/imgbuf"
	"github.com/inkmural/canvasd/internal/layer"
)

// ExportPNG flattens s and writes it to w as an 8-bit RGBA PNG. The
// background tile is included when includeBackground is set, matching
// Flatten.
func ExportPNG(w io.Writer, s *State, includeBackground bool) error {
	buf, err := Flatten(s, includeBackground)
	if err != nil {
		return err
	}
	return imgbuf.EncodePNG(w, buf)
}

// ImportPNG decodes a PNG from r into a fresh canvas state: dimensions
// taken from the image, a single layer (id, title as given) holding every
// pixel. Fails on malformed PNG data or dimensions outside the supported
// range.
func ImportPNG(r io.Reader, layerID int32, title string) (*State, error) {
	buf, err := imgbuf.DecodePNG(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	ns := NewState()
	ns.Width, ns.Height = buf.Width(), buf.Height()

	content := layer.NewContent(ns.Width, ns.Height)
	content.PutImage(0, 0, buf, blend.Normal)
	props := layer.NewProps(layerID)
	props.Title = title
	ns.Layers.Insert(0, content.Persist(), props.Persist())
	return ns.Persist(), nil
}
