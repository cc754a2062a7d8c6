package canvasd

import "github.com/inkmural/canvasd/internal/xform"

// Message is a typed drawing command the host has already parsed off the
// wire and hands to Handle. canvasd never decodes protocol framing itself;
// each concrete Message type below corresponds to one wire command.
type Message interface {
	isMessage()
}

// CanvasResize adjusts the canvas by signed insets on each edge. Negative
// values shrink that edge, positive values grow it.
type CanvasResize struct {
	ContextID                uint32
	Top, Right, Bottom, Left int
}

// LayerCreate appends (or inserts relative to SourceID) a new layer. Fill,
// if non-zero, is a premultiplied BGRA color every pixel of the new layer
// starts filled with; zero means fully transparent. Copy, if set, clones
// SourceID's pixel content (sharing tiles) instead of starting blank/filled.
// Insert, if set, places the new layer directly above SourceID instead of
// appending to the top of the stack.
type LayerCreate struct {
	ContextID uint32
	LayerID   int32
	SourceID  int32
	Fill      uint32
	Insert    bool
	Copy      bool
	Title     string
}

// LayerAttr updates a layer's (or, if SublayerID is non-zero, one of its
// in-progress indirect-draw sublayer's) opacity/blend-mode/censored/fixed
// metadata.
type LayerAttr struct {
	LayerID    int32
	SublayerID int32
	Opacity    byte
	Mode       byte
	Censored   bool
	Fixed      bool
}

// LayerOrder permutes the layer stack: ids named here are placed first, in
// the given order; any layer id not named keeps its prior relative order,
// appended after.
type LayerOrder struct {
	LayerIDs []int32
}

// LayerRetitle replaces a layer's UTF-8 title.
type LayerRetitle struct {
	LayerID int32
	Title   string
}

// LayerDelete removes a layer. If Merge is set, its pixel content is first
// composited into the layer directly beneath it (using the deleted layer's
// own opacity and blend mode) before removal.
type LayerDelete struct {
	ContextID uint32
	LayerID   int32
	Merge     bool
}

// LayerVisibility sets a layer's visible flag.
type LayerVisibility struct {
	LayerID int32
	Visible bool
}

// PutImage blits a zlib-compressed premultiplied BGRA8 image at layer-local
// (X,Y) under Mode, clipped to the layer bounds.
type PutImage struct {
	ContextID     uint32
	LayerID       int32
	Mode          byte
	X, Y          int
	Width, Height int
	Data          []byte
}

// FillRect fills [X,Y)-[X+Width,Y+Height), clipped to the canvas, with
// Color under Mode.
type FillRect struct {
	ContextID     uint32
	LayerID       int32
	Mode          byte
	X, Y          int
	Width, Height int
	Color         uint32
}

// RegionMove warps the layer-local rectangle (SrcX,SrcY,SrcWidth,SrcHeight)
// into DstQuad via a bilinear quad-to-quad transform, optionally masked in
// source space by a zlib-compressed 1-bit monochrome Mask (nil for no
// mask).
type RegionMove struct {
	ContextID                       uint32
	LayerID                         int32
	SrcX, SrcY, SrcWidth, SrcHeight int
	DstQuad                         xform.Quad
	Mask                            []byte
}

// PutTile sets one grid tile at tile-grid coordinates (X,Y) (and, if
// Repeat>0, the following Repeat tiles in row-major order) to a solid color
// or a zlib-compressed payload. HasColor selects which of Color/Data is
// meaningful. SublayerID, if non-zero, targets an in-progress indirect-draw
// sublayer instead of the layer's own grid.
type PutTile struct {
	ContextID  uint32
	LayerID    int32
	SublayerID int32
	X, Y       int
	HasColor   bool
	Color      uint32
	Data       []byte
	Repeat     int
}

// CanvasBackground replaces the canvas's background tile with a solid
// color or a zlib-compressed payload (HasColor selects which).
type CanvasBackground struct {
	ContextID uint32
	HasColor  bool
	Color     uint32
	Data      []byte
}

// PenUp flushes every indirect-draw sublayer keyed by ContextID across all
// layers, compositing each into its parent and removing it.
type PenUp struct {
	ContextID uint32
}

// DabKind distinguishes the three wire message families that carry dab
// records; the engine treats them identically once the dabs themselves are
// prepared (dab geometry generation happens upstream, in the brush
// engine), so DabKind exists only for logging/provenance.
type DabKind uint8

const (
	DabClassic DabKind = iota
	DabPixel
	DabPixelSquare
)

// Dab is one pre-rasterized brush stamp: an anti-aliased coverage mask
// (W*H bytes, 0-255) positioned at (OriginX+DX, OriginY+DY) in layer-local
// coordinates.
type Dab struct {
	DX, DY   int
	W, H     int
	Coverage []byte
}

// DrawDabs applies a prepared list of dab records under Mode and Color. If
// Indirect is set, the dabs are drawn into a sublayer keyed by ContextID
// (opacity taken from Color's alpha channel) instead of directly into the
// layer; PEN_UP later merges that sublayer.
type DrawDabs struct {
	Kind             DabKind
	ContextID        uint32
	LayerID          int32
	Mode             byte
	Color            uint32
	OriginX, OriginY int
	Indirect         bool
	Dabs             []Dab
}

func (CanvasResize) isMessage()     {}
func (LayerCreate) isMessage()      {}
func (LayerAttr) isMessage()        {}
func (LayerOrder) isMessage()       {}
func (LayerRetitle) isMessage()     {}
func (LayerDelete) isMessage()      {}
func (LayerVisibility) isMessage()  {}
func (PutImage) isMessage()         {}
func (FillRect) isMessage()         {}
func (RegionMove) isMessage()       {}
func (PutTile) isMessage()          {}
func (CanvasBackground) isMessage() {}
func (PenUp) isMessage()            {}
func (DrawDabs) isMessage()         {}
