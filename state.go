// Package canvasd is the canvas state engine: a pure, message-driven
// function mapping an immutable canvas snapshot and an incoming drawing
// command to a new immutable snapshot. It owns the persistent/transient
// canvas-state duality, the command dispatcher, and the flatten-to-image
// and diff operations consumers use to render incrementally.
package canvasd

import (
	"github.com/inkmural/canvasd/internal/layer"
	"github.com/inkmural/canvasd/internal/rc"
	"github.com/inkmural/canvasd/internal/tile"
)

// MaxDimension is the largest width or height a State may have.
const MaxDimension = 32767

// State is one immutable canvas snapshot: dimensions, an optional
// background tile, and the layer list. Like every node in the tree, State
// has a persistent/transient duality via an embedded refcount.
type State struct {
	counter   *rc.Counter
	transient bool

	Width, Height int
	Background    *tile.Tile
	Layers        *layer.List
}

// NewState returns a fresh transient, empty (0x0, no layers) State.
func NewState() *State {
	return &State{
		counter:   rc.NewCounter(),
		transient: true,
		Layers:    layer.NewList(),
	}
}

// TransientNew clones src (or, if nil, returns an empty transient State)
// into an exclusively-owned copy, sharing (and increfing) the background
// tile and layer list.
func TransientNew(src *State) *State {
	if src == nil {
		return NewState()
	}
	src.Background.Incref()
	return &State{
		counter:    rc.NewCounter(),
		transient:  true,
		Width:      src.Width,
		Height:     src.Height,
		Background: src.Background,
		Layers:     layer.TransientList(src.Layers),
	}
}

// Persist recursively persists the layer list and background tile, then
// flips s itself to persistent. Idempotent.
func (s *State) Persist() *State {
	if s == nil || !s.transient {
		return s
	}
	if s.Background.IsTransient() {
		s.Background = s.Background.Persist()
	}
	s.Layers = s.Layers.Persist()
	s.transient = false
	return s
}

func (s *State) IsTransient() bool { return s != nil && s.transient }

func (s *State) Incref() {
	if s != nil {
		s.counter.Incref()
	}
}

func (s *State) Decref() bool {
	if s == nil {
		return false
	}
	if !s.counter.Decref() {
		return false
	}
	s.Background.Decref()
	s.Layers.Decref()
	return true
}

func (s *State) Refcount() int32 {
	if s == nil {
		return 0
	}
	return s.counter.Load()
}

// layerContent returns the Content for the layer with the given id, or nil.
func (s *State) layerContent(id int32) *layer.Content {
	i := s.Layers.IndexOf(id)
	if i < 0 {
		return nil
	}
	return s.Layers.Contents[i]
}

// layerProps returns the Props for the layer with the given id, or nil.
func (s *State) layerProps(id int32) *layer.Props {
	i := s.Layers.IndexOf(id)
	if i < 0 {
		return nil
	}
	return s.Layers.Props[i]
}
