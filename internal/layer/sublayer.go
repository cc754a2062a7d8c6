package layer

import "github.com/inkmural/canvasd/internal/blend"

// TransientSublayer returns the sublayer keyed by id on transient content c,
// creating one (same size as c, Normal/opaque/visible props, SublayerOf set
// to id) if none exists yet. The returned Content is itself transient and
// ready to be drawn into.
func (c *Content) TransientSublayer(id int32) (*Content, *Props) {
	for _, s := range c.Sublayers {
		if s.ID == id {
			if !s.Content.IsTransient() {
				old := s.Content
				s.Content = TransientNew(old)
				old.Decref()
			}
			if !s.Props.IsTransient() {
				old := s.Props
				s.Props = TransientProps(old)
				old.Decref()
			}
			return s.Content, s.Props
		}
	}
	props := NewProps(0)
	props.SublayerOf = id
	content := NewContent(c.Width, c.Height)
	c.Sublayers = append(c.Sublayers, &Sublayer{ID: id, Content: content, Props: props})
	return content, props
}

// FindSublayer returns the index of the sublayer keyed by id, or -1.
func (c *Content) FindSublayer(id int32) int {
	for i, s := range c.Sublayers {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// MergeSublayerAt composites the sublayer at index i into c using its own
// props (opacity, blend mode), then removes it from c's sublayer list. c
// must be transient.
func (c *Content) MergeSublayerAt(i int) {
	s := c.Sublayers[i]
	Merge(c, s.Content.Persist(), s.Props.Opacity, blend.Mode(s.Props.Mode))
	s.Content.Decref()
	s.Props.Decref()
	c.Sublayers = append(c.Sublayers[:i], c.Sublayers[i+1:]...)
}

// MergeAllSublayers composites and removes every sublayer on c.
func (c *Content) MergeAllSublayers() {
	for len(c.Sublayers) > 0 {
		c.MergeSublayerAt(len(c.Sublayers) - 1)
	}
}
