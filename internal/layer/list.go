package layer

import "github.com/inkmural/canvasd/internal/rc"

// List is the canvas's ordered stack of layers: parallel Content and Props
// sequences sharing indices, a layer fully identified by its Props.ID.
// Like Content, List has a persistent/transient duality.
type List struct {
	counter   *rc.Counter
	transient bool

	Contents []*Content
	Props    []*Props
}

// NewList returns an empty transient List.
func NewList() *List {
	return &List{counter: rc.NewCounter(), transient: true}
}

// TransientList clones src (or, if nil, returns an empty transient) into an
// exclusively-owned copy: the Contents/Props slices are copied, every
// element reference increfed and shared.
func TransientList(src *List) *List {
	if src == nil {
		return NewList()
	}
	l := &List{
		counter:   rc.NewCounter(),
		transient: true,
		Contents:  make([]*Content, len(src.Contents)),
		Props:     make([]*Props, len(src.Props)),
	}
	for i, c := range src.Contents {
		c.Incref()
		l.Contents[i] = c
	}
	for i, p := range src.Props {
		p.Incref()
		l.Props[i] = p
	}
	return l
}

// Persist recursively persists any still-transient layers, then flips l
// itself to persistent.
func (l *List) Persist() *List {
	if l == nil || !l.transient {
		return l
	}
	for i, c := range l.Contents {
		if c.IsTransient() {
			l.Contents[i] = c.Persist()
		}
	}
	for i, p := range l.Props {
		if p.IsTransient() {
			l.Props[i] = p.Persist()
		}
	}
	l.transient = false
	return l
}

func (l *List) IsTransient() bool { return l != nil && l.transient }

func (l *List) Incref() {
	if l != nil {
		l.counter.Incref()
	}
}

func (l *List) Decref() bool {
	if l == nil {
		return false
	}
	if !l.counter.Decref() {
		return false
	}
	for _, c := range l.Contents {
		c.Decref()
	}
	for _, p := range l.Props {
		p.Decref()
	}
	return true
}

func (l *List) Refcount() int32 {
	if l == nil {
		return 0
	}
	return l.counter.Load()
}

// Len returns the number of layers.
func (l *List) Len() int { return len(l.Props) }

// IndexOf returns the index of the layer with the given id, or -1.
func (l *List) IndexOf(id int32) int {
	for i, p := range l.Props {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Insert adds (content, props) at index i, shifting later layers down. i
// may equal Len() to append.
func (l *List) Insert(i int, content *Content, props *Props) {
	l.Contents = append(l.Contents, nil)
	copy(l.Contents[i+1:], l.Contents[i:])
	l.Contents[i] = content

	l.Props = append(l.Props, nil)
	copy(l.Props[i+1:], l.Props[i:])
	l.Props[i] = props
}

// RemoveAt removes and decrefs the layer at index i.
func (l *List) RemoveAt(i int) {
	l.Contents[i].Decref()
	l.Props[i].Decref()
	l.Contents = append(l.Contents[:i], l.Contents[i+1:]...)
	l.Props = append(l.Props[:i], l.Props[i+1:]...)
}

// Reorder permutes the layer list so layers named by id appear first, in
// the given order, followed by any layers not named (preserving their
// relative order). Unknown or missing ids are silently tolerated.
func (l *List) Reorder(ids []int32) {
	placed := make(map[int32]bool, len(ids))
	newContents := make([]*Content, 0, len(l.Contents))
	newProps := make([]*Props, 0, len(l.Props))

	for _, id := range ids {
		if i := l.IndexOf(id); i >= 0 && !placed[id] {
			newContents = append(newContents, l.Contents[i])
			newProps = append(newProps, l.Props[i])
			placed[id] = true
		}
	}
	for i, p := range l.Props {
		if !placed[p.ID] {
			newContents = append(newContents, l.Contents[i])
			newProps = append(newProps, l.Props[i])
		}
	}
	l.Contents, l.Props = newContents, newProps
}
