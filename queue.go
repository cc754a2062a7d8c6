package canvasd

import "github.com/inkmural/canvasd/internal/queue"

// MessageQueue buffers incoming Messages for sequential dispatch: a
// host accepting commands faster than it can apply them (a burst of
// network traffic arriving mid-Handle) enqueues them here instead of
// blocking the sender, then drains them one at a time once free. A
// zero-value MessageQueue is not ready to use; construct one with
// NewMessageQueue.
type MessageQueue struct {
	ring *queue.Ring[Message]
}

// NewMessageQueue returns an empty MessageQueue with room for at least
// capacity messages before its first grow.
func NewMessageQueue(capacity int) *MessageQueue {
	return &MessageQueue{ring: queue.NewRing[Message](capacity)}
}

// Enqueue appends msg to the back of the queue.
func (q *MessageQueue) Enqueue(msg Message) {
	q.ring.Push(msg)
}

// Len reports the number of queued messages.
func (q *MessageQueue) Len() int {
	return q.ring.Len()
}

// Drain applies every currently queued message to s in FIFO order via
// Handle, stopping at the first error. It returns the resulting snapshot
// and the number of messages successfully applied; s itself is left
// untouched (matching Handle's own contract) and, if returned unchanged
// (nothing applied), its refcount is bumped to reflect the caller's new
// reference to it. A failing message is left at the front of the queue
// (not consumed) so the caller can inspect or discard it.
func (q *MessageQueue) Drain(s *State, dc *DrawContext) (*State, int, error) {
	cur := s
	applied := 0
	for {
		msg, ok := q.ring.Peek()
		if !ok {
			if cur == s {
				cur.Incref()
			}
			return cur, applied, nil
		}
		ns, err := Handle(cur, dc, msg)
		if err != nil {
			if cur == s {
				cur.Incref()
			}
			return cur, applied, err
		}
		if cur != s {
			cur.Decref()
		}
		cur = ns
		applied++
		q.ring.Shift()
	}
}
