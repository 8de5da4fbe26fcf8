package midi

// BlockQueue holds the MIDI messages delivered during one block. Capacity
// is fixed at construction so pushing never allocates; a full queue
// rejects further messages until Reset.
type BlockQueue struct {
	msgs []Message
}

// DefaultBlockQueueCapacity is enough for dense controller automation in a
// large block.
const DefaultBlockQueueCapacity = 512

// NewBlockQueue creates a queue holding at most capacity messages.
func NewBlockQueue(capacity int) *BlockQueue {
	if capacity <= 0 {
		capacity = DefaultBlockQueueCapacity
	}
	return &BlockQueue{
		msgs: make([]Message, 0, capacity),
	}
}

// Push appends msg. It returns false if the queue is at capacity.
func (q *BlockQueue) Push(msg Message) bool {
	if len(q.msgs) == cap(q.msgs) {
		return false
	}
	q.msgs = append(q.msgs, msg)
	return true
}

// Messages returns the queued messages in arrival order. The slice is only
// valid until the next Reset.
func (q *BlockQueue) Messages() []Message {
	return q.msgs
}

// Len returns the number of queued messages
func (q *BlockQueue) Len() int {
	return len(q.msgs)
}

// Cap returns the queue capacity
func (q *BlockQueue) Cap() int {
	return cap(q.msgs)
}

// Reset empties the queue, keeping its storage.
func (q *BlockQueue) Reset() {
	q.msgs = q.msgs[:0]
}
