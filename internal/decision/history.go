package decision

// history is a bounded ring buffer of recommendation batches. The zero
// value is not usable; construct with newHistory. Callers synchronise
// access (the engine holds its own mutex).
type history struct {
	batches []*Batch
	next    int
	full    bool
}

func newHistory(size int) *history {
	return &history{batches: make([]*Batch, size)}
}

// Add stores a batch, evicting the oldest entry once the buffer is full.
func (h *history) Add(b *Batch) {
	h.batches[h.next] = b
	h.next++
	if h.next == len(h.batches) {
		h.next = 0
		h.full = true
	}
}

// Recent returns up to n batches, newest first.
func (h *history) Recent(n int) []*Batch {
	size := h.Len()
	if n > size {
		n = size
	}
	out := make([]*Batch, 0, n)
	idx := h.next
	for i := 0; i < n; i++ {
		idx--
		if idx < 0 {
			idx = len(h.batches) - 1
		}
		out = append(out, h.batches[idx])
	}
	return out
}

// Find returns the batch with the given ID, or nil when it is unknown or
// has been evicted.
func (h *history) Find(id string) *Batch {
	for _, b := range h.batches {
		if b != nil && b.ID == id {
			return b
		}
	}
	return nil
}

// Len returns the number of batches currently held.
func (h *history) Len() int {
	if h.full {
		return len(h.batches)
	}
	return h.next
}
