package queue

// entryHeap dispatches by priority tier, then submission order within a
// tier. Implements container/heap.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, k int) bool {
	if h[i].priority.rank() != h[k].priority.rank() {
		return h[i].priority.rank() > h[k].priority.rank()
	}
	return h[i].seq < h[k].seq
}

func (h entryHeap) Swap(i, k int) { h[i], h[k] = h[k], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(*entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
