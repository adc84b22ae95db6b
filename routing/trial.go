package routing

import "container/heap"

// trialSet holds the Trial cells of a marching solve, keyed by their
// tentative arrival time.
type trialSet interface {
	push(idx int)
	decrease(idx int)
	popMin() int
	len() int
}

// trialHeap is a binary min-heap with decrease-key. Each cell records its
// heap position so no stale entries are kept.
type trialHeap struct {
	g     *GridMap
	items []int
}

func newTrialHeap(g *GridMap) *trialHeap {
	return &trialHeap{g: g}
}

func (h *trialHeap) Len() int { return len(h.items) }

func (h *trialHeap) Less(i, j int) bool {
	return h.g.cells[h.items[i]].ArrivalTime < h.g.cells[h.items[j]].ArrivalTime
}

func (h *trialHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.g.cells[h.items[i]].heap = i
	h.g.cells[h.items[j]].heap = j
}

func (h *trialHeap) Push(x any) {
	idx := x.(int)
	h.g.cells[idx].heap = len(h.items)
	h.items = append(h.items, idx)
}

func (h *trialHeap) Pop() any {
	old := h.items
	n := len(old)
	idx := old[n-1]
	h.items = old[:n-1]
	h.g.cells[idx].heap = -1
	return idx
}

func (h *trialHeap) push(idx int)     { heap.Push(h, idx) }
func (h *trialHeap) decrease(idx int) { heap.Fix(h, h.g.cells[idx].heap) }
func (h *trialHeap) popMin() int      { return heap.Pop(h).(int) }
func (h *trialHeap) len() int         { return h.Len() }

// trialList finds the minimum by a linear scan.
type trialList struct {
	g     *GridMap
	items []int
}

func newTrialList(g *GridMap) *trialList {
	return &trialList{g: g}
}

func (l *trialList) push(idx int) {
	l.items = append(l.items, idx)
}

// decrease is a no-op, the scan reads the current times.
func (l *trialList) decrease(int) {}

func (l *trialList) popMin() int {
	best := 0
	for i := 1; i < len(l.items); i++ {
		if l.g.cells[l.items[i]].ArrivalTime < l.g.cells[l.items[best]].ArrivalTime {
			best = i
		}
	}
	idx := l.items[best]
	last := len(l.items) - 1
	l.items[best] = l.items[last]
	l.items = l.items[:last]
	return idx
}

func (l *trialList) len() int { return len(l.items) }
