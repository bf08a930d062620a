// SPDX-License-Identifier: MIT

package construct

// pqItem is a frontier entry; it copies the label's ordering key so the heap
// never has to look into the label store.
type pqItem struct {
	cost  int
	depth int
	state State
	seq   int
	idx   int // index into runner.labels
}

// labelPQ is a min-heap of pqItem ordered by (cost, depth, state, seq).
// Dominated labels stay in the heap and are skipped when popped.
type labelPQ []pqItem

func (pq labelPQ) Len() int { return len(pq) }

func (pq labelPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	switch {
	case a.cost != b.cost:
		return a.cost < b.cost
	case a.depth != b.depth:
		return a.depth < b.depth
	case a.state != b.state:
		return a.state.Less(b.state)
	default:
		return a.seq < b.seq
	}
}

func (pq labelPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *labelPQ) Push(x any) { *pq = append(*pq, x.(pqItem)) }

func (pq *labelPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
