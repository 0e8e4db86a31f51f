package solver

// bitset is a fixed-size set of location indices. Membership checks and
// copies are cheap, which matters because every child node carries its own
// independent visited set.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) has(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }

func (b bitset) set(i int) { b[i>>6] |= 1 << (uint(i) & 63) }

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}

// searchNode is an immutable snapshot of one partial tour in the implicit
// search tree. A node with depth == n has visited every location but has not
// yet closed the tour back to the start. Nodes are never mutated after
// creation; each owns its own path and visited copies.
type searchNode struct {
	path    []int
	visited bitset
	cost    float64
	bound   float64
	depth   int
	seq     uint64
}

func (nd *searchNode) last() int { return nd.path[nd.depth-1] }

// nodeQueue is a min-heap over bound with FIFO insertion order as the
// tie-break, so expansion order is reproducible across runs.
type nodeQueue []*searchNode

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*searchNode)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return nd
}
