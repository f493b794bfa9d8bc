package comm

// Group is an in-process worker group. Each rank runs in its own goroutine
// and talks to the others through channels only, mirroring the broker-backed
// topology: a single inbox drained by the coordinator for gather legs, and
// one buffered channel per rank for distribution legs.
type Group struct {
	size int

	contribIn chan contribution
	countsIn  chan []int64
	segIn     chan gatherSegment
	tokenIn   chan struct{}

	rangeOut  []chan [2]int32
	bcastOut  []chan []int32
	gatherOut []chan []int32
	release   []chan struct{}
}

type contribution struct {
	min, max int32
}

type gatherSegment struct {
	rank   int
	values []int32
}

// NewGroup creates an in-process group of the given size. Call Communicator
// once per rank and run each returned member in its own goroutine.
func NewGroup(size int) *Group {
	g := &Group{
		size:      size,
		contribIn: make(chan contribution, size),
		countsIn:  make(chan []int64, size),
		segIn:     make(chan gatherSegment, size),
		tokenIn:   make(chan struct{}, size),
		rangeOut:  make([]chan [2]int32, size),
		bcastOut:  make([]chan []int32, size),
		gatherOut: make([]chan []int32, size),
		release:   make([]chan struct{}, size),
	}
	for i := 0; i < size; i++ {
		g.rangeOut[i] = make(chan [2]int32, 1)
		g.bcastOut[i] = make(chan []int32, 1)
		g.gatherOut[i] = make(chan []int32, 1)
		g.release[i] = make(chan struct{}, 1)
	}
	return g
}

// Communicator returns the group member for the given rank.
func (g *Group) Communicator(rank int) Communicator {
	return &member{group: g, rank: rank}
}

type member struct {
	group *Group
	rank  int
}

func (m *member) Rank() int { return m.rank }

func (m *member) Size() int { return m.group.size }

func (m *member) AllReduceMinMax(localMin, localMax int32) (int32, int32, error) {
	g := m.group
	if m.rank == CoordinatorRank {
		min, max := localMin, localMax
		for i := 1; i < g.size; i++ {
			c := <-g.contribIn
			if c.min < min {
				min = c.min
			}
			if c.max > max {
				max = c.max
			}
		}
		for i := 0; i < g.size; i++ {
			g.rangeOut[i] <- [2]int32{min, max}
		}
	} else {
		g.contribIn <- contribution{min: localMin, max: localMax}
	}

	reduced := <-g.rangeOut[m.rank]
	return reduced[0], reduced[1], nil
}

func (m *member) SendCounts(root int, counts []int64) error {
	sent := make([]int64, len(counts))
	copy(sent, counts)
	m.group.countsIn <- sent
	return nil
}

func (m *member) RecvCounts() ([]int64, error) {
	return <-m.group.countsIn, nil
}

func (m *member) Bcast(root int, data []int32) ([]int32, error) {
	g := m.group
	if m.rank == root {
		for i := 0; i < g.size; i++ {
			out := make([]int32, len(data))
			copy(out, data)
			g.bcastOut[i] <- out
		}
	}
	return <-g.bcastOut[m.rank], nil
}

func (m *member) Allgather(local []int32) ([]int32, error) {
	g := m.group
	sent := make([]int32, len(local))
	copy(sent, local)
	g.segIn <- gatherSegment{rank: m.rank, values: sent}

	if m.rank == CoordinatorRank {
		total := make([]int32, g.size*len(local))
		for i := 0; i < g.size; i++ {
			seg := <-g.segIn
			copy(total[seg.rank*len(seg.values):], seg.values)
		}
		for i := 0; i < g.size; i++ {
			out := make([]int32, len(total))
			copy(out, total)
			g.gatherOut[i] <- out
		}
	}

	return <-g.gatherOut[m.rank], nil
}

func (m *member) Barrier() error {
	g := m.group
	if m.rank == CoordinatorRank {
		for i := 1; i < g.size; i++ {
			<-g.tokenIn
		}
		for i := 0; i < g.size; i++ {
			g.release[i] <- struct{}{}
		}
	} else {
		g.tokenIn <- struct{}{}
	}

	<-g.release[m.rank]
	return nil
}
