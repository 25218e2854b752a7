package tabu

// Move relocates Item from container Source to container Destination.
// Indices refer to the solution the move was generated from.
type Move struct {
	Item        int `json:"item"`
	Source      int `json:"source"`
	Destination int `json:"destination"`
}

// Memory is the short-term tabu list: a FIFO of the last tenure moves with
// constant-time membership.
type Memory struct {
	tenure int
	queue  []Move
	counts map[Move]int
}

// NewMemory returns an empty memory holding at most tenure moves.
func NewMemory(tenure int) *Memory {
	return &Memory{
		tenure: tenure,
		queue:  make([]Move, 0, tenure+1),
		counts: make(map[Move]int, tenure+1),
	}
}

// Push records m and evicts the oldest move once the tenure is exceeded.
// A move pushed twice stays tabu until both entries are evicted.
func (m *Memory) Push(move Move) {
	m.queue = append(m.queue, move)
	m.counts[move]++
	for len(m.queue) > m.tenure {
		oldest := m.queue[0]
		m.queue = m.queue[1:]
		if m.counts[oldest]--; m.counts[oldest] <= 0 {
			delete(m.counts, oldest)
		}
	}
}

// Contains reports whether move is currently tabu.
func (m *Memory) Contains(move Move) bool {
	return m.counts[move] > 0
}

func (m *Memory) Len() int {
	return len(m.queue)
}
