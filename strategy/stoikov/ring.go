package stoikov

// sampleRing is a fixed-capacity FIFO of (timestamp, value) samples.
// Pushing onto a full ring evicts the oldest sample, so memory stays
// bounded by the configured window regardless of feed rate.
type sampleRing struct {
	ts   []int64
	vals []float64
	head int
	n    int
}

func newSampleRing(capacity int) *sampleRing {
	return &sampleRing{
		ts:   make([]int64, capacity),
		vals: make([]float64, capacity),
	}
}

// Push appends a sample, returning the evicted one if the ring was full.
func (r *sampleRing) Push(ts int64, v float64) (droppedTs int64, droppedVal float64, dropped bool) {
	if r.n == len(r.ts) {
		droppedTs, droppedVal, dropped = r.PopFront()
	}
	idx := (r.head + r.n) % len(r.ts)
	r.ts[idx] = ts
	r.vals[idx] = v
	r.n++
	return droppedTs, droppedVal, dropped
}

// PopFront removes and returns the oldest sample.
func (r *sampleRing) PopFront() (int64, float64, bool) {
	if r.n == 0 {
		return 0, 0, false
	}
	ts, v := r.ts[r.head], r.vals[r.head]
	r.head = (r.head + 1) % len(r.ts)
	r.n--
	return ts, v, true
}

func (r *sampleRing) Len() int { return r.n }

// FrontTs is the oldest retained timestamp. Callers must check Len first.
func (r *sampleRing) FrontTs() int64 { return r.ts[r.head] }

// BackTs is the newest retained timestamp. Callers must check Len first.
func (r *sampleRing) BackTs() int64 {
	return r.ts[(r.head+r.n-1)%len(r.ts)]
}

// At returns the i-th oldest sample value, 0 <= i < Len.
func (r *sampleRing) At(i int) float64 {
	return r.vals[(r.head+i)%len(r.ts)]
}
