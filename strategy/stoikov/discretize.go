package stoikov

import "sort"

// Discretizer maps continuous (imbalance, half spread) pairs to joint
// discrete states and mid-price deltas to reward buckets. Edges are fixed
// at construction; lookups are pure.
type Discretizer struct {
	IEdges []float64
	SEdges []float64
	// KEdges doubles as the delta-bucket edges and the bucket midpoint
	// vector consumed by the solver.
	KEdges []float64
}

// NewDiscretizer builds edge vectors from the bucket configs. Imbalance
// and spread cells are right-open (the range endpoint is excluded); delta
// edges span the full range inclusive.
func NewDiscretizer(b BucketsConfig) *Discretizer {
	return &Discretizer{
		IEdges: openEdges(b.Imbalance),
		SEdges: openEdges(b.Spread),
		KEdges: closedEdges(b.Delta),
	}
}

func openEdges(c BucketConfig) []float64 {
	edges := make([]float64, c.Count)
	width := (c.Max - c.Min) / float64(c.Count)
	for i := range edges {
		edges[i] = c.Min + float64(i)*width
	}
	return edges
}

func closedEdges(c BucketConfig) []float64 {
	edges := make([]float64, c.Count)
	width := (c.Max - c.Min) / float64(c.Count-1)
	for i := range edges {
		edges[i] = c.Min + float64(i)*width
	}
	edges[c.Count-1] = c.Max
	return edges
}

// BucketIndex returns the index of the greatest edge <= v, clamped to 0
// for values below all edges. Edges must be sorted ascending.
func BucketIndex(edges []float64, v float64) int {
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// JointIndex maps an (imbalance, spread) pair to a state in [0, States()).
func (d *Discretizer) JointIndex(imbalance, spread float64) int {
	return BucketIndex(d.IEdges, imbalance)*len(d.SEdges) + BucketIndex(d.SEdges, spread)
}

// DeltaIndex maps a mid-price move to a reward bucket in [0, DeltaBuckets()).
func (d *Discretizer) DeltaIndex(dM float64) int {
	return BucketIndex(d.KEdges, dM)
}

// States is the number of joint (imbalance, spread) states.
func (d *Discretizer) States() int { return len(d.IEdges) * len(d.SEdges) }

// DeltaBuckets is the number of mid-price delta buckets.
func (d *Discretizer) DeltaBuckets() int { return len(d.KEdges) }
