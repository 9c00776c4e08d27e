package stoikov

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoObservations is returned when a calibration window produced no
// usable state transitions, leaving the whole model undefined.
var ErrNoObservations = errors.New("transition model has no observed states")

// TransitionModel is the calibrated (Q, R, T) triple. Q holds same-price
// state transitions, T price-move transitions, R the price-move size
// distribution per state. Rows are normalized by the per-state
// observation count, so rowsum(Q) + rowsum(T) == 1 and rowsum(R) == 1.
// Built once before the quoting loop starts and read-only afterwards.
type TransitionModel struct {
	Q *mat.Dense
	R *mat.Dense
	T *mat.Dense

	Disc *Discretizer
}

// Estimator accumulates transition counts from a chronological stream of
// (imbalance, spread, mid) observations.
type Estimator struct {
	disc *Discretizer

	counts   []float64
	qSuccess []float64
	rSuccess []float64
	tSuccess []float64

	prevSet        bool
	prevI, prevS   float64
	prevM          float64
}

// NewEstimator creates an estimator over the discretizer's state space.
func NewEstimator(disc *Discretizer) *Estimator {
	nm := disc.States()
	k := disc.DeltaBuckets()
	return &Estimator{
		disc:     disc,
		counts:   make([]float64, nm),
		qSuccess: make([]float64, nm*nm),
		rSuccess: make([]float64, nm*k),
		tSuccess: make([]float64, nm*nm),
	}
}

// Observe feeds one (I, S, M) sample. Each consecutive pair of samples
// contributes one transition.
func (e *Estimator) Observe(imbalance, spread, mid float64) {
	if !e.prevSet {
		e.prevI, e.prevS, e.prevM = imbalance, spread, mid
		e.prevSet = true
		return
	}
	nm := e.disc.States()
	k := e.disc.DeltaBuckets()

	x := e.disc.JointIndex(e.prevI, e.prevS)
	xNext := e.disc.JointIndex(imbalance, spread)
	kIdx := e.disc.DeltaIndex(mid - e.prevM)

	e.counts[x]++
	e.rSuccess[x*k+kIdx]++
	if mid == e.prevM {
		e.qSuccess[x*nm+xNext]++
	} else {
		e.tSuccess[x*nm+xNext]++
	}

	e.prevI, e.prevS, e.prevM = imbalance, spread, mid
}

// Observations is the number of transitions accumulated so far.
func (e *Estimator) Observations() float64 {
	total := 0.0
	for _, c := range e.counts {
		total += c
	}
	return total
}

// Model normalizes the accumulated counts into probability matrices.
// Rows of states that were never observed are filled from the nearest
// observed row below them in state order, then any still-empty trailing
// rows from the nearest observed row above. If no state was observed at
// all the model is invalid and ErrNoObservations is returned.
func (e *Estimator) Model() (*TransitionModel, error) {
	nm := e.disc.States()
	k := e.disc.DeltaBuckets()

	q := mat.NewDense(nm, nm, nil)
	r := mat.NewDense(nm, k, nil)
	t := mat.NewDense(nm, nm, nil)

	defined := make([]bool, nm)
	any := false
	for x := 0; x < nm; x++ {
		c := e.counts[x]
		if c == 0 {
			continue
		}
		defined[x] = true
		any = true
		for j := 0; j < nm; j++ {
			q.Set(x, j, e.qSuccess[x*nm+j]/c)
			t.Set(x, j, e.tSuccess[x*nm+j]/c)
		}
		for j := 0; j < k; j++ {
			r.Set(x, j, e.rSuccess[x*k+j]/c)
		}
	}
	if !any {
		return nil, ErrNoObservations
	}

	fillRows(defined, q, r, t)

	return &TransitionModel{Q: q, R: r, T: t, Disc: e.disc}, nil
}

// fillRows backward-fills undefined rows from the nearest defined row at a
// higher state index, then forward-fills the remainder from below.
func fillRows(defined []bool, ms ...*mat.Dense) {
	nm := len(defined)
	filled := make([]bool, nm)
	copy(filled, defined)

	src := -1
	for x := nm - 1; x >= 0; x-- {
		if filled[x] {
			src = x
			continue
		}
		if src >= 0 {
			copyRow(ms, x, src)
			filled[x] = true
		}
	}
	src = -1
	for x := 0; x < nm; x++ {
		if filled[x] {
			src = x
			continue
		}
		if src >= 0 {
			copyRow(ms, x, src)
			filled[x] = true
		}
	}
}

func copyRow(ms []*mat.Dense, dst, src int) {
	for _, m := range ms {
		_, cols := m.Dims()
		for j := 0; j < cols; j++ {
			m.Set(dst, j, m.At(src, j))
		}
	}
}
