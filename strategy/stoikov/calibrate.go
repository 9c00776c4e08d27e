package stoikov

import (
	"sort"

	"stoikov-maker-go/market"
	"stoikov-maker-go/sim"
)

// Calibrator replays a bounded historical window through a simulator and
// feeds the transition-model estimator. It is strictly a training-time
// component: the midprice series and the future-price lookup it retains
// are never reachable from the online quoting loop.
type Calibrator struct {
	est         *Estimator
	lookaheadNs int64

	times []int64
	mids  []float64
}

// NewCalibrator builds a calibrator over the discretizer's state space.
func NewCalibrator(disc *Discretizer, lookaheadNs int64) *Calibrator {
	return &Calibrator{
		est:         NewEstimator(disc),
		lookaheadNs: lookaheadNs,
	}
}

// Replay drains the simulator, recording one (I, S, M) observation per
// book-carrying update. Unknown update variants are impossible during
// calibration: own trades never occur because no orders are placed.
func (c *Calibrator) Replay(s sim.Sim) {
	book := market.NewBookState()
	for {
		_, updates, ok := s.Tick()
		if !ok {
			return
		}
		for _, u := range updates {
			md, isMd := u.(market.MdUpdate)
			if !isMd || md.Book == nil {
				continue
			}
			book.Apply(md)
			c.est.Observe(book.Imbalance(), book.HalfSpread(), book.Mid())
			c.times = append(c.times, md.ReceiveTs)
			c.mids = append(c.mids, book.Mid())
		}
	}
}

// Model normalizes the accumulated observations. Fails with
// ErrNoObservations when the window was empty.
func (c *Calibrator) Model() (*TransitionModel, error) {
	return c.est.Model()
}

// FuturePrice returns the first recorded midprice at or after
// ts + lookahead, and false when the window ends before that point.
// Replay-only: exists for offline model analysis.
func (c *Calibrator) FuturePrice(ts int64) (float64, bool) {
	target := ts + c.lookaheadNs
	i := sort.Search(len(c.times), func(i int) bool { return c.times[i] >= target })
	if i == len(c.times) {
		return 0, false
	}
	return c.mids[i], true
}
