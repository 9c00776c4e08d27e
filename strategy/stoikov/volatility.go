package stoikov

// VolatilityEstimator maintains a bounded window of periodically sampled
// best ask prices and reports their population variance scaled by a
// reference average. The estimate stays at its previous value between
// accepted samples; IsReady reports whether any sample has been taken.
type VolatilityEstimator struct {
	cooldownNs int64
	refVol     float64
	window     *sampleRing
	value      float64
	ready      bool
}

// NewVolatilityEstimator builds an estimator keeping at most horizon
// samples, at least cooldownNs apart, scaled by refVol.
func NewVolatilityEstimator(cooldownNs int64, horizon int, refVol float64) *VolatilityEstimator {
	return &VolatilityEstimator{
		cooldownNs: cooldownNs,
		refVol:     refVol,
		window:     newSampleRing(horizon),
	}
}

// Observe offers a best ask sample. It is recorded only when the cooldown
// since the last recorded sample has elapsed; the ring evicts the oldest
// sample once the horizon is full.
func (v *VolatilityEstimator) Observe(bestAsk float64, ts int64) {
	if v.window.Len() > 0 && ts-v.window.BackTs() <= v.cooldownNs {
		return
	}
	v.window.Push(ts, bestAsk)

	n := v.window.Len()
	mean := 0.0
	for i := 0; i < n; i++ {
		mean += v.window.At(i)
	}
	mean /= float64(n)
	variance := 0.0
	for i := 0; i < n; i++ {
		d := v.window.At(i) - mean
		variance += d * d
	}
	variance /= float64(n)

	v.value = variance / v.refVol
	v.ready = true
}

// Value returns the current scaled estimate and whether it is initialized.
func (v *VolatilityEstimator) Value() (float64, bool) {
	return v.value, v.ready
}

// IsReady reports whether at least one sample has been recorded.
func (v *VolatilityEstimator) IsReady() bool { return v.ready }
