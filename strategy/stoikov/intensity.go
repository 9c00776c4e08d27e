package stoikov

// IntensityEstimator tracks trade sizes over a sliding time window and
// reports a doubly normalized order intensity:
// (window sum / reference sum) / (window span / reference span).
// No estimate exists until the record count first exceeds minSamples.
type IntensityEstimator struct {
	windowNs   int64
	minSamples int
	refSum     float64
	refSpanNs  float64

	samples *sampleRing
	sum     float64

	value  float64
	spanNs int64
	ready  bool
}

// NewIntensityEstimator builds an estimator over a windowNs sliding
// window, holding at most maxSamples records.
func NewIntensityEstimator(windowNs int64, minSamples, maxSamples int, refSum, refSpanNs float64) *IntensityEstimator {
	return &IntensityEstimator{
		windowNs:   windowNs,
		minSamples: minSamples,
		refSum:     refSum,
		refSpanNs:  refSpanNs,
		samples:    newSampleRing(maxSamples),
	}
}

// Record registers one observed trade size. Called for both public trades
// and own executions.
func (e *IntensityEstimator) Record(ts int64, size float64) {
	_, dropped, ok := e.samples.Push(ts, size)
	e.sum += size
	if ok {
		e.sum -= dropped
	}
}

// Update evicts records older than the window and refreshes the estimate.
// Until the sample count exceeds the minimum the estimate stays unset; a
// zero window span leaves the previous estimate in place.
func (e *IntensityEstimator) Update() {
	if e.samples.Len() <= e.minSamples {
		return
	}
	for e.samples.BackTs()-e.samples.FrontTs() > e.windowNs {
		_, v, _ := e.samples.PopFront()
		e.sum -= v
	}
	span := e.samples.BackTs() - e.samples.FrontTs()
	if span <= 0 {
		return
	}
	scaledSum := e.sum / e.refSum
	scaledSpan := float64(span) / e.refSpanNs
	e.value = scaledSum / scaledSpan
	e.spanNs = span
	e.ready = true
}

// Value returns the scaled intensity and whether it is initialized.
func (e *IntensityEstimator) Value() (float64, bool) {
	return e.value, e.ready
}

// IsReady reports whether the minimum sample threshold was ever crossed.
func (e *IntensityEstimator) IsReady() bool { return e.ready }

// WindowSpan is the time span of the retained window, in nanoseconds.
func (e *IntensityEstimator) WindowSpan() int64 { return e.spanNs }
