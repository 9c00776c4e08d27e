package stoikov

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularModel is returned when (I - Q) cannot be inverted, which
// happens when Q carries an eigenvalue at 1 (a state that never resolves).
var ErrSingularModel = errors.New("(I - Q) is singular or ill-conditioned")

// SolveAdjustment computes the per-state expected future mid-price
// adjustment: Qi = (I-Q)^-1, G = Qi R K, B = Qi T, then the truncated
// Neumann series for adjustment = G + B adjustment. The iteration count is
// fixed (no convergence check); a positive tolerance stops early once a
// term's max-abs entry falls below it. Divergence when B's spectral
// radius reaches 1 is a property of the model, not guarded here.
func SolveAdjustment(m *TransitionModel, cfg SolverConfig) ([]float64, error) {
	nm := m.Disc.States()
	k := m.Disc.DeltaBuckets()

	imq := identity(nm)
	imq.Sub(imq, m.Q)
	var qi mat.Dense
	if err := qi.Inverse(imq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularModel, err)
	}

	kVec := mat.NewVecDense(k, append([]float64(nil), m.Disc.KEdges...))
	rk := mat.NewVecDense(nm, nil)
	rk.MulVec(m.R, kVec)
	g := mat.NewVecDense(nm, nil)
	g.MulVec(&qi, rk)

	var b mat.Dense
	b.Mul(&qi, m.T)

	adjustment := mat.NewVecDense(nm, nil)
	product := identity(nm)
	term := mat.NewVecDense(nm, nil)
	for i := 0; i < cfg.Iterations; i++ {
		term.MulVec(product, g)
		adjustment.AddVec(adjustment, term)
		if cfg.Tolerance > 0 && maxAbs(term) < cfg.Tolerance {
			break
		}
		var next mat.Dense
		next.Mul(product, &b)
		product = &next
	}

	out := make([]float64, nm)
	copy(out, adjustment.RawVector().Data)
	return out, nil
}

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

func maxAbs(v *mat.VecDense) float64 {
	m := 0.0
	for i := 0; i < v.Len(); i++ {
		m = math.Max(m, math.Abs(v.AtVec(i)))
	}
	return m
}
