package stoikov

import "errors"

// BucketConfig describes one equal-width bucket axis.
type BucketConfig struct {
	Count int     `yaml:"count"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// BucketsConfig groups the three discretization axes: order book imbalance,
// half spread, and mid-price delta (reward buckets).
type BucketsConfig struct {
	Imbalance BucketConfig `yaml:"imbalance"`
	Spread    BucketConfig `yaml:"spread"`
	Delta     BucketConfig `yaml:"delta"`
}

// SolverConfig controls the truncated Neumann iteration. Tolerance == 0
// keeps the fixed iteration count.
type SolverConfig struct {
	Iterations int     `yaml:"iterations"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Config holds all strategy parameters. Times are nanoseconds to match the
// feed timestamps.
type Config struct {
	// DelayNs is both the quoting cadence and the order hold time.
	DelayNs int64 `yaml:"delayNs"`
	// RiskCoef is gamma in the exponential-utility spread formula.
	RiskCoef float64 `yaml:"riskCoef"`
	// OrderSize is the quantity quoted on each side.
	OrderSize float64 `yaml:"orderSize"`
	// OrderFees is the maker fee rate; negative values are rebates.
	OrderFees float64 `yaml:"orderFees"`

	// OIWindowNs bounds the order-intensity sample window in time.
	OIWindowNs int64 `yaml:"oiWindowNs"`
	// OIMinSamples is how many records must accumulate before the
	// intensity estimate first becomes available.
	OIMinSamples int `yaml:"oiMinSamples"`
	// OIMaxSamples caps the intensity ring buffer.
	OIMaxSamples int `yaml:"oiMaxSamples"`
	// AvgSumOI and AvgTimeOINs are the reference window sum and span the
	// raw intensity is normalized by.
	AvgSumOI    float64 `yaml:"avgSumOI"`
	AvgTimeOINs float64 `yaml:"avgTimeOINs"`

	// VolCooldownNs is the minimum gap between volatility samples.
	VolCooldownNs int64 `yaml:"volCooldownNs"`
	// VolHorizon is how many samples the volatility window retains.
	VolHorizon int `yaml:"volHorizon"`
	// AvgVolatility is the reference the variance is scaled by.
	AvgVolatility float64 `yaml:"avgVolatility"`

	// LookaheadNs is the replay-only future-price horizon used during
	// calibration.
	LookaheadNs int64 `yaml:"lookaheadNs"`

	// Normalizer (min asset value) is a scaling hook carried from the
	// Stoikov formulation. Stored, currently unused.
	Normalizer float64 `yaml:"normalizer"`

	Buckets BucketsConfig `yaml:"buckets"`
	Solver  SolverConfig  `yaml:"solver"`
}

// DefaultConfig returns the parameterization the model was developed with.
func DefaultConfig() Config {
	return Config{
		DelayNs:      1_000_000_000,
		RiskCoef:     0.5,
		OrderSize:    0.001,
		OrderFees:    -0.00004,
		OIWindowNs:   30_000_000_000,
		OIMinSamples: 20,
		OIMaxSamples: 4096,
		AvgSumOI:     1.0,
		AvgTimeOINs:  30_000_000_000,

		VolCooldownNs: 1_000_000_000,
		VolHorizon:    100,
		AvgVolatility: 1.0,

		LookaheadNs: 1_000_000_000,

		Buckets: BucketsConfig{
			Imbalance: BucketConfig{Count: 10, Min: 0, Max: 1},
			Spread:    BucketConfig{Count: 20, Min: 0, Max: 2},
			Delta:     BucketConfig{Count: 13, Min: -0.3, Max: 0.3},
		},
		Solver: SolverConfig{Iterations: 20},
	}
}

// Validate checks the config before any calibration work starts.
func (c Config) Validate() error {
	if c.DelayNs <= 0 {
		return errors.New("delayNs must be > 0")
	}
	if c.RiskCoef <= 0 {
		return errors.New("riskCoef must be > 0")
	}
	if c.OrderSize <= 0 {
		return errors.New("orderSize must be > 0")
	}
	if c.OIWindowNs <= 0 {
		return errors.New("oiWindowNs must be > 0")
	}
	if c.OIMinSamples <= 0 {
		return errors.New("oiMinSamples must be > 0")
	}
	if c.OIMaxSamples <= c.OIMinSamples {
		return errors.New("oiMaxSamples must exceed oiMinSamples")
	}
	if c.AvgSumOI <= 0 || c.AvgTimeOINs <= 0 {
		return errors.New("intensity references must be > 0")
	}
	if c.VolCooldownNs < 0 {
		return errors.New("volCooldownNs must be >= 0")
	}
	if c.VolHorizon <= 0 {
		return errors.New("volHorizon must be > 0")
	}
	if c.AvgVolatility <= 0 {
		return errors.New("avgVolatility must be > 0")
	}
	if c.LookaheadNs < 0 {
		return errors.New("lookaheadNs must be >= 0")
	}
	for _, b := range []BucketConfig{c.Buckets.Imbalance, c.Buckets.Spread, c.Buckets.Delta} {
		if b.Count < 2 {
			return errors.New("bucket count must be >= 2")
		}
		if b.Max <= b.Min {
			return errors.New("bucket max must exceed min")
		}
	}
	if c.Solver.Iterations <= 0 {
		return errors.New("solver.iterations must be > 0")
	}
	if c.Solver.Tolerance < 0 {
		return errors.New("solver.tolerance must be >= 0")
	}
	return nil
}
