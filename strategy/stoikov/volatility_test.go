package stoikov

import "testing"

const second = int64(1_000_000_000)

func TestVolatilityConstantPrices(t *testing.T) {
	v := NewVolatilityEstimator(second, 5, 2.0)

	// feed well past the horizon; constant prices have zero variance
	for i := 0; i < 20; i++ {
		v.Observe(100.0, int64(i+1)*2*second)
	}
	got, ok := v.Value()
	if !ok {
		t.Fatal("estimator should be ready")
	}
	if got != 0 {
		t.Errorf("volatility = %v, want exactly 0 for constant prices", got)
	}
}

func TestVolatilityNotReadyBeforeFirstSample(t *testing.T) {
	v := NewVolatilityEstimator(second, 5, 1.0)
	if v.IsReady() {
		t.Fatal("fresh estimator must not be ready")
	}
	if _, ok := v.Value(); ok {
		t.Fatal("Value must report uninitialized before any sample")
	}
	v.Observe(100, second)
	if !v.IsReady() {
		t.Fatal("estimator must be ready after first sample")
	}
}

func TestVolatilityCooldown(t *testing.T) {
	v := NewVolatilityEstimator(10*second, 100, 1.0)

	v.Observe(100, 1*second)
	v.Observe(200, 2*second)  // within cooldown, dropped
	v.Observe(300, 11*second) // still within cooldown (10s not exceeded)
	if v.window.Len() != 1 {
		t.Fatalf("window holds %d samples, want 1", v.window.Len())
	}
	v.Observe(300, 12*second) // cooldown exceeded
	if v.window.Len() != 2 {
		t.Fatalf("window holds %d samples, want 2", v.window.Len())
	}
}

func TestVolatilityHorizonEviction(t *testing.T) {
	v := NewVolatilityEstimator(0, 3, 1.0)
	for i := 0; i < 10; i++ {
		v.Observe(float64(100+i), int64(i+1)*second)
	}
	if v.window.Len() != 3 {
		t.Fatalf("window holds %d samples, want horizon 3", v.window.Len())
	}
	// oldest retained is the 8th sample
	if got := v.window.At(0); got != 107 {
		t.Errorf("oldest retained sample = %v, want 107", got)
	}
}

func TestVolatilityScaling(t *testing.T) {
	// two samples 100 and 102: population variance is 1
	v := NewVolatilityEstimator(0, 10, 4.0)
	v.Observe(100, 1*second)
	v.Observe(102, 2*second)
	got, ok := v.Value()
	if !ok {
		t.Fatal("estimator should be ready")
	}
	if got != 0.25 {
		t.Errorf("scaled volatility = %v, want 0.25", got)
	}
}
