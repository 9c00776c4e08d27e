package sim

import "stoikov-maker-go/market"

// Sim is the strategy's only interaction point with the outside world: a
// pull-based, replay-ordered event simulator. Tick returns the next batch
// of updates in emission order; ok == false is the end-of-data sentinel.
type Sim interface {
	Tick() (ts int64, updates []market.Update, ok bool)
	PlaceOrder(ts int64, size float64, side market.Side, price float64) market.Order
	CancelOrder(ts int64, id int64)
}
