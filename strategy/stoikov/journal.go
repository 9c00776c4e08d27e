package stoikov

// QuoteRecord captures one completed quote cycle.
type QuoteRecord struct {
	Ts int64

	BestBid     float64
	BestAsk     float64
	Mid         float64
	StockSpread float64

	Adjustment        float64
	IndifferencePrice float64
	Spread            float64
	BidPlace          float64
	AskPlace          float64

	Volatility     float64
	OrderIntensity float64
	OIWindowNs     int64
}

// FillRecord captures strategy state after one own-trade execution.
type FillRecord struct {
	Ts int64

	AssetPosition  float64
	USDPosition    float64
	TotalLiquidity float64
	PnL            float64
	PnLAfterFees   float64
}

// Journal is the strategy's append-only event log: one typed record
// stream per metric family, written only by the quoting loop.
type Journal struct {
	Quotes []QuoteRecord
	Fills  []FillRecord
}
