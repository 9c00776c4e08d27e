package market

// Side represents order side.
type Side string

const (
	Bid Side = "BID"
	Ask Side = "ASK"
)

// Update is the sealed union of everything the simulator can hand the
// strategy. Only MdUpdate and OwnTrade implement it; a type switch over an
// Update therefore needs no fallback branch beyond the contract-violation
// error.
type Update interface {
	ReceiveTime() int64
	isUpdate()
}

// BookTop is a top-of-book snapshot: best bid/ask price and size.
type BookTop struct {
	BestBid float64
	BestAsk float64
	BidSize float64
	AskSize float64
}

// Trade is a public trade observed on the feed.
type Trade struct {
	Price     float64
	Size      float64
	Side      Side
	ReceiveTs int64
}

// MdUpdate is a point-in-time market data update. Book and Trade are each
// optional; at least one is set. Immutable once produced by the feed.
type MdUpdate struct {
	ReceiveTs int64
	Book      *BookTop
	Trade     *Trade
}

func (u MdUpdate) ReceiveTime() int64 { return u.ReceiveTs }
func (u MdUpdate) isUpdate()          {}

// OwnTrade is an execution report for one of our resting orders.
type OwnTrade struct {
	OrderID   int64
	Side      Side
	Price     float64
	Size      float64
	ReceiveTs int64
}

func (u OwnTrade) ReceiveTime() int64 { return u.ReceiveTs }
func (u OwnTrade) isUpdate()          {}
