package market

import "math"

// BookState tracks the current top of book across a stream of updates.
// Sizes start at 1 so the imbalance is defined before the first snapshot.
type BookState struct {
	BestBid float64
	BestAsk float64
	BidSize float64
	AskSize float64
}

// NewBookState returns a book with sentinel prices (-Inf bid, +Inf ask).
func NewBookState() BookState {
	return BookState{
		BestBid: math.Inf(-1),
		BestAsk: math.Inf(1),
		BidSize: 1,
		AskSize: 1,
	}
}

// Apply folds a market data update into the book top.
func (b *BookState) Apply(u MdUpdate) {
	if u.Book == nil {
		return
	}
	b.BestBid = u.Book.BestBid
	b.BestAsk = u.Book.BestAsk
	b.BidSize = u.Book.BidSize
	b.AskSize = u.Book.AskSize
}

// Valid reports whether both sides of the book have been observed.
func (b *BookState) Valid() bool {
	return !math.IsInf(b.BestBid, -1) && !math.IsInf(b.BestAsk, 1)
}

// Imbalance is bid size / (bid size + ask size) at top of book.
func (b *BookState) Imbalance() float64 {
	total := b.BidSize + b.AskSize
	if total == 0 {
		return 0
	}
	return b.BidSize / total
}

// HalfSpread is (best ask - best bid) / 2.
func (b *BookState) HalfSpread() float64 {
	return (b.BestAsk - b.BestBid) / 2
}

// Mid is (best ask + best bid) / 2.
func (b *BookState) Mid() float64 {
	return (b.BestAsk + b.BestBid) / 2
}
