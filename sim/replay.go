package sim

import (
	"sort"

	"stoikov-maker-go/market"
)

// Replay is an in-memory Sim over a recorded market data feed. Updates
// sharing a receive timestamp are delivered as one tick. Resting orders
// fill when the book or a trade crosses their price; execution latency is
// zero, so fills are appended to the tick that triggered them.
type Replay struct {
	feed []market.MdUpdate
	pos  int

	nextID  int64
	resting map[int64]market.Order
}

// NewReplay builds a simulator over the feed, sorting it by receive time.
func NewReplay(feed []market.MdUpdate) *Replay {
	sorted := append([]market.MdUpdate(nil), feed...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReceiveTs < sorted[j].ReceiveTs
	})
	return &Replay{
		feed:    sorted,
		resting: make(map[int64]market.Order),
	}
}

// Tick returns the next batch of updates, or ok == false at end of data.
func (s *Replay) Tick() (int64, []market.Update, bool) {
	if s.pos >= len(s.feed) {
		return 0, nil, false
	}
	ts := s.feed[s.pos].ReceiveTs
	var updates []market.Update
	for s.pos < len(s.feed) && s.feed[s.pos].ReceiveTs == ts {
		u := s.feed[s.pos]
		updates = append(updates, u)
		updates = append(updates, s.match(u)...)
		s.pos++
	}
	return ts, updates, true
}

// match fills resting orders crossed by the update.
func (s *Replay) match(u market.MdUpdate) []market.Update {
	var fills []market.Update
	for id, o := range s.resting {
		if !s.crossed(o, u) {
			continue
		}
		delete(s.resting, id)
		fills = append(fills, market.OwnTrade{
			OrderID:   id,
			Side:      o.Side,
			Price:     o.Price,
			Size:      o.Size,
			ReceiveTs: u.ReceiveTs,
		})
	}
	// stable order for determinism: map iteration is randomized
	sort.Slice(fills, func(i, j int) bool {
		return fills[i].(market.OwnTrade).OrderID < fills[j].(market.OwnTrade).OrderID
	})
	return fills
}

func (s *Replay) crossed(o market.Order, u market.MdUpdate) bool {
	if u.Trade != nil {
		if o.Side == market.Bid && u.Trade.Price <= o.Price {
			return true
		}
		if o.Side == market.Ask && u.Trade.Price >= o.Price {
			return true
		}
	}
	if u.Book != nil {
		if o.Side == market.Bid && u.Book.BestAsk <= o.Price {
			return true
		}
		if o.Side == market.Ask && u.Book.BestBid >= o.Price {
			return true
		}
	}
	return false
}

// PlaceOrder registers a resting limit order and returns it.
func (s *Replay) PlaceOrder(ts int64, size float64, side market.Side, price float64) market.Order {
	s.nextID++
	o := market.Order{
		ID:      s.nextID,
		Side:    side,
		Price:   price,
		Size:    size,
		PlaceTs: ts,
		Status:  market.StatusPlaced,
	}
	s.resting[o.ID] = o
	return o
}

// CancelOrder removes a resting order. Unknown ids are ignored, matching
// the venue semantics of canceling an already-filled order.
func (s *Replay) CancelOrder(ts int64, id int64) {
	delete(s.resting, id)
}

// Resting reports how many orders are currently on the book.
func (s *Replay) Resting() int { return len(s.resting) }
