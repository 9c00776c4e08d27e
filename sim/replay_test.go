package sim

import (
	"testing"

	"stoikov-maker-go/market"
)

func bookUpdate(ts int64, bid, ask float64) market.MdUpdate {
	return market.MdUpdate{
		ReceiveTs: ts,
		Book:      &market.BookTop{BestBid: bid, BestAsk: ask, BidSize: 1, AskSize: 1},
	}
}

func tradeUpdate(ts int64, price, size float64, side market.Side) market.MdUpdate {
	return market.MdUpdate{
		ReceiveTs: ts,
		Trade:     &market.Trade{Price: price, Size: size, Side: side, ReceiveTs: ts},
	}
}

func TestReplayBatchesByTimestamp(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(10, 100, 101),
		bookUpdate(10, 100, 102),
		bookUpdate(20, 100, 101),
	})

	ts, updates, ok := s.Tick()
	if !ok || ts != 10 {
		t.Fatalf("first tick = (%d, %v), want ts 10", ts, ok)
	}
	if len(updates) != 2 {
		t.Fatalf("first tick carries %d updates, want 2", len(updates))
	}

	ts, updates, ok = s.Tick()
	if !ok || ts != 20 || len(updates) != 1 {
		t.Fatalf("second tick = (%d, %d updates, %v), want (20, 1, true)", ts, len(updates), ok)
	}

	if _, _, ok = s.Tick(); ok {
		t.Fatal("expected end-of-data sentinel")
	}
}

func TestReplaySortsFeed(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(30, 100, 101),
		bookUpdate(10, 100, 101),
		bookUpdate(20, 100, 101),
	})
	var got []int64
	for {
		ts, _, ok := s.Tick()
		if !ok {
			break
		}
		got = append(got, ts)
	}
	want := []int64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick order = %v, want %v", got, want)
		}
	}
}

func TestReplayFillsCrossedBid(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(10, 100, 102),
		tradeUpdate(20, 99.5, 1, market.Ask),
	})
	s.Tick()

	o := s.PlaceOrder(10, 0.5, market.Bid, 99.6)
	if o.ID != 1 || o.Status != market.StatusPlaced {
		t.Fatalf("unexpected placed order %+v", o)
	}

	ts, updates, ok := s.Tick()
	if !ok || ts != 20 {
		t.Fatalf("tick = (%d, %v), want ts 20", ts, ok)
	}
	if len(updates) != 2 {
		t.Fatalf("tick carries %d updates, want md + fill", len(updates))
	}
	fill, isFill := updates[1].(market.OwnTrade)
	if !isFill {
		t.Fatalf("updates[1] is %T, want OwnTrade", updates[1])
	}
	if fill.OrderID != o.ID || fill.Side != market.Bid || fill.Price != o.Price || fill.Size != o.Size {
		t.Errorf("fill %+v does not match order %+v", fill, o)
	}
	if fill.ReceiveTs != 20 {
		t.Errorf("fill ts = %d, want the crossing update's ts", fill.ReceiveTs)
	}
	if s.Resting() != 0 {
		t.Errorf("order still resting after its fill")
	}
}

func TestReplayFillsAskOnBookCross(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(10, 100, 102),
		bookUpdate(20, 103, 104), // best bid jumps through the ask quote
	})
	s.Tick()
	o := s.PlaceOrder(10, 1, market.Ask, 102.5)

	_, updates, _ := s.Tick()
	if len(updates) != 2 {
		t.Fatalf("tick carries %d updates, want md + fill", len(updates))
	}
	fill := updates[1].(market.OwnTrade)
	if fill.OrderID != o.ID || fill.Side != market.Ask {
		t.Errorf("unexpected fill %+v", fill)
	}
}

func TestReplayNoFillWhenNotCrossed(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(10, 100, 102),
		tradeUpdate(20, 101, 1, market.Bid),
	})
	s.Tick()
	s.PlaceOrder(10, 1, market.Bid, 99)
	s.PlaceOrder(10, 1, market.Ask, 103)

	_, updates, _ := s.Tick()
	if len(updates) != 1 {
		t.Fatalf("tick carries %d updates, want only the trade", len(updates))
	}
	if s.Resting() != 2 {
		t.Errorf("resting = %d, want 2", s.Resting())
	}
}

func TestReplayFillsOrderedByID(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(10, 100, 102),
		tradeUpdate(20, 99, 1, market.Ask),
	})
	s.Tick()
	for i := 0; i < 4; i++ {
		s.PlaceOrder(10, 1, market.Bid, 99.5)
	}

	_, updates, _ := s.Tick()
	if len(updates) != 5 {
		t.Fatalf("tick carries %d updates, want md + 4 fills", len(updates))
	}
	var prev int64
	for _, u := range updates[1:] {
		fill := u.(market.OwnTrade)
		if fill.OrderID <= prev {
			t.Fatalf("fills out of id order: %d after %d", fill.OrderID, prev)
		}
		prev = fill.OrderID
	}
}

func TestReplayCancelOrder(t *testing.T) {
	s := NewReplay([]market.MdUpdate{
		bookUpdate(10, 100, 102),
		tradeUpdate(20, 99, 1, market.Ask),
	})
	s.Tick()
	o := s.PlaceOrder(10, 1, market.Bid, 99.5)
	s.CancelOrder(15, o.ID)
	s.CancelOrder(15, 999) // unknown id is a no-op

	_, updates, _ := s.Tick()
	if len(updates) != 1 {
		t.Errorf("canceled order filled anyway: %d updates", len(updates))
	}
	if s.Resting() != 0 {
		t.Errorf("resting = %d, want 0", s.Resting())
	}
}
