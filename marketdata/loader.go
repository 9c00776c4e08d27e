// Package marketdata loads recorded feeds for the replay simulator.
package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"stoikov-maker-go/market"
)

// LoadCSV reads a recorded feed and returns at most the first window of
// updates, measured from the first row's receive timestamp. window <= 0
// loads the whole file.
//
// Columns: receive_ts,best_bid,best_ask,bid_size,ask_size and optionally
// trade_price,trade_size,trade_side (empty when the row carries no trade).
// A header row is detected by a non-numeric first field and skipped.
func LoadCSV(path string, window time.Duration) ([]market.MdUpdate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, window)
}

// ReadCSV parses feed rows from r; see LoadCSV.
func ReadCSV(r io.Reader, window time.Duration) ([]market.MdUpdate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		updates []market.MdUpdate
		firstTs int64
		line    int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read feed: %w", err)
		}
		line++
		if len(rec) < 5 {
			return nil, fmt.Errorf("feed line %d: want at least 5 fields, got %d", line, len(rec))
		}
		ts, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("feed line %d: bad timestamp %q", line, rec[0])
		}
		if len(updates) == 0 {
			firstTs = ts
		}
		if window > 0 && ts-firstTs > window.Nanoseconds() {
			break
		}

		u, err := parseRow(ts, rec)
		if err != nil {
			return nil, fmt.Errorf("feed line %d: %w", line, err)
		}
		updates = append(updates, u)
	}
	return updates, nil
}

func parseRow(ts int64, rec []string) (market.MdUpdate, error) {
	fields := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return market.MdUpdate{}, fmt.Errorf("bad field %q", rec[i+1])
		}
		fields[i] = v
	}
	u := market.MdUpdate{
		ReceiveTs: ts,
		Book: &market.BookTop{
			BestBid: fields[0],
			BestAsk: fields[1],
			BidSize: fields[2],
			AskSize: fields[3],
		},
	}
	if len(rec) >= 8 && rec[5] != "" {
		price, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return market.MdUpdate{}, fmt.Errorf("bad trade price %q", rec[5])
		}
		size, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return market.MdUpdate{}, fmt.Errorf("bad trade size %q", rec[6])
		}
		side := market.Side(rec[7])
		if side != market.Bid && side != market.Ask {
			return market.MdUpdate{}, fmt.Errorf("bad trade side %q", rec[7])
		}
		u.Trade = &market.Trade{Price: price, Size: size, Side: side, ReceiveTs: ts}
	}
	return u, nil
}
