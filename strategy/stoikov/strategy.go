// Package stoikov implements a market-making strategy quoting around an
// indifference price learned from a discrete-state transition model of
// order book imbalance and spread, with the spread from Stoikov's
// exponential-utility formula.
package stoikov

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"stoikov-maker-go/market"
	"stoikov-maker-go/metrics"
	"stoikov-maker-go/sim"
)

// Strategy places paired bid/ask orders every DelayNs and cancels any
// order resting longer than DelayNs. Single-threaded: Run owns all
// mutable state for the lifetime of one simulation.
type Strategy struct {
	cfg        Config
	disc       *Discretizer
	model      *TransitionModel
	adjustment []float64

	vol *VolatilityEstimator
	oi  *IntensityEstimator

	log *zap.Logger
}

// Result is everything one run produces: the four update/order sequences
// plus the typed journal, intended for external analysis.
type Result struct {
	Trades     []market.OwnTrade
	MarketData []market.MdUpdate
	Updates    []market.Update
	Orders     []market.Order
	Journal    Journal
}

// New validates the config and solves the per-state price adjustment from
// the calibrated model. Model construction and solver failures abort here,
// before any order can be placed.
func New(cfg Config, model *TransitionModel, log *zap.Logger) (*Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("strategy config: %w", err)
	}
	if model == nil {
		return nil, ErrNoObservations
	}
	if log == nil {
		log = zap.NewNop()
	}
	adjustment, err := SolveAdjustment(model, cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("solve price adjustment: %w", err)
	}
	return &Strategy{
		cfg:        cfg,
		disc:       model.Disc,
		model:      model,
		adjustment: adjustment,
		vol:        NewVolatilityEstimator(cfg.VolCooldownNs, cfg.VolHorizon, cfg.AvgVolatility),
		oi:         NewIntensityEstimator(cfg.OIWindowNs, cfg.OIMinSamples, cfg.OIMaxSamples, cfg.AvgSumOI, cfg.AvgTimeOINs),
		log:        log,
	}, nil
}

// Adjustment exposes the solved per-state price adjustment vector.
func (s *Strategy) Adjustment() []float64 { return s.adjustment }

// Run drives the simulator until end of data. Updates within one tick are
// processed in emission order; the bid is always placed before the ask.
func (s *Strategy) Run(sm sim.Sim) (*Result, error) {
	res := &Result{}
	book := market.NewBookState()

	var (
		assetPos float64
		usdPos   float64
		pnl      float64
		totalLiq float64
		midprice float64
	)
	// effectively -inf without risking int64 underflow in ts-lastQuote
	lastQuote := int64(math.MinInt64 / 2)
	ongoing := make(map[int64]market.Order)

	for {
		ts, updates, ok := sm.Tick()
		if !ok {
			break
		}
		res.Updates = append(res.Updates, updates...)

		for _, u := range updates {
			switch v := u.(type) {
			case market.MdUpdate:
				book.Apply(v)
				if book.Valid() {
					midprice = book.Mid()
					s.vol.Observe(book.BestAsk, v.ReceiveTs)
				}
				if v.Trade != nil {
					s.oi.Record(v.Trade.ReceiveTs, v.Trade.Size)
				}
				res.MarketData = append(res.MarketData, v)

			case market.OwnTrade:
				s.oi.Record(v.ReceiveTs, v.Size)
				res.Trades = append(res.Trades, v)
				delete(ongoing, v.OrderID)

				if v.Side == market.Ask {
					assetPos -= v.Size
					usdPos += v.Size * v.Price
				} else {
					assetPos += v.Size
					usdPos -= v.Size * v.Price
				}
				totalLiq += v.Size * v.Price
				pnl = assetPos*midprice + usdPos

				res.Journal.Fills = append(res.Journal.Fills, FillRecord{
					Ts:             ts,
					AssetPosition:  assetPos,
					USDPosition:    usdPos,
					TotalLiquidity: totalLiq,
					PnL:            pnl,
					PnLAfterFees:   pnl - totalLiq*s.cfg.OrderFees,
				})
				metrics.FillsTotal.Inc()
				metrics.UpdatePosition(assetPos, pnl, midprice)
				s.log.Info("fill",
					zap.Int64("orderId", v.OrderID),
					zap.String("side", string(v.Side)),
					zap.Float64("price", v.Price),
					zap.Float64("size", v.Size),
					zap.Float64("assetPosition", assetPos),
					zap.Float64("pnl", pnl),
				)

			default:
				// contract violation: the feed emitted an unknown variant
				return nil, fmt.Errorf("invalid update type %T", u)
			}
		}

		if ts-lastQuote >= s.cfg.DelayNs {
			lastQuote = ts
			s.quote(sm, ts, &book, ongoing, res)
		}

		for id, o := range ongoing {
			if ts >= o.PlaceTs+s.cfg.DelayNs {
				sm.CancelOrder(ts, id)
				delete(ongoing, id)
				metrics.OrdersCanceled.Inc()
			}
		}
	}
	return res, nil
}

// quote runs one quote cycle; it withholds orders until both rolling
// estimators have warmed up and both book sides have been seen.
func (s *Strategy) quote(sm sim.Sim, ts int64, book *market.BookState, ongoing map[int64]market.Order, res *Result) {
	s.oi.Update()
	vol, volReady := s.vol.Value()
	intensity, oiReady := s.oi.Value()
	if !volReady || !oiReady || !book.Valid() {
		metrics.CyclesSkipped.Inc()
		return
	}

	mid := book.Mid()
	state := s.disc.JointIndex(book.Imbalance(), book.HalfSpread())
	adjustment := s.adjustment[state]
	indiff := mid + adjustment
	spread := s.cfg.RiskCoef*vol + 2/s.cfg.RiskCoef*math.Log(1+s.cfg.RiskCoef/intensity)

	bidPlace := indiff - spread/2
	askPlace := indiff + spread/2

	bidOrder := sm.PlaceOrder(ts, s.cfg.OrderSize, market.Bid, bidPlace)
	askOrder := sm.PlaceOrder(ts, s.cfg.OrderSize, market.Ask, askPlace)
	ongoing[bidOrder.ID] = bidOrder
	ongoing[askOrder.ID] = askOrder
	res.Orders = append(res.Orders, bidOrder, askOrder)

	res.Journal.Quotes = append(res.Journal.Quotes, QuoteRecord{
		Ts:                ts,
		BestBid:           book.BestBid,
		BestAsk:           book.BestAsk,
		Mid:               mid,
		StockSpread:       book.BestAsk - book.BestBid,
		Adjustment:        adjustment,
		IndifferencePrice: indiff,
		Spread:            spread,
		BidPlace:          bidPlace,
		AskPlace:          askPlace,
		Volatility:        vol,
		OrderIntensity:    intensity,
		OIWindowNs:        s.oi.WindowSpan(),
	})
	metrics.UpdateQuote(indiff, spread, vol, intensity)
	metrics.OrdersPlaced.Add(2)
	s.log.Debug("quote",
		zap.Float64("mid", mid),
		zap.Float64("indifferencePrice", indiff),
		zap.Float64("spread", spread),
		zap.Int("state", state),
	)
}
