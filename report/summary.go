// Package report summarizes run results for the console.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"stoikov-maker-go/strategy/stoikov"
)

// Summary condenses one run into the numbers worth reading first.
type Summary struct {
	Quotes int
	Orders int
	Fills  int

	FinalAssetPosition float64
	FinalUSDPosition   float64
	TotalLiquidity     float64
	FinalPnL           float64
	FinalPnLAfterFees  float64
	MaxDrawdown        float64
}

// Summarize computes the run summary from the strategy result.
func Summarize(res *stoikov.Result) Summary {
	s := Summary{
		Quotes: len(res.Journal.Quotes),
		Orders: len(res.Orders),
		Fills:  len(res.Trades),
	}
	peak := 0.0
	for _, f := range res.Journal.Fills {
		if f.PnL > peak {
			peak = f.PnL
		}
		if dd := peak - f.PnL; dd > s.MaxDrawdown {
			s.MaxDrawdown = dd
		}
	}
	if n := len(res.Journal.Fills); n > 0 {
		last := res.Journal.Fills[n-1]
		s.FinalAssetPosition = last.AssetPosition
		s.FinalUSDPosition = last.USDPosition
		s.TotalLiquidity = last.TotalLiquidity
		s.FinalPnL = last.PnL
		s.FinalPnLAfterFees = last.PnLAfterFees
	}
	return s
}

// Render writes the summary as a console table.
func Render(w io.Writer, runID string, s Summary) {
	table := tablewriter.NewWriter(w)
	table.Header("Run", "Quotes", "Orders", "Fills", "Position", "Liquidity", "PnL", "PnL (fees)", "Max DD")
	table.Append(
		runID,
		fmt.Sprintf("%d", s.Quotes),
		fmt.Sprintf("%d", s.Orders),
		fmt.Sprintf("%d", s.Fills),
		fmt.Sprintf("%.6f", s.FinalAssetPosition),
		fmt.Sprintf("$%.2f", s.TotalLiquidity),
		fmt.Sprintf("$%.4f", s.FinalPnL),
		fmt.Sprintf("$%.4f", s.FinalPnLAfterFees),
		fmt.Sprintf("$%.4f", s.MaxDrawdown),
	)
	table.Render()
}
