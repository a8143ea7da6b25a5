// Package bounds computes the read-only theoretical diagnostics reported
// alongside every solution: the raw inches demanded, a per-stock-option
// fractional cost/board estimate, the cheapest-per-inch stock option, and a
// lower bound on unavoidable waste. None of these numbers constrain the
// solve -- they exist purely so the final report can state a gap against an
// ideal, the way original_source/stock.py's calculate_theoretical_minimums
// does with pandas arithmetic.
package bounds

import (
	"github.com/shopspring/decimal"

	"github.com/heavybullets8/cutstock/internal/model"
)

// Compute derives a model.Bounds from the stock catalogue and demand list.
// Callers are expected to have already run ingest.ValidateFeasibility.
func Compute(stocks []model.StockOption, cuts []model.RequiredCut) model.Bounds {
	total := totalLengthNeeded(cuts)

	estimates := make([]model.PerStockEstimate, len(stocks))
	best, maxLen := 0, stocks[0].Length
	for i, s := range stocks {
		boards := total / s.Length
		estimates[i] = model.PerStockEstimate{
			StockIndex: i,
			Boards:     boards,
			Cost:       s.Price.Mul(decimal.NewFromFloat(boards)),
		}
		if s.PricePerInch().LessThan(stocks[best].PricePerInch()) {
			best = i
		}
		if s.Length > maxLen {
			maxLen = s.Length
		}
	}

	mostEfficient := model.StockEfficiency{
		StockIndex: best,
		Length:     stocks[best].Length,
		PricePerIn: stocks[best].PricePerInch(),
		Price:      stocks[best].Price,
	}

	minCost := mostEfficient.PricePerIn.Mul(decimal.NewFromFloat(total))

	// The waste lower bound is the first-fit-decreasing simulation over the
	// longest available stock length, including the final open board's
	// remnant, not a closed-form ceil(total/length)*length-total estimate --
	// those differ whenever the packing doesn't divide evenly.
	minWaste := FirstFitDecreasingWaste(cuts, maxLen)

	return model.Bounds{
		TotalLengthNeeded:   total,
		MinTheoreticalCost:  minCost,
		MinTheoreticalWaste: minWaste,
		PerStockEstimate:    estimates,
		MostEfficient:       mostEfficient,
	}
}

func totalLengthNeeded(cuts []model.RequiredCut) float64 {
	var total float64
	for _, c := range cuts {
		total += c.Length * float64(c.Quantity)
	}
	return total
}

// FirstFitDecreasingWaste simulates a first-fit-decreasing packing of every
// individual required cut into boards of stockLength, the way the teacher's
// firstFitDecreasing heuristic orders cuts longest-first and drops each into
// the first bin with room. Compute reports its result as
// MinTheoreticalWaste, for reporting only.
func FirstFitDecreasingWaste(cuts []model.RequiredCut, stockLength float64) float64 {
	type item struct{ length float64 }
	var items []item
	for _, c := range cuts {
		for i := 0; i < c.Quantity; i++ {
			items = append(items, item{length: c.Length})
		}
	}
	// insertion sort descending; item counts are small enough that this
	// mirrors the teacher's own straightforward sort without pulling in
	// sort.Slice for a one-off comparator.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].length > items[j-1].length; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}

	var remaining []float64
	for _, it := range items {
		placed := false
		for i, rem := range remaining {
			if rem >= it.length {
				remaining[i] -= it.length
				placed = true
				break
			}
		}
		if !placed {
			remaining = append(remaining, stockLength-it.length)
		}
	}

	var waste float64
	for _, rem := range remaining {
		waste += rem
	}
	return waste
}
