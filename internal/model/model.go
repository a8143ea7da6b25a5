// Package model defines the data types shared across the cutting-stock
// optimizer: purchasable StockOptions, demanded RequiredCuts, the evolving
// PatternSet the LP master is built from, and the final SolutionPlan.
//
// Lengths are stored in inches as float64 throughout; StockOption.Length is
// converted from feet on ingest (see internal/ingest). Prices and every cost
// total use decimal.Decimal so currency arithmetic never drifts the way
// float64 cents would.
package model

import "github.com/shopspring/decimal"

// StockOption is a purchasable board type: a length (inches) and a price.
// Two options with identical length but different prices are distinct.
// StockOptions are read once at construction and are immutable thereafter.
type StockOption struct {
	Length float64
	Price  decimal.Decimal
}

// PricePerInch returns Price / Length, used to rank stock options by
// cost efficiency (see Bounds.MostEfficient, filled by bounds.Compute).
func (s StockOption) PricePerInch() decimal.Decimal {
	if s.Length <= 0 {
		return decimal.Zero
	}
	return s.Price.Div(decimal.NewFromFloat(s.Length))
}

// RequiredCut is a demand item: a length (inches), a positive quantity, and
// an opaque description label. Cuts are identified by their index in load
// order; that index is the column index used throughout the engine.
type RequiredCut struct {
	Length      float64
	Quantity    int
	Description string
}

// Pattern is a cut recipe for a single board of one specific StockOption.
// Counts is indexed by RequiredCut index (the column index). StockIndex
// binds the pattern to the exact StockOption it was generated from --
// spec.md's price-lookup ambiguity (matching stocks by price, then taking
// the longest stock sharing that price) is deliberately not reproduced;
// see DESIGN.md.
type Pattern struct {
	StockIndex int
	StockPrice decimal.Decimal
	Counts     []int
}

// UsedLength returns the total cut length consumed by this pattern, given
// the RequiredCut slice it was generated against.
func (p Pattern) UsedLength(cuts []RequiredCut) float64 {
	var total float64
	for i, c := range p.Counts {
		if c > 0 {
			total += float64(c) * cuts[i].Length
		}
	}
	return total
}

// PatternSet is an ordered, append-only collection of Patterns. It is never
// deduplicated -- the LP naturally assigns zero usage to redundant columns.
type PatternSet struct {
	Patterns []Pattern
}

// Append adds a pattern to the set and returns its index.
func (ps *PatternSet) Append(p Pattern) int {
	ps.Patterns = append(ps.Patterns, p)
	return len(ps.Patterns) - 1
}

// Len returns the number of patterns currently in the set.
func (ps *PatternSet) Len() int { return len(ps.Patterns) }

// UsedPattern is one line of a SolutionPlan: a Pattern actually purchased
// and cut, along with how many times it was used.
type UsedPattern struct {
	StockLength float64
	StockPrice  decimal.Decimal
	CutDetails  []CutDetail
	TimesUsed   int
}

// CutDetail names one cut length/count/description triple within a used
// pattern.
type CutDetail struct {
	Length      float64
	Count       int
	Description string
}

// WastePerBoard is the unused length on one board cut to this pattern.
func (u UsedPattern) WastePerBoard() float64 {
	var used float64
	for _, d := range u.CutDetails {
		used += d.Length * float64(d.Count)
	}
	return u.StockLength - used
}

// Status distinguishes how the integer master terminated.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Bounds holds the read-only theoretical diagnostics computed once from the
// StockOptions and RequiredCuts. These never constrain the solve; they only
// feed gap reporting.
type Bounds struct {
	TotalLengthNeeded  float64
	MinTheoreticalCost decimal.Decimal
	MinTheoreticalWaste float64
	PerStockEstimate   []PerStockEstimate
	MostEfficient      StockEfficiency
}

// PerStockEstimate is the fractional board count/cost if every cut were
// satisfied from a single stock option.
type PerStockEstimate struct {
	StockIndex int
	Boards     float64
	Cost       decimal.Decimal
}

// StockEfficiency names the cheapest-per-inch stock option.
type StockEfficiency struct {
	StockIndex  int
	Length      float64
	PricePerIn  decimal.Decimal
	Price       decimal.Decimal
}

// SolutionPlan is the final optimizer output.
type SolutionPlan struct {
	Patterns    []UsedPattern
	TotalCost   decimal.Decimal
	TotalWaste  float64
	Bounds      Bounds
	CostGapPct  float64
	WasteGapPct float64
	Status      Status
	Iterations  int
	IterationCapped bool
}
