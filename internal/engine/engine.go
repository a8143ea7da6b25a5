// Package engine drives the cutting-stock optimization end to end: seed an
// initial pattern set, alternate LP-master solves with knapsack pricing
// until no pattern prices in favorably (delayed column generation), then
// hand the converged pattern set to the integer master for a final
// buildable solution. The loop structure mirrors
// original_source/stock.py's CuttingStockSolver.optimize, translated from
// PuLP's LP/MILP calls to this module's own internal/simplex and
// internal/milp solvers.
package engine

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"

	"github.com/heavybullets8/cutstock/internal/bounds"
	"github.com/heavybullets8/cutstock/internal/cuterr"
	"github.com/heavybullets8/cutstock/internal/ingest"
	"github.com/heavybullets8/cutstock/internal/knapsack"
	"github.com/heavybullets8/cutstock/internal/milp"
	"github.com/heavybullets8/cutstock/internal/model"
	"github.com/heavybullets8/cutstock/internal/simplex"
)

// Config tunes the solve. Zero-value Config is not usable; call
// DefaultConfig and override as needed.
type Config struct {
	// Epsilon is the reduced-cost tolerance below which a candidate
	// pattern is considered worth adding to the column set.
	Epsilon float64
	// MaxColumnGenIterations caps the pricing loop, matching
	// original_source/stock.py's hard-coded 100-iteration ceiling.
	MaxColumnGenIterations int
	// IntegerSolveTimeLimit bounds the final branch-and-bound search.
	IntegerSolveTimeLimit time.Duration
}

// DefaultConfig returns the engine's default tuning, matching spec.md §9.
func DefaultConfig() Config {
	return Config{
		Epsilon:                1e-6,
		MaxColumnGenIterations: 100,
		IntegerSolveTimeLimit:  120 * time.Second,
	}
}

// Engine runs Optimize with a fixed Config.
type Engine struct {
	Config Config
}

// New constructs an Engine.
func New(cfg Config) *Engine {
	return &Engine{Config: cfg}
}

// Optimize computes a SolutionPlan for the given stock catalogue and demand
// list. It validates feasibility, computes theoretical bounds, runs delayed
// column generation to build a pattern set, solves the integer master over
// that set, and assembles the final plan with gap reporting against the
// theoretical bounds.
func (e *Engine) Optimize(ctx context.Context, stocks []model.StockOption, cuts []model.RequiredCut) (*model.SolutionPlan, error) {
	if err := ingest.ValidateFeasibility(stocks, cuts); err != nil {
		return nil, err
	}

	b := bounds.Compute(stocks, cuts)
	patterns := seedInitialPatterns(stocks, cuts)

	iterations := 0
	capped := false
	for {
		lpRes, err := solveMasterLP(patterns, cuts)
		if err != nil {
			return nil, cuterr.Wrap(cuterr.SolverFailure, "LP master relaxation", err)
		}

		// Price every stock's subproblem but keep only the single
		// most-negative reduced cost, ties broken by stock-list order, the
		// way stock.py's solve_subproblem/optimize append one column per
		// iteration rather than every favorable one.
		bestStock := -1
		var bestCounts []int
		bestReduced := -e.Config.Epsilon
		for si, s := range stocks {
			kres := knapsack.Solve(cuts, lpRes.Duals, s.Length, s.Price.InexactFloat64())
			if kres.ReducedCost < bestReduced && hasPositiveCount(kres.Counts) {
				bestReduced = kres.ReducedCost
				bestStock = si
				bestCounts = kres.Counts
			}
		}
		if bestStock == -1 {
			break
		}

		iterations++
		patterns.Append(model.Pattern{
			StockIndex: bestStock,
			StockPrice: stocks[bestStock].Price,
			Counts:     bestCounts,
		})
		if iterations >= e.Config.MaxColumnGenIterations {
			capped = true
			break
		}
	}

	intCtx := ctx
	var cancel context.CancelFunc
	if e.Config.IntegerSolveTimeLimit > 0 {
		intCtx, cancel = context.WithTimeout(ctx, e.Config.IntegerSolveTimeLimit)
		defer cancel()
	}

	prob := buildIntegerProblem(patterns, cuts)
	sol, err := milp.Solve(intCtx, prob)
	timedOut := err == milp.ErrTimeLimit
	if err != nil && !timedOut {
		return nil, cuterr.Wrap(cuterr.SolverFailure, "integer master", err)
	}
	if sol.Status == model.StatusUnknown {
		return nil, cuterr.New(cuterr.SolverFailure, "integer master found no feasible solution")
	}

	plan := assemblePlan(stocks, patterns, cuts, sol, b, iterations, capped)
	if timedOut {
		return plan, cuterr.New(cuterr.TimeLimit, "integer master stopped at the time limit with a feasible but possibly non-optimal solution")
	}
	if capped {
		return plan, cuterr.New(cuterr.IterationCap, "column generation stopped at the iteration cap; the LP relaxation may not have fully converged")
	}
	return plan, nil
}

func hasPositiveCount(counts []int) bool {
	for _, c := range counts {
		if c > 0 {
			return true
		}
	}
	return false
}

// seedInitialPatterns builds one trivial pattern per (stock, cut) pair that
// fits, using as many copies of that single cut as the stock allows. This
// guarantees the master LP starts feasible, the same role
// original_source/stock.py's generate_initial_patterns plays before column
// generation begins.
func seedInitialPatterns(stocks []model.StockOption, cuts []model.RequiredCut) *model.PatternSet {
	ps := &model.PatternSet{}
	for si, s := range stocks {
		for ci, c := range cuts {
			n := int(math.Floor(s.Length / c.Length))
			if n <= 0 {
				continue
			}
			counts := make([]int, len(cuts))
			counts[ci] = n
			ps.Append(model.Pattern{StockIndex: si, StockPrice: s.Price, Counts: counts})
		}
	}
	return ps
}

// buildEqualitySystem turns "sum_j pattern_j[i] * x_j >= demand_i" into an
// equality system by subtracting a surplus variable per cut:
// sum_j pattern_j[i] * x_j - s_i = demand_i. It returns the coefficient
// matrix, right-hand side, and objective cost vector (zero-cost surplus
// columns). The first ps.Len() columns are pattern columns; every column
// after them is a surplus column.
func buildEqualitySystem(ps *model.PatternSet, cuts []model.RequiredCut) (*mat.Dense, []float64, []float64) {
	numPatterns := ps.Len()
	numCuts := len(cuts)
	totalVars := numPatterns + numCuts

	A := mat.NewDense(numCuts, totalVars, nil)
	b := make([]float64, numCuts)
	c := make([]float64, totalVars)

	for j, p := range ps.Patterns {
		for i, count := range p.Counts {
			if count != 0 {
				A.Set(i, j, float64(count))
			}
		}
		c[j] = p.StockPrice.InexactFloat64()
	}
	for i := range cuts {
		A.Set(i, numPatterns+i, -1)
		b[i] = float64(cuts[i].Quantity)
	}

	return A, b, c
}

func solveMasterLP(ps *model.PatternSet, cuts []model.RequiredCut) (simplex.Result, error) {
	A, b, c := buildEqualitySystem(ps, cuts)
	return simplex.MinimizeEquality(A, b, c)
}

func buildIntegerProblem(ps *model.PatternSet, cuts []model.RequiredCut) milp.Problem {
	A, b, c := buildEqualitySystem(ps, cuts)
	_, totalVars := A.Dims()
	integerVars := make([]int, ps.Len())
	for i := range integerVars {
		integerVars[i] = i
	}
	return milp.Problem{
		NumVars:     totalVars,
		Cost:        c,
		EqualityA:   A,
		EqualityB:   b,
		IntegerVars: integerVars,
	}
}

// assemblePlan converts the integer master's raw variable values back into
// the reporting-oriented model.SolutionPlan, dropping patterns used zero
// times and computing the final cost/waste gap against the theoretical
// bounds.
func assemblePlan(stocks []model.StockOption, ps *model.PatternSet, cuts []model.RequiredCut, sol milp.Solution, b model.Bounds, iterations int, capped bool) *model.SolutionPlan {
	var used []model.UsedPattern
	totalCost := decimal.Zero
	var totalWaste float64

	for j, p := range ps.Patterns {
		count := int(math.Round(sol.X[j]))
		if count <= 0 {
			continue
		}

		var details []model.CutDetail
		for i, n := range p.Counts {
			if n <= 0 {
				continue
			}
			details = append(details, model.CutDetail{
				Length:      cuts[i].Length,
				Count:       n,
				Description: cuts[i].Description,
			})
		}

		up := model.UsedPattern{
			StockLength: stocks[p.StockIndex].Length,
			StockPrice:  p.StockPrice,
			CutDetails:  details,
			TimesUsed:   count,
		}
		used = append(used, up)

		totalCost = totalCost.Add(p.StockPrice.Mul(decimal.NewFromInt(int64(count))))
		totalWaste += up.WastePerBoard() * float64(count)
	}

	plan := &model.SolutionPlan{
		Patterns:        used,
		TotalCost:       totalCost,
		TotalWaste:      totalWaste,
		Bounds:          b,
		Status:          sol.Status,
		Iterations:      iterations,
		IterationCapped: capped,
	}

	if !b.MinTheoreticalCost.IsZero() {
		gap := totalCost.Sub(b.MinTheoreticalCost).Div(b.MinTheoreticalCost).Mul(decimal.NewFromInt(100))
		plan.CostGapPct, _ = gap.Float64()
	}
	if b.MinTheoreticalWaste > 0 {
		plan.WasteGapPct = (totalWaste - b.MinTheoreticalWaste) / b.MinTheoreticalWaste * 100
	}

	return plan
}
