// Package milp solves the final integer master problem: given the column
// set the pricing loop converged on, choose a non-negative integer usage
// count per pattern that meets every demand at minimum cost. The plain
// Problem struct (standing in for GoMILP's Variable/Constraint builder) and
// the branch-and-bound search loop are grounded on jjhbw-GoMILP's api.go and
// ilp.go, adapted
// from gonum's optimize/convex/lp-backed relaxation to this package's own
// internal/simplex solver so the whole pipeline shares one LP engine.
package milp

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/heavybullets8/cutstock/internal/model"
	"github.com/heavybullets8/cutstock/internal/simplex"
)

// ErrTimeLimit is returned when the time budget expires before the search
// tree is exhausted. A caller should still consult Solution.Status: a
// feasible (non-optimal) incumbent may have been found before the cutoff.
var ErrTimeLimit = errors.New("milp: time limit exceeded")

// Problem is a minimization over non-negative variables: minimize c^T x
// subject to A x = b, x >= 0, and x_j integer for every j in IntegerVars.
type Problem struct {
	NumVars   int
	Cost      []float64
	EqualityA *mat.Dense
	EqualityB []float64
	// IntegerVars names which column indices must take integer values in
	// the final solution; any column not listed (e.g. a surplus variable
	// introduced to turn a >= constraint into an equality) is left
	// continuous and never used as a branching variable.
	IntegerVars []int
}

// Solution is the result of Solve.
type Solution struct {
	X      []float64
	Obj    float64
	Status model.Status
}

// Solve runs branch-and-bound on the LP relaxation, rounding the master's
// continuous pattern-usage variables to integers. The search respects
// ctx's deadline; on expiry it returns the best incumbent found so far
// with Status set to StatusFeasible (or StatusUnknown if none was found)
// alongside ErrTimeLimit.
func Solve(ctx context.Context, p Problem) (Solution, error) {
	root := node{lower: make([]float64, p.NumVars), upper: fullUpper(p.NumVars)}

	best := Solution{Status: model.StatusUnknown, Obj: math.Inf(1)}
	queue := []node{root}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			if best.Status == model.StatusUnknown {
				return best, ErrTimeLimit
			}
			best.Status = model.StatusFeasible
			return best, ErrTimeLimit
		default:
		}

		n := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		relaxed, ok := solveRelaxation(p, n)
		if !ok {
			continue // infeasible subproblem, prune
		}
		if relaxed.Obj >= best.Obj-1e-9 {
			continue // bound prune: cannot beat the incumbent
		}

		branchVar, _ := mostFractional(relaxed.X, p.IntegerVars)
		if branchVar == -1 {
			// integral relaxation: candidate incumbent
			best = Solution{X: relaxed.X, Obj: relaxed.Obj, Status: model.StatusOptimal}
			continue
		}

		floorNode, ceilNode := n.branch(branchVar, relaxed.X[branchVar])
		queue = append(queue, floorNode, ceilNode)
	}

	if best.Status == model.StatusUnknown {
		return best, errors.New("milp: no feasible integer solution found")
	}
	return best, nil
}

// node bounds each variable's allowed integer range during the search.
type node struct {
	lower, upper []float64
}

func fullUpper(n int) []float64 {
	u := make([]float64, n)
	for i := range u {
		u[i] = math.Inf(1)
	}
	return u
}

func (n node) branch(variable int, value float64) (floorNode, ceilNode node) {
	floorNode = node{lower: append([]float64(nil), n.lower...), upper: append([]float64(nil), n.upper...)}
	ceilNode = node{lower: append([]float64(nil), n.lower...), upper: append([]float64(nil), n.upper...)}
	floorNode.upper[variable] = math.Floor(value)
	ceilNode.lower[variable] = math.Ceil(value)
	return
}

// solveRelaxation solves the LP relaxation of p restricted to n's bounds by
// encoding each finite bound as an extra equality-with-slack row, since
// internal/simplex only accepts equality systems. Variables pinned by a
// zero-width [k, k] bound are fixed via that same mechanism.
func solveRelaxation(p Problem, n node) (simplex.Result, bool) {
	extraRows := 0
	for i := range n.lower {
		if n.upper[i] < math.Inf(1) {
			extraRows++
		}
	}

	m, nv := p.EqualityA.Dims()
	totalVars := nv + extraRows // one slack per upper-bound row
	totalRows := m + extraRows

	A := mat.NewDense(totalRows, totalVars, nil)
	b := make([]float64, totalRows)
	c := make([]float64, totalVars)
	copy(c, p.Cost)

	for i := 0; i < m; i++ {
		for j := 0; j < nv; j++ {
			A.Set(i, j, p.EqualityA.At(i, j))
		}
		b[i] = p.EqualityB[i]
	}

	row := m
	slackCol := nv
	shift := make([]float64, nv) // lower-bound shift applied per variable
	for i := range n.lower {
		shift[i] = n.lower[i]
	}

	for i := range n.lower {
		if n.upper[i] >= math.Inf(1) {
			continue
		}
		A.Set(row, i, 1)
		A.Set(row, slackCol, 1)
		b[row] = n.upper[i] - shift[i]
		row++
		slackCol++
	}

	// Shift variables so the lower bound becomes the new origin: x' = x -
	// lower, which keeps every column's coefficients unchanged and only
	// adjusts b by lower*A_col, since A x = A(x' + lower) = A x' + A*lower.
	for i := 0; i < m; i++ {
		var adj float64
		for j := 0; j < nv; j++ {
			adj += p.EqualityA.At(i, j) * shift[j]
		}
		b[i] -= adj
	}
	for _, v := range b {
		if v < -1e-9 {
			// A lower bound pushed past what the equality system can
			// satisfy, or an upper bound below a lower bound: this branch
			// is infeasible, not a numerical rounding artifact.
			return simplex.Result{}, false
		}
	}
	for i, v := range b {
		if v < 0 {
			b[i] = 0
		}
	}

	res, err := simplex.MinimizeEquality(A, b, c)
	if err != nil {
		return simplex.Result{}, false
	}

	// unshift, restoring the c^T lower term the shifted objective drops
	x := make([]float64, nv)
	for i := 0; i < nv; i++ {
		x[i] = res.X[i] + shift[i]
		res.Obj += c[i] * shift[i]
	}
	res.X = x
	return res, true
}

// mostFractional returns the integer-constrained variable index furthest
// from an integer value (ties broken by lowest index), or -1 if every such
// value is already integral within tolerance.
func mostFractional(x []float64, integerVars []int) (int, float64) {
	best, bestFrac := -1, 1e-6
	for _, i := range integerVars {
		v := x[i]
		frac := math.Abs(v - math.Round(v))
		if frac > bestFrac {
			best, bestFrac = i, frac
		}
	}
	return best, bestFrac
}
