// Package simplex implements a two-phase primal simplex solver for the LP
// relaxation of the cutting-stock master problem, grounded on
// thinkeridea-optimize's convex/lp simplex implementation (a from-scratch
// revised simplex over gonum's mat.Dense). Unlike gonum's own
// optimize/convex/lp.Simplex, this implementation keeps the basis around
// after optimization and exposes the dual values y = c_B^T * B^-1, which
// the column-generation loop needs on every iteration to price new columns.
package simplex

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInfeasible is returned when phase one cannot drive every artificial
// variable to zero, meaning the equality system A x = b, x >= 0 has no
// solution.
var ErrInfeasible = errors.New("simplex: problem is infeasible")

// ErrUnbounded is returned when phase two finds a pivot column with no
// positive entry, meaning the objective is unbounded over the feasible
// region.
var ErrUnbounded = errors.New("simplex: problem is unbounded")

const epsilon = 1e-9

// Result is a solved LP: the primal solution, the objective value, and the
// dual price of each of the original equality constraints.
type Result struct {
	X     []float64
	Obj   float64
	Duals []float64
}

// MinimizeEquality solves: minimize c^T x subject to A x = b, x >= 0.
// A is m x n, b has length m, c has length n. b must be non-negative; the
// master problem this package serves always builds b from positive demand
// quantities so this is not a practical restriction.
func MinimizeEquality(A *mat.Dense, b, c []float64) (Result, error) {
	m, n := A.Dims()
	if len(b) != m {
		return Result{}, fmt.Errorf("simplex: b has length %d, want %d", len(b), m)
	}
	if len(c) != n {
		return Result{}, fmt.Errorf("simplex: c has length %d, want %d", len(c), n)
	}
	for _, v := range b {
		if v < 0 {
			return Result{}, errors.New("simplex: b must be non-negative")
		}
	}

	tab := newTableau(A, b, c, m, n)

	if err := tab.phaseOne(); err != nil {
		return Result{}, err
	}
	if err := tab.phaseTwo(); err != nil {
		return Result{}, err
	}

	return tab.result(), nil
}

// tableau holds the working state of the simplex: the current basis column
// indices, the full A|I(artificial) matrix pivoted in place, the right-hand
// side, and the original objective. The phase-one and phase-two cost rows
// are built by phaseOne and phaseTwo.
type tableau struct {
	m, n     int
	basis    []int      // length m, column index of the basic variable per row
	table    *mat.Dense // m x (n + m) : original columns then artificial columns
	rhs      []float64  // length m
	origCost []float64  // length n, the real objective c
}

func newTableau(A *mat.Dense, b, c []float64, m, n int) *tableau {
	total := n + m
	table := mat.NewDense(m, total, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			table.Set(i, j, A.At(i, j))
		}
		table.Set(i, n+i, 1) // artificial identity column for row i
	}

	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + i
	}

	rhs := make([]float64, m)
	copy(rhs, b)

	origCost := make([]float64, n)
	copy(origCost, c)

	return &tableau{m: m, n: n, basis: basis, table: table, rhs: rhs, origCost: origCost}
}

// phaseOne drives the artificial variables out of the basis by minimizing
// their sum, the standard way to find an initial basic feasible solution
// when no obvious all-slack basis exists (the master's equality rows have
// no slack to start from).
func (t *tableau) phaseOne() error {
	total := t.n + t.m
	cost := make([]float64, total)
	for j := t.n; j < total; j++ {
		cost[j] = 1
	}

	if err := t.runSimplex(cost); err != nil && !errors.Is(err, ErrUnbounded) {
		return err
	}

	obj := t.objective(cost)
	if obj > epsilon {
		return ErrInfeasible
	}

	// Evict any artificial variable still sitting in the basis at zero
	// level, pivoting in an original column so phase two never prices an
	// artificial column back in.
	for row, col := range t.basis {
		if col < t.n {
			continue
		}
		for j := 0; j < t.n; j++ {
			if math.Abs(t.table.At(row, j)) > epsilon {
				t.pivot(row, j)
				break
			}
		}
		// If no replacement column exists, the row is redundant (0 = 0);
		// the artificial variable stays basic at zero and never re-enters.
	}
	return nil
}

// phaseTwo minimizes the real objective over the feasible basis phase one
// found, with artificial columns locked out by an effectively infinite
// cost so they can never re-enter.
func (t *tableau) phaseTwo() error {
	total := t.n + t.m
	cost := make([]float64, total)
	copy(cost, t.origCost)
	const bigM = 1e12
	for j := t.n; j < total; j++ {
		cost[j] = bigM
	}
	return t.runSimplex(cost)
}

// runSimplex performs standard simplex pivoting (Bland's rule on ties, to
// avoid cycling) until no column prices favorably against cost.
func (t *tableau) runSimplex(cost []float64) error {
	total := t.n + t.m
	for iter := 0; iter < 10000; iter++ {
		reduced := t.reducedCosts(cost)

		enter := -1
		for j := 0; j < total; j++ {
			if reduced[j] < -epsilon {
				enter = j
				break // Bland's rule: smallest index with negative reduced cost
			}
		}
		if enter == -1 {
			return nil
		}

		leave, ratio := -1, math.Inf(1)
		for i := 0; i < t.m; i++ {
			a := t.table.At(i, enter)
			if a <= epsilon {
				continue
			}
			r := t.rhs[i] / a
			if r < ratio-epsilon {
				ratio = r
				leave = i
			}
		}
		if leave == -1 {
			return ErrUnbounded
		}

		t.pivot(leave, enter)
	}
	return fmt.Errorf("simplex: exceeded iteration limit without converging")
}

// reducedCosts computes cost[j] - c_B^T * column_j for every column, using
// the current (already-pivoted) tableau columns as B^-1 A directly.
func (t *tableau) reducedCosts(cost []float64) []float64 {
	total := t.n + t.m
	cb := make([]float64, t.m)
	for i, b := range t.basis {
		cb[i] = cost[b]
	}

	reduced := make([]float64, total)
	for j := 0; j < total; j++ {
		var zj float64
		for i := 0; i < t.m; i++ {
			zj += cb[i] * t.table.At(i, j)
		}
		reduced[j] = cost[j] - zj
	}
	return reduced
}

// pivot performs a Gauss-Jordan elimination step making column `col` the
// basic variable of row `row`.
func (t *tableau) pivot(row, col int) {
	total := t.n + t.m
	pv := t.table.At(row, col)
	for j := 0; j < total; j++ {
		t.table.Set(row, j, t.table.At(row, j)/pv)
	}
	t.rhs[row] /= pv

	for i := 0; i < t.m; i++ {
		if i == row {
			continue
		}
		factor := t.table.At(i, col)
		if factor == 0 {
			continue
		}
		for j := 0; j < total; j++ {
			t.table.Set(i, j, t.table.At(i, j)-factor*t.table.At(row, j))
		}
		t.rhs[i] -= factor * t.rhs[row]
	}

	t.basis[row] = col
}

func (t *tableau) objective(cost []float64) float64 {
	var total float64
	for i, col := range t.basis {
		total += cost[col] * t.rhs[i]
	}
	return total
}

// result reads off the primal solution, objective, and dual values from the
// converged tableau. Duals are the negated reduced costs of the original
// artificial columns under the real objective (artificial cost zero, not
// phase two's big-M), equivalent to c_B^T * B^-1 against the original
// identity that seeded those columns.
func (t *tableau) result() Result {
	x := make([]float64, t.n)
	for i, col := range t.basis {
		if col < t.n {
			x[col] = t.rhs[i]
		}
	}

	var obj float64
	for j, v := range x {
		obj += t.origCost[j] * v
	}

	cost := make([]float64, t.n+t.m)
	copy(cost, t.origCost)
	reduced := t.reducedCosts(cost)

	duals := make([]float64, t.m)
	for i := 0; i < t.m; i++ {
		// Column n+i was the identity column for equality row i before any
		// pivoting; its current reduced cost is -y_i.
		duals[i] = -reduced[t.n+i]
	}

	return Result{X: x, Obj: obj, Duals: duals}
}
