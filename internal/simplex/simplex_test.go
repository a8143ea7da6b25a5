package simplex

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMinimizeEqualitySimpleCover(t *testing.T) {
	// minimize x0 + x1
	// subject to 2*x0 + x1 = 4   (one pattern covers 2 units/board, the
	//                             other covers 1)
	// A single-constraint problem where the cheapest way to reach the
	// right-hand side is to use only the first variable twice... but x0
	// must be non-negative and the constraint is an equality, so x0=2,
	// x1=0 is optimal at cost 2.
	A := mat.NewDense(1, 2, []float64{2, 1})
	b := []float64{4}
	c := []float64{1, 1}

	res, err := MinimizeEquality(A, b, c)
	if err != nil {
		t.Fatalf("MinimizeEquality returned error: %v", err)
	}
	if math.Abs(res.Obj-2) > 1e-6 {
		t.Errorf("Obj = %v, want 2", res.Obj)
	}
	if math.Abs(res.X[0]-2) > 1e-6 || math.Abs(res.X[1]) > 1e-6 {
		t.Errorf("X = %v, want [2 0]", res.X)
	}
}

func TestMinimizeEqualityDualsPriceTheConstraint(t *testing.T) {
	// minimize 3*x0 subject to x0 = 5; the dual of that single equality
	// should equal the objective coefficient, since increasing b by 1
	// increases the optimal cost by exactly 3.
	A := mat.NewDense(1, 1, []float64{1})
	b := []float64{5}
	c := []float64{3}

	res, err := MinimizeEquality(A, b, c)
	if err != nil {
		t.Fatalf("MinimizeEquality returned error: %v", err)
	}
	if len(res.Duals) != 1 {
		t.Fatalf("Duals = %v, want length 1", res.Duals)
	}
	if math.Abs(res.Duals[0]-3) > 1e-6 {
		t.Errorf("Duals[0] = %v, want 3", res.Duals[0])
	}
}

func TestMinimizeEqualityInfeasible(t *testing.T) {
	// x0 - x0 can never reach a positive rhs with a single non-negative
	// variable constrained to zero contribution.
	A := mat.NewDense(1, 1, []float64{0})
	b := []float64{1}
	c := []float64{1}

	_, err := MinimizeEquality(A, b, c)
	if err != ErrInfeasible {
		t.Errorf("err = %v, want ErrInfeasible", err)
	}
}
