package milp

import (
	"context"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/heavybullets8/cutstock/internal/model"
)

func TestSolveRoundsToIntegerCover(t *testing.T) {
	// Two patterns: pattern 0 covers 3 units of demand per board at cost 5,
	// pattern 1 covers 1 unit per board at cost 2. Demand is 7 units, so the
	// LP relaxation wants x0 = 7/3 (fractional); the integer optimum is
	// x0=2, x1=1 at cost 12.
	A := mat.NewDense(1, 2, []float64{3, 1})
	b := []float64{7}
	c := []float64{5, 2}

	p := Problem{
		NumVars:     2,
		Cost:        c,
		EqualityA:   A,
		EqualityB:   b,
		IntegerVars: []int{0, 1},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sol, err := Solve(ctx, p)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if sol.Status != model.StatusOptimal {
		t.Fatalf("Status = %v, want optimal", sol.Status)
	}
	for _, v := range sol.X {
		if math.Abs(v-math.Round(v)) > 1e-6 {
			t.Errorf("solution %v is not integral", sol.X)
		}
	}
	used := sol.X[0]*3 + sol.X[1]*1
	if used < 7-1e-6 {
		t.Errorf("solution under-covers demand: used %v of 7", used)
	}
}
