package knapsack

import (
	"math"
	"testing"

	"github.com/heavybullets8/cutstock/internal/model"
)

func TestSolveFillsStockWithHighestDualCuts(t *testing.T) {
	cuts := []model.RequiredCut{
		{Length: 30, Quantity: 10, Description: "A"},
		{Length: 50, Quantity: 10, Description: "B"},
	}
	// Dual of B is much higher per inch; the optimal 96" pattern should
	// favor B over A.
	duals := []float64{1.0, 3.0}

	res := Solve(cuts, duals, 96, 10)

	if res.Counts[1] < 1 {
		t.Fatalf("expected pattern to use the high-dual cut, got counts %v", res.Counts)
	}
	used := float64(res.Counts[0])*30 + float64(res.Counts[1])*50
	if used > 96 {
		t.Fatalf("pattern overfills stock: used %v of 96", used)
	}
	wantDual := float64(res.Counts[0])*duals[0] + float64(res.Counts[1])*duals[1]
	if math.Abs(res.DualValue-wantDual) > 1e-6 {
		t.Errorf("DualValue = %v, want %v", res.DualValue, wantDual)
	}
}

func TestSolveZeroCapacity(t *testing.T) {
	cuts := []model.RequiredCut{{Length: 30, Quantity: 1, Description: "A"}}
	res := Solve(cuts, []float64{1}, 0, 5)
	if res.DualValue != 0 {
		t.Errorf("expected zero dual value for zero capacity, got %v", res.DualValue)
	}
}
