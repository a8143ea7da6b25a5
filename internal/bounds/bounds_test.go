package bounds

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/heavybullets8/cutstock/internal/model"
)

func TestComputeMostEfficient(t *testing.T) {
	stocks := []model.StockOption{
		{Length: 96, Price: decimal.NewFromFloat(20)},  // $0.2083/in
		{Length: 144, Price: decimal.NewFromFloat(24)}, // $0.1667/in, cheaper
	}
	cuts := []model.RequiredCut{
		{Length: 30, Quantity: 4, Description: "shelf"},
	}

	b := Compute(stocks, cuts)

	if b.TotalLengthNeeded != 120 {
		t.Errorf("TotalLengthNeeded = %v, want 120", b.TotalLengthNeeded)
	}
	if b.MostEfficient.StockIndex != 1 {
		t.Errorf("MostEfficient.StockIndex = %d, want 1", b.MostEfficient.StockIndex)
	}
	if len(b.PerStockEstimate) != 2 {
		t.Fatalf("PerStockEstimate has %d entries, want 2", len(b.PerStockEstimate))
	}
	if got := b.PerStockEstimate[0].Boards; got != 120.0/96.0 {
		t.Errorf("PerStockEstimate[0].Boards = %v, want %v", got, 120.0/96.0)
	}
}

func TestComputeWasteUsesFirstFitDecreasingSimulation(t *testing.T) {
	stocks := []model.StockOption{
		{Length: 96, Price: decimal.NewFromFloat(8)},
	}
	cuts := []model.RequiredCut{
		{Length: 50, Quantity: 3, Description: "panel"},
	}

	// Three 50in cuts each need their own 96in board (50+50 > 96), so FFD
	// opens three boards with 46 waste apiece: 138 total. The closed-form
	// ceil(150/96)*96-150 = 42 estimate would under-report this.
	b := Compute(stocks, cuts)
	if b.MinTheoreticalWaste != 138 {
		t.Errorf("MinTheoreticalWaste = %v, want 138", b.MinTheoreticalWaste)
	}
}

func TestFirstFitDecreasingWaste(t *testing.T) {
	cuts := []model.RequiredCut{
		{Length: 40, Quantity: 2, Description: "long"},
		{Length: 20, Quantity: 2, Description: "short"},
	}
	// Both 40s go on the first 96" board (16 left); neither 20 fits that
	// remainder, so both go on a second board (56 left): 16 + 56 = 72 total
	// waste.
	waste := FirstFitDecreasingWaste(cuts, 96)
	if waste != 72 {
		t.Errorf("FirstFitDecreasingWaste = %v, want 72", waste)
	}
}
