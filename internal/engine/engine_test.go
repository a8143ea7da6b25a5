package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavybullets8/cutstock/internal/model"
)

func TestOptimizeSimpleCase(t *testing.T) {
	stocks := []model.StockOption{
		{Length: 96, Price: decimal.NewFromFloat(10)},
	}
	cuts := []model.RequiredCut{
		{Length: 48, Quantity: 4, Description: "half board"},
	}

	cfg := DefaultConfig()
	cfg.IntegerSolveTimeLimit = 5 * time.Second
	eng := New(cfg)

	plan, err := eng.Optimize(context.Background(), stocks, cuts)
	require.NoError(t, err)
	require.Equal(t, model.StatusOptimal, plan.Status)

	var totalCuts int
	for _, p := range plan.Patterns {
		for _, d := range p.CutDetails {
			totalCuts += d.Count * p.TimesUsed
		}
	}
	assert.Equal(t, 4, totalCuts, "total 48in cuts produced")

	// Two 48in cuts fit exactly on one 96in board with zero waste, so two
	// boards should satisfy all four cuts at $20 with no waste.
	assert.True(t, plan.TotalCost.Equal(decimal.NewFromFloat(20)), "TotalCost = %v, want 20", plan.TotalCost)
	assert.Zero(t, plan.TotalWaste)
}

func TestOptimizeRejectsInfeasibleDemand(t *testing.T) {
	stocks := []model.StockOption{{Length: 96, Price: decimal.NewFromFloat(10)}}
	cuts := []model.RequiredCut{{Length: 200, Quantity: 1, Description: "too long"}}

	eng := New(DefaultConfig())
	_, err := eng.Optimize(context.Background(), stocks, cuts)
	require.Error(t, err)
}
