// Package format renders a model.SolutionPlan as text reports, adapted
// from the teacher's cmd/tube-designer/output.go: prettyLen's
// feet-and-fraction rendering and printResults' summary shape carry over,
// rebuilt on top of olekukonko/tablewriter for the tabular portions instead
// of hand-aligned fmt.Printf columns. Three detail levels mirror
// original_source/stock.py's print_simple_solution,
// print_collapsed_solution, and print_detailed_solution.
package format

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/heavybullets8/cutstock/internal/model"
)

// Level selects how much per-pattern detail a report includes.
type Level int

const (
	// Simple prints only the summary totals.
	Simple Level = iota
	// Collapsed prints one row per used pattern of the plan: stock length,
	// price, use count, and waste per board. Rows are not grouped by stock
	// length, and patterns with the same stock length and cut list are not
	// merged into one row.
	Collapsed
	// Detailed additionally lists every cut within each pattern.
	Detailed
)

// Write renders plan to w at the requested detail level.
func Write(w io.Writer, plan *model.SolutionPlan, level Level) error {
	writeSummary(w, plan)

	if level == Simple {
		return nil
	}

	tbl := tablewriter.NewWriter(w)
	if level == Detailed {
		tbl.Header("Stock", "Price", "Used", "Waste/Board", "Cuts")
	} else {
		tbl.Header("Stock", "Price", "Used", "Waste/Board")
	}

	for _, p := range plan.Patterns {
		row := []string{
			PrettyLength(p.StockLength),
			p.StockPrice.StringFixed(2),
			fmt.Sprintf("%d", p.TimesUsed),
			PrettyLength(p.WastePerBoard()),
		}
		if level == Detailed {
			row = append(row, cutSummary(p.CutDetails))
		}
		if err := tbl.Append(row); err != nil {
			return err
		}
	}

	return tbl.Render()
}

func writeSummary(w io.Writer, plan *model.SolutionPlan) {
	fmt.Fprintf(w, "Status: %s\n", plan.Status)
	fmt.Fprintf(w, "Boards used: %d across %d pattern(s)\n", totalBoards(plan), len(plan.Patterns))
	fmt.Fprintf(w, "Total cost: $%s (theoretical minimum $%s, %.1f%% over)\n",
		plan.TotalCost.StringFixed(2), plan.Bounds.MinTheoreticalCost.StringFixed(2), plan.CostGapPct)
	fmt.Fprintf(w, "Total waste: %s (theoretical minimum %s, %.1f%% over)\n",
		PrettyLength(plan.TotalWaste), PrettyLength(plan.Bounds.MinTheoreticalWaste), plan.WasteGapPct)
	fmt.Fprintf(w, "Cheapest stock per inch: %s at %s (%s/in)\n",
		PrettyLength(plan.Bounds.MostEfficient.Length),
		plan.Bounds.MostEfficient.Price.StringFixed(2),
		plan.Bounds.MostEfficient.PricePerIn.StringFixed(4))
	if plan.IterationCapped {
		fmt.Fprintf(w, "Note: column generation stopped at the %d-iteration cap\n", plan.Iterations)
	}
}

func totalBoards(plan *model.SolutionPlan) int {
	var n int
	for _, p := range plan.Patterns {
		n += p.TimesUsed
	}
	return n
}

func cutSummary(details []model.CutDetail) string {
	parts := make([]string, len(details))
	for i, d := range details {
		label := d.Description
		if label == "" {
			label = PrettyLength(d.Length)
		}
		parts[i] = fmt.Sprintf("%dx %s", d.Count, label)
	}
	return strings.Join(parts, ", ")
}

// PrettyLength renders an inch length as feet-inches-fraction, the same
// format the teacher's prettyLen produces (e.g. 128.25 -> `10' 8 1/4"`).
func PrettyLength(inches float64) string {
	neg := inches < 0
	if neg {
		inches = -inches
	}

	feet := int(inches) / 12
	remInches := inches - float64(feet*12)
	whole := int(remInches)
	frac := remInches - float64(whole)

	const denom = 16
	numerator := int(math.Round(frac * denom))
	if numerator == denom {
		numerator = 0
		whole++
		if whole == 12 {
			whole = 0
			feet++
		}
	}

	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	if feet > 0 {
		fmt.Fprintf(&sb, "%d' ", feet)
	}
	fmt.Fprintf(&sb, "%d", whole)
	if numerator > 0 {
		d := denom
		n := numerator
		for n%2 == 0 && d%2 == 0 {
			n /= 2
			d /= 2
		}
		fmt.Fprintf(&sb, " %d/%d", n, d)
	}
	sb.WriteString("\"")
	return sb.String()
}
