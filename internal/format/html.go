package format

import (
	"html/template"
	"io"

	"github.com/heavybullets8/cutstock/internal/model"
)

// htmlTemplate mirrors the teacher's generateHTML cut-ticket layout: one
// card per purchased board with its cut list, styled with inline CSS so the
// output is a single self-contained file a shop can print directly.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cut List</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.summary { margin-bottom: 1.5em; }
.board { border: 1px solid #333; border-radius: 6px; padding: 1em; margin-bottom: 1em; page-break-inside: avoid; }
.board h3 { margin: 0 0 0.5em 0; }
table { border-collapse: collapse; width: 100%; }
td, th { border-bottom: 1px solid #ccc; padding: 0.25em 0.5em; text-align: left; }
.waste { color: #a33; }
</style>
</head>
<body>
<div class="summary">
<h1>Cut List</h1>
<p>Status: {{.Status}}</p>
<p>Total cost: ${{.TotalCost}} (theoretical minimum ${{.MinCost}}, {{printf "%.1f" .CostGapPct}}% over)</p>
<p>Total waste: {{.TotalWaste}} (theoretical minimum {{.MinWaste}}, {{printf "%.1f" .WasteGapPct}}% over)</p>
</div>
{{range .Boards}}
<div class="board">
<h3>{{.Length}} board &mdash; ${{.Price}} &times; {{.TimesUsed}}</h3>
<table>
<tr><th>Qty per board</th><th>Cut</th><th>Description</th></tr>
{{range .Cuts}}<tr><td>{{.Count}}</td><td>{{.Length}}</td><td>{{.Description}}</td></tr>
{{end}}
</table>
<p class="waste">Waste per board: {{.Waste}}</p>
</div>
{{end}}
</body>
</html>
`

type htmlBoard struct {
	Length    string
	Price     string
	TimesUsed int
	Waste     string
	Cuts      []htmlCut
}

type htmlCut struct {
	Count       int
	Length      string
	Description string
}

type htmlDoc struct {
	Status      string
	TotalCost   string
	MinCost     string
	CostGapPct  float64
	TotalWaste  string
	MinWaste    string
	WasteGapPct float64
	Boards      []htmlBoard
}

// WriteHTML renders plan as a self-contained HTML cut ticket to w.
func WriteHTML(w io.Writer, plan *model.SolutionPlan) error {
	doc := htmlDoc{
		Status:      plan.Status.String(),
		TotalCost:   plan.TotalCost.StringFixed(2),
		MinCost:     plan.Bounds.MinTheoreticalCost.StringFixed(2),
		CostGapPct:  plan.CostGapPct,
		TotalWaste:  PrettyLength(plan.TotalWaste),
		MinWaste:    PrettyLength(plan.Bounds.MinTheoreticalWaste),
		WasteGapPct: plan.WasteGapPct,
	}

	for _, p := range plan.Patterns {
		board := htmlBoard{
			Length:    PrettyLength(p.StockLength),
			Price:     p.StockPrice.StringFixed(2),
			TimesUsed: p.TimesUsed,
			Waste:     PrettyLength(p.WastePerBoard()),
		}
		for _, d := range p.CutDetails {
			board.Cuts = append(board.Cuts, htmlCut{
				Count:       d.Count,
				Length:      PrettyLength(d.Length),
				Description: d.Description,
			})
		}
		doc.Boards = append(doc.Boards, board)
	}

	tmpl, err := template.New("cutlist").Parse(htmlTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, doc)
}
