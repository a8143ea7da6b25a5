// Package ingest loads the two CSV tables the optimizer consumes: a prices
// table of purchasable stock lengths and a parts table of required cuts.
//
// Per spec.md's design note ("Dynamic row-typed tabular input -> schema-first
// ingestion"), columns are resolved by an explicit schema at the CSV
// boundary instead of being referenced by ad-hoc header lookups downstream;
// malformed rows are rejected here with an actionable cuterr.InputMalformed
// error rather than being propagated as missing-value sentinels.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heavybullets8/cutstock/internal/cuterr"
	"github.com/heavybullets8/cutstock/internal/model"
)

const (
	priceLengthColumn = "length"
	priceAmountColumn = "price"

	partLengthColumn      = "LEN"
	partQuantityColumn    = "QTY"
	partDescriptionColumn = "LABEL / PART DESCRIPTION"
)

// LoadPrices reads the prices table from path: one row per purchasable
// stock option, columns "length" (feet) and "price" (currency). Lengths are
// converted to inches (x12) on ingest, matching spec.md's unit convention.
func LoadPrices(path string) ([]model.StockOption, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cuterr.Wrap(cuterr.InputMissing, fmt.Sprintf("prices file %q", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	idx, err := readHeader(r, path, priceLengthColumn, priceAmountColumn)
	if err != nil {
		return nil, err
	}

	var stocks []model.StockOption
	rowNum := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cuterr.Wrap(cuterr.InputMalformed, fmt.Sprintf("prices file %q row %d", path, rowNum), err)
		}
		rowNum++

		lengthFeet, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[priceLengthColumn]]), 64)
		if err != nil || lengthFeet <= 0 {
			return nil, cuterr.New(cuterr.InputMalformed,
				fmt.Sprintf("prices file %q row %d: %q is not a positive length in feet", path, rowNum, rec[idx[priceLengthColumn]]))
		}

		price, err := decimal.NewFromString(strings.TrimSpace(rec[idx[priceAmountColumn]]))
		if err != nil || price.IsNegative() {
			return nil, cuterr.New(cuterr.InputMalformed,
				fmt.Sprintf("prices file %q row %d: %q is not a non-negative price", path, rowNum, rec[idx[priceAmountColumn]]))
		}

		stocks = append(stocks, model.StockOption{
			Length: lengthFeet * 12,
			Price:  price,
		})
	}

	if len(stocks) == 0 {
		return nil, cuterr.New(cuterr.InputMalformed, fmt.Sprintf("prices file %q has no rows", path))
	}
	return stocks, nil
}

// LoadParts reads the parts table from path: one row per required cut,
// columns "LEN" (inches), "QTY" (positive integer), and
// "LABEL / PART DESCRIPTION". Rows with a zero or missing quantity are
// rejected rather than silently dropped, per spec.md §6.
func LoadParts(path string) ([]model.RequiredCut, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cuterr.Wrap(cuterr.InputMissing, fmt.Sprintf("parts file %q", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Shop notation such as 19' 6 1/2" puts a bare inch mark in an unquoted
	// LEN field; keep it literally instead of failing the row.
	r.LazyQuotes = true
	idx, err := readHeader(r, path, partLengthColumn, partQuantityColumn, partDescriptionColumn)
	if err != nil {
		return nil, err
	}

	var cuts []model.RequiredCut
	rowNum := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cuterr.Wrap(cuterr.InputMalformed, fmt.Sprintf("parts file %q row %d", path, rowNum), err)
		}
		rowNum++

		length, err := ParseLength(rec[idx[partLengthColumn]])
		if err != nil || length <= 0 {
			return nil, cuterr.New(cuterr.InputMalformed,
				fmt.Sprintf("parts file %q row %d: %q is not a positive length in inches", path, rowNum, rec[idx[partLengthColumn]]))
		}

		qtyStr := strings.TrimSpace(rec[idx[partQuantityColumn]])
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, cuterr.New(cuterr.InputMalformed,
				fmt.Sprintf("parts file %q row %d: quantity %q must be a positive integer", path, rowNum, qtyStr))
		}

		cuts = append(cuts, model.RequiredCut{
			Length:      length,
			Quantity:    qty,
			Description: strings.TrimSpace(rec[idx[partDescriptionColumn]]),
		})
	}

	if len(cuts) == 0 {
		return nil, cuterr.New(cuterr.InputMalformed, fmt.Sprintf("parts file %q has no rows", path))
	}
	return cuts, nil
}

// readHeader reads and validates r's header line against the required
// column names, returning a name-to-index map. r is left positioned at the
// first data row.
func readHeader(r *csv.Reader, path string, required ...string) (map[string]int, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, cuterr.New(cuterr.InputMalformed, fmt.Sprintf("%q is empty", path))
	}
	if err != nil {
		return nil, cuterr.Wrap(cuterr.InputMalformed, fmt.Sprintf("%q header", path), err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, cuterr.New(cuterr.InputMalformed, fmt.Sprintf("%q is missing required column %q", path, col))
		}
	}

	r.FieldsPerRecord = len(header)
	return idx, nil
}

// ValidateFeasibility ensures every required cut can be satisfied by at
// least one stock option (spec.md §3's feasibility invariant), returning a
// cuterr.Infeasible error naming the offending cut otherwise.
func ValidateFeasibility(stocks []model.StockOption, cuts []model.RequiredCut) error {
	maxStock := 0.0
	for _, s := range stocks {
		if s.Length > maxStock {
			maxStock = s.Length
		}
	}
	for i, c := range cuts {
		if c.Length > maxStock {
			return cuterr.New(cuterr.Infeasible,
				fmt.Sprintf("required cut %d (%q, length %.3f in) exceeds every stock option (max %.3f in)",
					i, c.Description, c.Length, maxStock))
		}
	}
	return nil
}
