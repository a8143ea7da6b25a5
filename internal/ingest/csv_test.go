package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heavybullets8/cutstock/internal/model"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp CSV: %v", err)
	}
	return path
}

func TestLoadPrices(t *testing.T) {
	path := writeTempCSV(t, "prices.csv", "length,price\n8,12.50\n12,16.00\n")

	stocks, err := LoadPrices(path)
	if err != nil {
		t.Fatalf("LoadPrices returned error: %v", err)
	}
	if len(stocks) != 2 {
		t.Fatalf("got %d stocks, want 2", len(stocks))
	}
	if stocks[0].Length != 96 {
		t.Errorf("stocks[0].Length = %v, want 96 (8ft in inches)", stocks[0].Length)
	}
	if !stocks[0].Price.Equal(stocks[0].Price) {
		t.Errorf("sanity: price comparison broke")
	}
}

func TestLoadPricesRejectsMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "prices.csv", "length\n8\n")
	if _, err := LoadPrices(path); err == nil {
		t.Fatal("expected error for missing price column")
	}
}

func TestLoadPricesRejectsNonNumericPrice(t *testing.T) {
	path := writeTempCSV(t, "prices.csv", "length,price\n8,expensive\n")
	if _, err := LoadPrices(path); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestLoadParts(t *testing.T) {
	path := writeTempCSV(t, "parts.csv",
		"LEN,QTY,LABEL / PART DESCRIPTION\n30,4,shelf\n19' 6 1/2\",1,header\n")

	cuts, err := LoadParts(path)
	if err != nil {
		t.Fatalf("LoadParts returned error: %v", err)
	}
	if len(cuts) != 2 {
		t.Fatalf("got %d cuts, want 2", len(cuts))
	}
	if cuts[0].Quantity != 4 || cuts[0].Description != "shelf" {
		t.Errorf("cuts[0] = %+v", cuts[0])
	}
	if cuts[1].Length != 234.5 {
		t.Errorf("cuts[1].Length = %v, want 234.5", cuts[1].Length)
	}
}

func TestLoadPartsRejectsZeroQuantity(t *testing.T) {
	path := writeTempCSV(t, "parts.csv", "LEN,QTY,LABEL / PART DESCRIPTION\n30,0,shelf\n")
	if _, err := LoadParts(path); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestValidateFeasibility(t *testing.T) {
	stocks := []model.StockOption{{Length: 96}}
	good := []model.RequiredCut{{Length: 50, Quantity: 1}}
	if err := ValidateFeasibility(stocks, good); err != nil {
		t.Errorf("unexpected error for feasible cut: %v", err)
	}

	bad := []model.RequiredCut{{Length: 120, Quantity: 1, Description: "too long"}}
	if err := ValidateFeasibility(stocks, bad); err == nil {
		t.Error("expected error for a cut longer than every stock option")
	}
}
