package ingest

import "testing"

func TestParseLength(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"288", 288, false},
		{"180.5", 180.5, false},
		{`24'`, 288, false},
		{`19' 6 1/2"`, 234.5, false},
		{`6 1/2`, 6.5, false},
		{"", 0, true},
		{"not a length", 0, true},
		{`1/0`, 0, true},
	}
	for _, c := range cases {
		got, err := ParseLength(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseLength(%q) = %v, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLength(%q) unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseLength(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
