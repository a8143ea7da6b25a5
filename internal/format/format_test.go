package format

import "testing"

func TestPrettyLength(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, `0"`},
		{6, `6"`},
		{12, `1' 0"`},
		{128.25, `10' 8 1/4"`},
		{6.5, `6 1/2"`},
		{-6.5, `-6 1/2"`},
	}
	for _, c := range cases {
		got := PrettyLength(c.in)
		if got != c.want {
			t.Errorf("PrettyLength(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
