package money

import "testing"

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount int
		want   string
	}{
		{0, "$0"},
		{900, "$900"},
		{14000, "$14,000"},
		{28000, "$28,000"},
		{1250000, "$1,250,000"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
