package wordcount

import "testing"

func TestCount(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"plain text", "went for a long walk", 5},
		{"markup stripped", "Hello <b>world</b>", 2},
		{"whitespace only", "   ", 0},
		{"empty", "", 0},
		{"markup only", "<p></p><br/>", 0},
		{"mixed whitespace runs", "one\ttwo\nthree\r\nfour  five", 5},
		{"markup glues words apart", "one<br>two", 2},
		{"nested markup", "<div><span>just one entry</span></div>", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Count(tc.text); got != tc.want {
				t.Errorf("Count(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}
