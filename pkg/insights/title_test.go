package insights

import (
	"strings"
	"testing"
)

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			"short first sentence",
			"Sell before you build. Validate demand first.",
			"Sell before you build",
		},
		{
			"no sentence terminator",
			"a fragment without any period",
			"a fragment without any period",
		},
		{
			"long first sentence truncated",
			strings.Repeat("x", 60) + ". More text.",
			strings.Repeat("x", 47) + "...",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveTitle(tc.content); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDeriveQuote(t *testing.T) {
	short := "a quotable line"
	if got := DeriveQuote(short); got != short {
		t.Errorf("short content should be its own quote, got %q", got)
	}

	long := strings.Repeat("word ", 50)
	if got := DeriveQuote(long); got != "" {
		t.Errorf("long content should yield no quote, got %q", got)
	}
}
