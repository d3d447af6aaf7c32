package main

import "testing"

func TestCaret(t *testing.T) {
	tests := []struct {
		line     string
		col      int
		expected string
	}{
		{"int x = ;", 9, "        ^"},
		{"\tx = ;", 6, "\t    ^"},
		{"", 1, "^"},
		{"ab", 5, "    ^"},
	}
	for _, tc := range tests {
		if got := caret(tc.line, tc.col); got != tc.expected {
			t.Errorf("caret(%q, %d) = %q expected %q", tc.line, tc.col, got, tc.expected)
		}
	}
}
