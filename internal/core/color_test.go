package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		ok       bool
	}{
		{"red", ColorRed, true},
		{"BRIGHT_GREEN", ColorBrightGreen, true},
		{" gray ", ColorGray, true},
		{"", ColorDefault, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseColor(tc.input)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.input, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for c := ColorDefault; c <= ColorGray; c++ {
		got, ok := ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = (%v, %v), expected %v", c.String(), got, ok, c)
		}
	}
}
