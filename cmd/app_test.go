package cmd

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"100", "100", true},
		{"250.50", "250.5", true},
		{"-5", "-5", true}, // range checks belong to the ledger, not the flag parser
		{"", "", false},
		{"12,5", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("parseAmount(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got.String() != tt.want {
			t.Errorf("parseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
