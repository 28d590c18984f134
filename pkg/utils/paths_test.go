package utils

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "/"},
		{"root", "/", "/"},
		{"trailing slash", "/about/", "/about"},
		{"missing leading slash", "about", "/about"},
		{"dot segments", "/a/./b/../c", "/a/c"},
		{"whitespace", "  /about  ", "/about"},
		{"double slashes", "//spelling-bee//", "/spelling-bee"},
		{"absolute url", "https://example.com/about", "/about"},
		{"absolute url root", "https://example.com", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.want {
				t.Fatalf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
