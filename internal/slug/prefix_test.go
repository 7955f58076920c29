// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import "testing"

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABC-123!", "abc123-"},
		{"wkb", "wkb-"},
		{"WKB-", "wkb-"},
		{"", ""},
		{"---", ""},
		{"  §$%  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizePrefix(tt.in); got != tt.want {
			t.Errorf("NormalizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnsurePrefix(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		prefix string
		want   string
	}{
		{"plain prepend", "kita-beuren", "wkb-", "wkb-kita-beuren"},
		{"already prefixed", "wkb-kita-beuren", "wkb-", "wkb-kita-beuren"},
		{"prefixed without hyphen", "wkbkita", "wkb-", "wkbkita"},
		{"empty prefix", "kita-beuren", "", "kita-beuren"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsurePrefix(tt.s, tt.prefix); got != tt.want {
				t.Errorf("EnsurePrefix(%q, %q) = %q, want %q", tt.s, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestEnsurePrefixIdempotent(t *testing.T) {
	slugs := []string{"kita-beuren", "wkb-kita", "datei", "wkbfoo"}
	prefixes := []string{"", "wkb-", "abc123-"}
	for _, s := range slugs {
		for _, p := range prefixes {
			once := EnsurePrefix(s, p)
			if twice := EnsurePrefix(once, p); twice != once {
				t.Errorf("EnsurePrefix(%q, %q) not idempotent: %q != %q", s, p, twice, once)
			}
		}
	}
}
