// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Photo", "photo"},
		{"spaces and punctuation", "Straße 5 & Co.", "strasse-5-co"},
		{"precomposed umlauts", "Büro Küche Öl", "buero-kueche-oel"},
		{"uppercase umlauts", "ÄPFEL ÖL ÜBUNG", "aepfel-oel-uebung"},
		// A combining diaeresis (u + U+0308) is not in the digraph map;
		// the decomposition pass strips the mark instead.
		{"decomposed umlaut", "Büroportfolio", "buroportfolio"},
		{"french diacritics", "Crème brûlée", "creme-brulee"},
		{"underscores", "__hello__world__", "hello-world"},
		{"leading trailing junk", "--Titel--", "titel"},
		{"empty", "", Fallback},
		{"only punctuation", "!!! ???", Fallback},
		{"digits kept", "Plan 02735 v2", "plan-02735-v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Straße 5 & Co.", "Büroportfolio", "WKB - Kita Beuren",
		"", "already-a-slug", "Übermäßig große Datei (final).TIF",
	}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestReadableCaption(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"date as trailing suffix", "wkb-vacation-photo-251124", "WKB Vacation Photo"},
		{"embedded date", "wkb-240430-kita-beuren", "WKB Kita Beuren"},
		{"collision index then date", "wkb-251124-floorplan-02", "WKB Floorplan"},
		{"page suffix", "site-map-p002", "SITe Map"},
		{"only first date token removed", "x-111111-mid-222222-y", "X Mid 222222 Y"},
		{"short input fully uppercased", "ab", "AB"},
		{"plain word", "portfolio", "PORtfolio"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadableCaption(tt.in); got != tt.want {
				t.Errorf("ReadableCaption(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
