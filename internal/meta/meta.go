// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meta extracts, merges, and re-applies descriptive image
// metadata across format boundaries. Reads and writes are best-effort
// throughout: a file with broken or missing metadata converts fine, it
// just converts without metadata.
package meta

// Record holds the descriptive metadata owned by one file conversion.
// The named fields are what the converter actively manages; RawEXIF is
// the source's original EXIF block carried through opaquely so tags the
// converter does not know about survive the trip.
type Record struct {
	Caption   string
	Copyright string
	Artist    string
	Keywords  []string

	// RawEXIF is the source EXIF payload in TIFF form, nil when the
	// source had none.
	RawEXIF []byte
}

// Empty reports whether the record carries no metadata at all.
func (r Record) Empty() bool {
	return r.Caption == "" && r.Copyright == "" && r.Artist == "" &&
		len(r.Keywords) == 0 && len(r.RawEXIF) == 0
}

// MergeFallback fills the caption from fallback when the record has none
// and the fallback option is on. Every other field passes through.
func MergeFallback(rec Record, fallback string, useFallback bool) Record {
	if useFallback && rec.Caption == "" && fallback != "" {
		rec.Caption = fallback
	}
	return rec
}
