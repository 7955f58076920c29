// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug derives WordPress-friendly ASCII filenames from arbitrary
// Unicode names and reconstructs human-readable captions from them.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned for names that slugify to nothing.
const Fallback = "datei"

// germanDigraphs maps the precomposed umlauts and sharp-s to their ASCII
// digraphs. This runs before the generic decomposition pass: plain mark
// stripping would turn ü into u and ß into nothing, not ue and ss.
var germanDigraphs = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
	"ß", "ss",
)

// stripMarks decomposes to NFKD and removes combining marks.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a filename stem to a slug of [a-z0-9-] with no
// leading, trailing, or doubled hyphens. It is total: every input maps
// to a valid, non-empty slug, with Fallback covering the empty case.
func Slugify(name string) string {
	s := germanDigraphs.Replace(name)

	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return Fallback
	}
	return s
}
