// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import (
	"regexp"
	"strings"
)

var (
	trailingIndex = regexp.MustCompile(`-\d+$`)
	trailingPage  = regexp.MustCompile(`-p\d+$`)
	dateToken     = regexp.MustCompile(`-\d{6}(-|$)`)
	hyphenRuns    = regexp.MustCompile(`[-\s]+`)
)

// ReadableCaption reconstructs a human caption from a slug, for use as a
// metadata fallback. It strips a trailing collision index (-01), a page
// suffix (-p001), and the first embedded 6-digit date token (251124 as
// YYMMDD or DDMMYY), then capitalizes each word. The leading three
// characters are uppercased so project codes render as all-caps
// ("wkb-kita" becomes "WKB Kita").
//
// Only the first 6-digit run is removed: a name carrying two such tokens
// keeps the later one. That asymmetry is long-standing behavior that
// downstream captions depend on.
func ReadableCaption(s string) string {
	name := trailingIndex.ReplaceAllString(s, "")
	name = trailingPage.ReplaceAllString(name, "")

	// First date token only; keep whatever the capture group matched so
	// "a-251124-b" joins back up as "a-b".
	if loc := dateToken.FindStringSubmatchIndex(name); loc != nil {
		name = name[:loc[0]] + name[loc[2]:loc[3]] + name[loc[1]:]
	}

	name = hyphenRuns.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	name = strings.Join(words, " ")

	r := []rune(name)
	switch {
	case len(r) >= 3:
		name = strings.ToUpper(string(r[:3])) + string(r[3:])
	case len(r) > 0:
		name = strings.ToUpper(name)
	}

	if name == "" {
		return s
	}
	return name
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
