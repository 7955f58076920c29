// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import (
	"regexp"
	"strings"
)

var prefixStrip = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizePrefix reduces a user-supplied prefix to lowercase
// alphanumerics with exactly one trailing hyphen. Empty input (or input
// with no usable characters) yields the empty no-op prefix.
func NormalizePrefix(raw string) string {
	if raw == "" {
		return ""
	}
	p := prefixStrip.ReplaceAllString(strings.ToLower(raw), "")
	if p != "" && !strings.HasSuffix(p, "-") {
		p += "-"
	}
	return p
}

// EnsurePrefix prepends prefix to s unless s already carries it, with or
// without the trailing hyphen. Re-running a conversion over already
// prefixed names must not stack prefixes.
func EnsurePrefix(s, prefix string) string {
	if prefix == "" {
		return s
	}
	base := strings.TrimRight(prefix, "-")
	if strings.HasPrefix(s, prefix) || strings.HasPrefix(s, base) {
		return s
	}
	return prefix + s
}
