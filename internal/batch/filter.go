// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"path/filepath"
	"strings"
)

// SplitPatterns parses a comma-separated pattern list, dropping empties.
func SplitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeExts parses a comma-separated extension list into lowercase
// extensions with a leading dot ("tif, .JPG" becomes [".tif", ".jpg"]).
func NormalizeExts(s string) []string {
	var out []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
		if e != "" {
			out = append(out, "."+e)
		}
	}
	return out
}

// ExcludeDir reports whether any path segment of dir contains any of the
// patterns, case-insensitively.
func ExcludeDir(dir string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		lower := strings.ToLower(part)
		for _, p := range patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}

// IncludeName reports whether the filename stem contains any of the
// patterns, case-insensitively. An empty pattern list includes
// everything.
func IncludeName(stem string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	lower := strings.ToLower(stem)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
