// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming allocates collision-free output paths for one
// conversion run.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
)

// Allocator hands out output paths under a collision policy. It keeps a
// registry of names allocated during the run and probes the filesystem,
// so repeated runs into a non-empty output directory stay collision-free.
//
// The scheme is optimistic: there is no lock between the existence check
// and the eventual write, so two concurrent runs against the same output
// directory can race. A stricter variant would create with O_EXCL; a
// single run never needs it.
type Allocator struct {
	taken map[string]struct{}
}

// NewAllocator returns an empty run-scoped allocator.
func NewAllocator() *Allocator {
	return &Allocator{taken: make(map[string]struct{})}
}

// Allocate returns the output path for baseName+ext under dir. In
// overwrite mode the unsuffixed name is always used. Otherwise, when the
// unsuffixed path already exists on disk, the allocator probes
// baseName-01, -02, ... (two-digit padded, unbounded past 99) for the
// first name that is neither registered in this run nor present on disk.
func (a *Allocator) Allocate(dir, baseName, ext string, overwrite bool) string {
	candidate := baseName + ext
	path := filepath.Join(dir, candidate)

	if overwrite {
		a.taken[candidate] = struct{}{}
		return path
	}

	if !exists(path) {
		a.taken[candidate] = struct{}{}
		return path
	}

	for n := 1; ; n++ {
		candidate = fmt.Sprintf("%s-%02d%s", baseName, n, ext)
		if _, ok := a.taken[candidate]; ok {
			continue
		}
		path = filepath.Join(dir, candidate)
		if exists(path) {
			continue
		}
		a.taken[candidate] = struct{}{}
		return path
	}
}

// PageSuffix returns the 1-indexed page suffix for multi-page documents:
// -p001, -p002, ... The suffix is part of the base name, so collision
// probing applies after it.
func PageSuffix(page int) string {
	return fmt.Sprintf("-p%03d", page)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
