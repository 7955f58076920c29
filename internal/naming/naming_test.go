// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package naming

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAllocateFresh(t *testing.T) {
	dir := t.TempDir()
	a := NewAllocator()

	got := a.Allocate(dir, "foo", ".webp", false)
	want := filepath.Join(dir, "foo.webp")
	if got != want {
		t.Errorf("Allocate = %q, want %q", got, want)
	}
}

func TestAllocateCollisions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.webp"))

	a := NewAllocator()

	first := a.Allocate(dir, "foo", ".webp", false)
	if want := filepath.Join(dir, "foo-01.webp"); first != want {
		t.Errorf("first = %q, want %q", first, want)
	}

	// Second allocation in the same run must skip the registered -01
	// even though nothing was written there yet.
	second := a.Allocate(dir, "foo", ".webp", false)
	if want := filepath.Join(dir, "foo-02.webp"); second != want {
		t.Errorf("second = %q, want %q", second, want)
	}
}

func TestAllocateSkipsExistingSuffixes(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.webp"))
	touch(t, filepath.Join(dir, "foo-01.webp"))
	touch(t, filepath.Join(dir, "foo-02.webp"))

	a := NewAllocator()
	got := a.Allocate(dir, "foo", ".webp", false)
	if want := filepath.Join(dir, "foo-03.webp"); got != want {
		t.Errorf("Allocate = %q, want %q", got, want)
	}
}

func TestAllocateOverwrite(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.webp"))

	a := NewAllocator()
	want := filepath.Join(dir, "foo.webp")
	for i := 0; i < 2; i++ {
		if got := a.Allocate(dir, "foo", ".webp", true); got != want {
			t.Errorf("allocation %d = %q, want %q", i+1, got, want)
		}
	}
}

func TestPageSuffix(t *testing.T) {
	tests := []struct {
		page int
		want string
	}{
		{1, "-p001"},
		{12, "-p012"},
		{123, "-p123"},
		{1234, "-p1234"},
	}
	for _, tt := range tests {
		if got := PageSuffix(tt.page); got != tt.want {
			t.Errorf("PageSuffix(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}
