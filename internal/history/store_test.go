// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"path/filepath"
	"testing"
)

func TestRecordAndRecent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Record("/src/a.jpg", "/out/a.webp", "webp", "A Caption"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record("/src/b.pdf", "/out/b-p001.webp", "webp", ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Source != "/src/b.pdf" {
		t.Errorf("entries[0].Source = %q, want /src/b.pdf", entries[0].Source)
	}
	if entries[1].Caption != "A Caption" {
		t.Errorf("entries[1].Caption = %q, want A Caption", entries[1].Caption)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

func TestRecentLimit(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	for i := 0; i < 5; i++ {
		if err := s.Record("/src/x.jpg", "/out/x.webp", "webp", ""); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	entries, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestOpenReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Record("/src/a.jpg", "/out/a.webp", "webp", ""); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after reopen, want 1", len(entries))
	}
}
