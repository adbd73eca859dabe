package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *QueryStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestQueryStore_RecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	for _, q := range []string{"first", "second", "third"} {
		if err := s.Record(q); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"third", "second", "first"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQueryStore_DuplicateMovesToFront(t *testing.T) {
	s := openTestStore(t)

	for _, q := range []string{"alpha", "beta", "alpha"} {
		if err := s.Record(q); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 entries", got)
	}
	if got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("got %v, want [alpha beta]", got)
	}
}

func TestQueryStore_PrunesBeyondMax(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < MaxQueries+3; i++ {
		if err := s.Record(fmt.Sprintf("query-%02d", i)); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != MaxQueries {
		t.Fatalf("kept %d queries, want %d", len(got), MaxQueries)
	}
	if got[0] != fmt.Sprintf("query-%02d", MaxQueries+2) {
		t.Errorf("newest = %q", got[0])
	}
	for _, q := range got {
		if q == "query-00" {
			t.Error("oldest query should have been pruned")
		}
	}
}

func TestQueryStore_EmptyQueryIgnored(t *testing.T) {
	s := openTestStore(t)
	if err := s.Record(""); err != nil {
		t.Fatal(err)
	}
	got, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestQueryStore_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record("persisted"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "persisted" {
		t.Errorf("got %v after reopen", got)
	}
}
