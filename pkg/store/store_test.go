package store

import (
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleResults(runID string) []Result {
	now := time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC)
	return []Result{
		{RunID: runID, Task: "residue", Kind: "integrate", Formula: `\frac{1}{z}`, Re: 0, Im: 2 * math.Pi, Created: now},
		{RunID: runID, Task: "show", Kind: "latex", Formula: `\sin\left(z\right)`, Created: now},
		{RunID: runID, Task: "bad", Kind: "derivative", Formula: `z`, Re: math.NaN(), Im: math.NaN(), Err: "not converged", Created: now},
	}
}

// checkStore exercises the Store contract shared by all implementations.
func checkStore(t *testing.T, s Store) {
	t.Helper()
	want := sampleResults("run-a")
	for _, r := range want {
		if err := s.Put(r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if err := s.Put(Result{RunID: "run-b", Task: "other", Kind: "eval", Re: 1, Created: time.Now()}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Results("run-a")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Task != w.Task || g.Kind != w.Kind || g.Formula != w.Formula || g.Err != w.Err {
			t.Errorf("result %d: got %+v, want %+v", i, g, w)
		}
		if !sameFloat(g.Re, w.Re) || !sameFloat(g.Im, w.Im) {
			t.Errorf("result %d: value %v, want %v", i, g.Value(), w.Value())
		}
		if !g.Created.Equal(w.Created) {
			t.Errorf("result %d: created %v, want %v", i, g.Created, w.Created)
		}
	}

	none, err := s.Results("missing")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results for unknown run, got %d", len(none))
	}
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	checkStore(t, s)
}

func TestMemoryResultsAreCopies(t *testing.T) {
	s := NewMemory()
	s.Put(Result{RunID: "r", Task: "a"})
	got, _ := s.Results("r")
	got[0].Task = "changed"
	again, _ := s.Results("r")
	if again[0].Task != "a" {
		t.Error("Results exposed internal state")
	}
}

func TestSQLiteStore(t *testing.T) {
	f, err := os.CreateTemp("", "libcalculus-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	checkStore(t, s)
	s.Close()

	// Reopen and check persistence
	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()
	got, err := s2.Results("run-a")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 persisted results, got %d", len(got))
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	version, err := s.metadata("schema_version")
	if err != nil {
		t.Fatal(err)
	}
	if version != SchemaVersion {
		t.Errorf("schema_version = %q, want %q", version, SchemaVersion)
	}
	s.Close()

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE metadata SET value = '99' WHERE key = 'schema_version'`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := NewSQLite(path); err == nil {
		t.Error("expected error for unsupported schema version")
	}
}
