package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/maturski-kviz/backend/internal/store"
)

func openDrivers(t *testing.T) map[string]store.Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := store.NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	jsonFile, err := store.NewJSONFile(filepath.Join(dir, "test.json"))
	if err != nil {
		t.Fatalf("failed to open json store: %v", err)
	}

	return map[string]store.Store{"sqlite": sqlite, "json": jsonFile}
}

func TestRoundtrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, store.KeyStatistics, []byte(`{"total_quizzes":3}`)); err != nil {
				t.Fatalf("unexpected set error: %v", err)
			}

			got, err := s.Get(ctx, store.KeyStatistics)
			if err != nil {
				t.Fatalf("unexpected get error: %v", err)
			}
			if string(got) != `{"total_quizzes":3}` {
				t.Errorf("unexpected value: %s", got)
			}
		})
	}
}

func TestSet_Overwrites(t *testing.T) {
	ctx := context.Background()

	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, store.KeyDarkMode, []byte(`false`))
			s.Set(ctx, store.KeyDarkMode, []byte(`true`))

			got, err := s.Get(ctx, store.KeyDarkMode)
			if err != nil {
				t.Fatalf("unexpected get error: %v", err)
			}
			if string(got) != `true` {
				t.Errorf("expected overwritten value, got %s", got)
			}
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	ctx := context.Background()

	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "nothing_here"); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestJSONFile_CorruptFileDoesNotBlockWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "broken.json")

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := store.NewJSONFile(path)
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}

	if err := s.Set(ctx, store.KeyDarkMode, []byte(`true`)); err != nil {
		t.Fatalf("expected write to recover from corrupt file, got %v", err)
	}

	got, err := s.Get(ctx, store.KeyDarkMode)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(got) != `true` {
		t.Errorf("unexpected value: %s", got)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := store.New("postgres", "irrelevant"); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestNew_DefaultsToSQLite(t *testing.T) {
	s, err := store.New("", filepath.Join(t.TempDir(), "default.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Errorf("expected sqlite store, got %T", s)
	}
}
