package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyIsLoggedIn); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, KeyUserData, `{"token":"abc"}`); err != nil {
		t.Fatalf("set userData: %v", err)
	}
	if err := s.Set(ctx, KeyIsLoggedIn, "false"); err != nil {
		t.Fatalf("set isLoggedIn: %v", err)
	}
	if err := s.Set(ctx, KeyIsLoggedIn, "true"); err != nil {
		t.Fatalf("overwrite isLoggedIn: %v", err)
	}

	got, ok, err := s.Get(ctx, KeyIsLoggedIn)
	if err != nil || !ok || got != "true" {
		t.Fatalf("expected isLoggedIn=true, got %q ok=%v err=%v", got, ok, err)
	}
	got, _, _ = s.Get(ctx, KeyUserData)
	if got != `{"token":"abc"}` {
		t.Fatalf("unexpected userData %q", got)
	}

	if err := s.Delete(ctx, KeyUserData); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyUserData); ok {
		t.Fatalf("expected userData deleted")
	}
	if err := s.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	exerciseStorage(t, s)
	if diff := cmp.Diff(map[string]string{KeyIsLoggedIn: "true"}, s.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemory().Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	exerciseStorage(t, NewFile(path))

	reopened := NewFile(path)
	got, ok, err := reopened.Get(context.Background(), KeyIsLoggedIn)
	if err != nil || !ok || got != "true" {
		t.Fatalf("expected value persisted across instances, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, _, err := NewFile(path).Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "storage.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStorage(t, s)

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestSQLite_CloseDuringUse(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "storage.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if err := s.Set(ctx, KeyIsLoggedIn, "true"); err != nil && !errors.Is(err, ErrClosed) {
					t.Errorf("set: %v", err)
					return
				}
				if _, _, err := s.Get(ctx, KeyIsLoggedIn); err != nil && !errors.Is(err, ErrClosed) {
					t.Errorf("get: %v", err)
					return
				}
			}
		}()
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	wg.Wait()

	if _, _, err := s.Get(ctx, KeyIsLoggedIn); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
}
