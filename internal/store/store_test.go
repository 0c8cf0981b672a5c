package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Errorf("kv table not found after idempotent opens: %v", err)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestSQLite_GetMissing(t *testing.T) {
	s := createTestStore(t)

	v, found, err := s.Get(context.Background(), KeyProducts)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found || v != "" {
		t.Errorf("Get() = %q, %v; want empty, not found", v, found)
	}
}

func TestSQLite_SetOverwrites(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, KeyCart, `[]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Set(ctx, KeyCart, `[{"quantity":1}]`); err != nil {
		t.Fatalf("second Set() failed: %v", err)
	}

	v, found, err := s.Get(ctx, KeyCart)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found || v != `[{"quantity":1}]` {
		t.Errorf("Get() = %q, %v", v, found)
	}

	var rows int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&rows); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("kv rows = %d, want 1", rows)
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s1.Set(ctx, KeySiteConfig, `{"shopName":"Piscine"}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	v, found, err := s2.Get(ctx, KeySiteConfig)
	if err != nil || !found {
		t.Fatalf("Get() after reopen = %v, %v", found, err)
	}
	if v != `{"shopName":"Piscine"}` {
		t.Errorf("Get() = %q", v)
	}
}

func TestSQLite_Keys(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, k := range []string{KeyWishlist, KeyCart, KeyOrders} {
		if err := s.Set(ctx, k, "[]"); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	want := []string{KeyCart, KeyOrders, KeyWishlist}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestSQLite_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}

	if _, _, err := s.Get(context.Background(), KeyCart); err != ErrClosed {
		t.Errorf("Get() after close = %v, want ErrClosed", err)
	}
	if err := s.Set(context.Background(), KeyCart, "[]"); err != ErrClosed {
		t.Errorf("Set() after close = %v, want ErrClosed", err)
	}
}

func TestKeys_FixedSet(t *testing.T) {
	if len(Keys) != 22 {
		t.Fatalf("len(Keys) = %d, want 22", len(Keys))
	}
	seen := map[string]bool{}
	for _, k := range Keys {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
	if !IsKnownKey(KeyRecentlyViewed) {
		t.Error("recentlyViewed should be known")
	}
	if IsKnownKey("sessions") {
		t.Error("sessions should not be known")
	}
}
