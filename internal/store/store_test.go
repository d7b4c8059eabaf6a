package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/quizdeck/ent/snapshot"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if err := s.DB().Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Load(ctx, "ledger")
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{Key: "ledger", Data: []byte(`{"v":1}`), UpdatedAt: now})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Load(ctx, "ledger")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if string(snap.Data) != `{"v":1}` {
		t.Errorf("data = %s, want {\"v\":1}", snap.Data)
	}
	if !snap.UpdatedAt.Equal(now) {
		t.Errorf("updated_at = %v, want %v", snap.UpdatedAt, now)
	}
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i, data := range []string{"first", "second", "third"} {
		err := repo.Save(ctx, &Snapshot{Key: "ledger", Data: []byte(data)})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Load(ctx, "ledger")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(snap.Data) != "third" {
		t.Errorf("data = %q, want %q", snap.Data, "third")
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
}

func TestSnapshotKeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &Snapshot{Key: "a", Data: []byte("A")}); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := repo.Save(ctx, &Snapshot{Key: "b", Data: []byte("B")}); err != nil {
		t.Fatalf("save b: %v", err)
	}
	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	if snap, _ := repo.Load(ctx, "a"); snap != nil {
		t.Error("expected a to be deleted")
	}
	snap, err := repo.Load(ctx, "b")
	if err != nil || snap == nil || string(snap.Data) != "B" {
		t.Errorf("load b = %v, %v", snap, err)
	}
}

func TestSnapshotSaveRequiresKey(t *testing.T) {
	s := openTestStore(t)
	if err := s.SnapshotRepo().Save(context.Background(), &Snapshot{Data: []byte("x")}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestSnapshotOverwriteKeepsRowIdentity(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &Snapshot{Key: "session", Data: []byte("v1")}); err != nil {
		t.Fatalf("save v1: %v", err)
	}
	first, err := s.Client().Snapshot.Query().Where(snapshot.Key("session")).Only(ctx)
	if err != nil {
		t.Fatalf("query v1: %v", err)
	}

	later := first.UpdatedAt.Add(time.Minute)
	if err := repo.Save(ctx, &Snapshot{Key: "session", Data: []byte("v2"), UpdatedAt: later}); err != nil {
		t.Fatalf("save v2: %v", err)
	}
	second, err := s.Client().Snapshot.Query().Where(snapshot.Key("session")).Only(ctx)
	if err != nil {
		t.Fatalf("query v2: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("id = %d, want %d", second.ID, first.ID)
	}
	if string(second.Data) != "v2" {
		t.Errorf("data = %q, want v2", second.Data)
	}
	if !second.UpdatedAt.Equal(later.UTC()) {
		t.Errorf("updated_at = %v, want %v", second.UpdatedAt, later)
	}
}

func TestSnapshotKeyValidatorRejectsEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Client().Snapshot.Create().
		SetKey("").
		SetData([]byte("x")).
		Save(context.Background())
	if err == nil {
		t.Fatal("expected validation error for empty key")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{Key: "ledger", Data: []byte("kept")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	snap, err := s.SnapshotRepo().Load(ctx, "ledger")
	if err != nil || snap == nil {
		t.Fatalf("load after reopen = %v, %v", snap, err)
	}
	if string(snap.Data) != "kept" {
		t.Errorf("data = %q, want kept", snap.Data)
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "q.db")
	t.Setenv("QUIZDECK_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZDECK_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "quizdeck", "quizdeck.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
