package wifi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCredStoreMissingFileIsEmpty(t *testing.T) {
	store := NewCredStore(filepath.Join(t.TempDir(), "creds.json"))
	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(creds) != 0 {
		t.Fatalf("expected empty store, got %v", creds)
	}
}

func TestCredStoreRoundTrip(t *testing.T) {
	store := NewCredStore(filepath.Join(t.TempDir(), "nested", "creds.json"))
	if err := store.Add("CorpNet", "hunter2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add("GuestNet", "welcome1"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds["CorpNet"] != "hunter2" || creds["GuestNet"] != "welcome1" {
		t.Fatalf("unexpected credentials: %v", creds)
	}

	ssids, err := store.SSIDs()
	if err != nil {
		t.Fatalf("SSIDs: %v", err)
	}
	if len(ssids) != 2 || ssids[0] != "CorpNet" || ssids[1] != "GuestNet" {
		t.Fatalf("unexpected ssids: %v", ssids)
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("credentials file mode = %o", perm)
	}
}

func TestCredStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCredStore(path).Load(); err == nil {
		t.Fatal("garbage file accepted")
	}
}
