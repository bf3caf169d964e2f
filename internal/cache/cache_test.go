package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpdateThenSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".biminfo")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	c.Update("/home/user/file.go", 42, 7)
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c2, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	line, col, ok := c2.Position("/home/user/file.go")
	if !ok || line != 42 || col != 7 {
		t.Fatalf("expected (42,7), got (%d,%d) ok=%v", line, col, ok)
	}
}

func TestUpdateExistingEntryReplacesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".biminfo")
	c, _ := Load(path)
	c.Update("/a", 1, 1)
	c.Update("/b", 2, 2)
	c.Update("/a", 10, 10)
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c2, _ := Load(path)
	line, col, ok := c2.Position("/a")
	if !ok || line != 10 || col != 10 {
		t.Fatalf("expected updated (10,10), got (%d,%d) ok=%v", line, col, ok)
	}
	if len(c2.order) != 2 {
		t.Fatalf("expected 2 distinct entries, got %d", len(c2.order))
	}
}

func TestPositionMissingEntry(t *testing.T) {
	c, _ := Load(filepath.Join(t.TempDir(), ".biminfo"))
	if _, _, ok := c.Position("/nowhere"); ok {
		t.Fatalf("expected no entry for unknown path")
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", ".biminfo")
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected path not to exist")
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(c.entries) != 0 {
		t.Fatalf("expected empty cache")
	}
}
