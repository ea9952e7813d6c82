package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	var v sample
	found, err := Load(path, &v)
	if err != nil {
		t.Fatalf("Load() on missing file returned error: %v", err)
	}
	if found {
		t.Error("Load() on missing file reported found = true")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")

	in := sample{Name: "kitakaze", Count: 42}
	if err := Save(path, &in); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	var out sample
	found, err := Load(path, &out)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !found {
		t.Fatal("Load() reported found = false for saved file")
	}
	if out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var v sample
	_, err := Load(path, &v)
	if err == nil {
		t.Fatal("Load() on corrupt file returned nil error")
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt in chain", err)
	}
}

func TestSaveOverwritesInFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	if err := Save(path, &sample{Name: "first", Count: 1}); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, &sample{Name: "second", Count: 2}); err != nil {
		t.Fatal(err)
	}

	var out sample
	if _, err := Load(path, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "second" || out.Count != 2 {
		t.Errorf("got %+v after overwrite, want second/2", out)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := Save(path, &sample{}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after Save, want 1", len(entries))
	}
}
