package remote

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirSourceListJSON(t *testing.T) {
	root := t.TempDir()
	statsDir := filepath.Join(root, "world", "stats")
	if err := os.MkdirAll(statsDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.json", "b.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(statsDir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(statsDir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	src := DirSource(root)
	defer src.Close()

	names, err := src.ListJSON("/world/stats")
	if err != nil {
		t.Fatalf("ListJSON: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("ListJSON = %v, want the two .json files", names)
	}
	for _, n := range names {
		if n != "a.json" && n != "b.json" {
			t.Errorf("unexpected entry %q", n)
		}
	}
}

func TestDirSourceReadFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "usercache.json"), []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}

	src := DirSource(root)
	defer src.Close()

	data, err := src.ReadFile("/usercache.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("contents = %q", data)
	}

	if _, err := src.ReadFile("/missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
