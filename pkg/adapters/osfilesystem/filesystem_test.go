package osfilesystem

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "camera_0__20240101_120000.json")
	testData := []byte(`{"camera_id":0}`)

	if err := fs.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileLeavesNoTempFiles(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "meta.json")
	if err := fs.WriteFile(path, []byte("one")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(path, []byte("two")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
	data, _ := os.ReadFile(path)
	if string(data) != "two" {
		t.Errorf("expected overwritten content, got %q", data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "a", "b", "c", "test.txt")
	if err := fs.WriteFile(testPath, []byte("test")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(tmpDir, "nonexistent.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
}

func TestFileSystem_Remove(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "test.txt")
	os.WriteFile(testPath, []byte("test"), 0644)

	if err := fs.Remove(testPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	exists, _ := fs.Exists(testPath)
	if exists {
		t.Error("expected file to be removed")
	}
}

func TestFileSystem_ListDir(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "b.mp4"), nil, 0644)
	os.WriteFile(filepath.Join(tmpDir, "a.mkv"), nil, 0644)
	os.Mkdir(filepath.Join(tmpDir, "sub.mp4"), 0755)

	names, err := fs.ListDir(tmpDir)
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a.mkv" || names[1] != "b.mp4" {
		t.Errorf("expected [a.mkv b.mp4], got %v", names)
	}
}

func TestFileSystem_ListDirMissing(t *testing.T) {
	fs := New()
	if _, err := fs.ListDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
