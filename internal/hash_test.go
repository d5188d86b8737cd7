package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileHash_SameContentSameDigest(t *testing.T) {
	tempDir := t.TempDir()

	pathA := filepath.Join(tempDir, "a.jpg")
	pathB := filepath.Join(tempDir, "sub", "renamed.jpg")
	os.MkdirAll(filepath.Dir(pathB), 0755)
	content := []byte("identical image bytes")
	os.WriteFile(pathA, content, 0644)
	os.WriteFile(pathB, content, 0644)

	hashA, err := FileHash(pathA)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	hashB, err := FileHash(pathB)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}

	if hashA != hashB {
		t.Errorf("Identical content produced different digests: %s vs %s", hashA, hashB)
	}
}

func TestFileHash_SingleByteDifference(t *testing.T) {
	tempDir := t.TempDir()

	pathA := filepath.Join(tempDir, "a.jpg")
	pathB := filepath.Join(tempDir, "b.jpg")
	os.WriteFile(pathA, []byte("image bytes 0"), 0644)
	os.WriteFile(pathB, []byte("image bytes 1"), 0644)

	hashA, _ := FileHash(pathA)
	hashB, _ := FileHash(pathB)

	if hashA == hashB {
		t.Errorf("Different content produced identical digest: %s", hashA)
	}
}

func TestFileHash_UnreadableFile(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Expected *ReadError, got %T: %v", err, err)
	}
}
