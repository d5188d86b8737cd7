package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindDuplicates_AcrossFolders(t *testing.T) {
	tempDir := t.TempDir()
	folderA := filepath.Join(tempDir, "a")
	folderB := filepath.Join(tempDir, "b")
	os.MkdirAll(folderA, 0755)
	os.MkdirAll(filepath.Join(folderB, "sub"), 0755)

	same := []byte("identical bytes")
	first := filepath.Join(folderA, "one.jpg")
	second := filepath.Join(folderB, "sub", "two.jpg")
	os.WriteFile(first, same, 0644)
	os.WriteFile(second, same, 0644)
	os.WriteFile(filepath.Join(folderA, "unique.jpg"), []byte("different"), 0644)

	sets, err := FindDuplicates(testConfig(), []string{folderA, folderB})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}

	if len(sets) != 1 {
		t.Fatalf("Expected 1 duplicate set, got %d", len(sets))
	}
	set := sets[0]
	if len(set.Files) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(set.Files))
	}
	if set.Files[0].Path != first {
		t.Errorf("Expected first-encountered %s kept, got %s", first, set.Files[0].Path)
	}
	if set.Files[1].Path != second {
		t.Errorf("Expected %s as duplicate, got %s", second, set.Files[1].Path)
	}
}

func TestFindDuplicates_NoFalseMerge(t *testing.T) {
	tempDir := t.TempDir()
	folder := filepath.Join(tempDir, "a")
	os.MkdirAll(folder, 0755)

	os.WriteFile(filepath.Join(folder, "x.jpg"), []byte("bytes 0"), 0644)
	os.WriteFile(filepath.Join(folder, "y.jpg"), []byte("bytes 1"), 0644)

	sets, err := FindDuplicates(testConfig(), []string{folder})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("Files differing by one byte reported as duplicates: %v", sets)
	}
}

func TestRelocateDuplicates_PreservesRelativePath(t *testing.T) {
	tempDir := t.TempDir()
	folderA := filepath.Join(tempDir, "a")
	folderB := filepath.Join(tempDir, "b")
	target := filepath.Join(tempDir, "dups")
	os.MkdirAll(folderA, 0755)
	os.MkdirAll(filepath.Join(folderB, "nested"), 0755)

	same := []byte("identical bytes")
	kept := filepath.Join(folderA, "one.jpg")
	moved := filepath.Join(folderB, "nested", "two.jpg")
	os.WriteFile(kept, same, 0644)
	os.WriteFile(moved, same, 0644)

	sets, err := FindDuplicates(testConfig(), []string{folderA, folderB})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}

	result := RelocateDuplicates(sets, target)
	if result.Moved != 1 {
		t.Errorf("Expected 1 moved, got %d", result.Moved)
	}

	if _, err := os.Stat(kept); err != nil {
		t.Errorf("First-encountered member was moved")
	}
	if _, err := os.Stat(moved); !os.IsNotExist(err) {
		t.Errorf("Duplicate still at original location")
	}
	want := filepath.Join(target, "nested", "two.jpg")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Expected relocated duplicate at %s", want)
	}
}

func TestRelocateDuplicates_Conflict(t *testing.T) {
	tempDir := t.TempDir()
	folderA := filepath.Join(tempDir, "a")
	folderB := filepath.Join(tempDir, "b")
	target := filepath.Join(tempDir, "dups")
	os.MkdirAll(folderA, 0755)
	os.MkdirAll(folderB, 0755)
	os.MkdirAll(target, 0755)

	same := []byte("identical bytes")
	dup := filepath.Join(folderB, "two.jpg")
	os.WriteFile(filepath.Join(folderA, "one.jpg"), same, 0644)
	os.WriteFile(dup, same, 0644)

	// Occupy the computed destination
	os.WriteFile(filepath.Join(target, "two.jpg"), []byte("other"), 0644)

	sets, err := FindDuplicates(testConfig(), []string{folderA, folderB})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}

	result := RelocateDuplicates(sets, target)
	if result.Conflicts != 1 {
		t.Errorf("Expected 1 conflict, got %d", result.Conflicts)
	}
	if result.Moved != 0 {
		t.Errorf("Expected 0 moved, got %d", result.Moved)
	}
	if _, err := os.Stat(dup); err != nil {
		t.Errorf("Conflicting source was moved or deleted")
	}
	if data, _ := os.ReadFile(filepath.Join(target, "two.jpg")); string(data) != "other" {
		t.Errorf("Existing destination file overwritten")
	}
}
