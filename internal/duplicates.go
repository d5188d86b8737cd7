package internal

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileRef is an image file together with the source folder it was found
// under, kept so relocation can mirror the source-relative path.
type FileRef struct {
	Path string
	Root string
}

// DuplicateSet groups files with identical content. Files[0] is the first
// encountered in traversal order and is the one that stays in place.
type DuplicateSet struct {
	Hash  string
	Files []FileRef
}

// FindDuplicates hashes every recognized image under the given source
// folders (in argument order, depth-first within each) and returns the
// groups with two or more members, in first-seen order.
func FindDuplicates(cfg *Config, sources []string) ([]DuplicateSet, error) {
	extensions := cfg.Extensions()

	index := make(map[string][]FileRef)
	var order []string

	for _, source := range sources {
		files, _, err := ScanImageFiles(source, extensions)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			digest, err := FileHash(path)
			if err != nil {
				logrus.Warnf("Skipping %s - could not calculate hash: %v", path, err)
				continue
			}
			if _, seen := index[digest]; !seen {
				order = append(order, digest)
			}
			index[digest] = append(index[digest], FileRef{Path: path, Root: source})
		}
	}

	var sets []DuplicateSet
	for _, digest := range order {
		if refs := index[digest]; len(refs) >= 2 {
			sets = append(sets, DuplicateSet{Hash: digest, Files: refs})
		}
	}
	return sets, nil
}

// RelocationResult counts the outcomes of a duplicate relocation pass.
type RelocationResult struct {
	Moved     int
	Conflicts int
	Errors    int
}

// RelocateDuplicates moves every member of each set except the first into
// targetDir, preserving each file's path relative to its originating source
// folder. A name already present at the computed destination is a conflict:
// both files are preserved and the conflict is reported.
func RelocateDuplicates(sets []DuplicateSet, targetDir string) RelocationResult {
	var result RelocationResult

	for _, set := range sets {
		for _, ref := range set.Files[1:] {
			rel, err := filepath.Rel(ref.Root, ref.Path)
			if err != nil {
				logrus.Errorf("Cannot relativize %s against %s: %v", ref.Path, ref.Root, err)
				result.Errors++
				continue
			}
			dest := filepath.Join(targetDir, rel)

			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				logrus.Errorf("Failed to create %s: %v", filepath.Dir(dest), err)
				result.Errors++
				continue
			}

			switch err := MoveFile(ref.Path, dest).(type) {
			case nil:
				logrus.Infof("Moved duplicate: %s -> %s", ref.Path, dest)
				result.Moved++
			case *ConflictError:
				logrus.Errorf("Relocation conflict: %v", err)
				result.Conflicts++
			default:
				logrus.Errorf("Failed to move %s: %v", ref.Path, err)
				result.Errors++
			}
		}
	}
	return result
}
