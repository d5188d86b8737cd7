package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// IsImageFile reports whether path looks like an organizable image: a
// recognized extension and not a hidden file.
func IsImageFile(path string, extensions map[string]bool) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// ScanImageFiles walks root depth-first and returns every recognized image
// file plus the count of files passed over (hidden or unsupported). Walk
// errors on individual entries are logged and skipped so one unreadable
// directory never aborts the scan.
func ScanImageFiles(root string, extensions map[string]bool) ([]string, int, error) {
	var files []string
	skipped := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logrus.Warnf("Ignoring walk error for %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case ".DocumentRevisions-V100", ".Spotlight-V100", ".fseventsd":
				logrus.Infof("Skipping system folder: %s", path)
				return fs.SkipDir
			}
			return nil
		}
		if IsImageFile(path, extensions) {
			files = append(files, path)
		} else {
			skipped++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return files, skipped, nil
}

// RemoveResourceForks deletes macOS resource fork companions (._*) anywhere
// under root and returns how many were removed.
func RemoveResourceForks(root string) (int, error) {
	removed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.Warnf("Ignoring walk error for %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), "._") {
			return nil
		}
		if err := os.Remove(path); err != nil {
			logrus.Warnf("Failed to remove resource fork file %s: %v", path, err)
			return nil
		}
		logrus.Infof("Removed resource fork file: %s", path)
		removed++
		return nil
	})
	return removed, err
}
