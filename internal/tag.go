package internal

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// AddTagPrefix renames every image file under folder to carry tag as a
// prefix (tag_name.ext). Files already carrying the exact prefix are left
// untouched, so repeated runs are no-ops.
func AddTagPrefix(cfg *Config, folder, tag string, dryRun bool) (int, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return 0, &ConfigError{Msg: "update folder does not exist or is not a directory: " + folder}
	}

	files, _, err := ScanImageFiles(folder, cfg.Extensions())
	if err != nil {
		return 0, err
	}

	renamed := 0
	for _, path := range files {
		name := filepath.Base(path)
		if HasTagPrefix(name, tag) {
			continue
		}
		newPath := filepath.Join(filepath.Dir(path), tag+"_"+name)

		if dryRun {
			logrus.Infof("[dry-run] would rename %s -> %s", path, newPath)
			renamed++
			continue
		}
		if err := os.Rename(path, newPath); err != nil {
			logrus.Errorf("Error renaming %s: %v", path, err)
			continue
		}
		logrus.Infof("Renamed: %s -> %s", path, newPath)
		renamed++
	}
	return renamed, nil
}
