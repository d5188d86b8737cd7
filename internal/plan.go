package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxCollisionProbes bounds the sequential suffix search so a pathological
// directory cannot spin the planner forever.
const maxCollisionProbes = 10000

// Placement is the planned destination for one file.
type Placement struct {
	Dir      string
	Name     string
	Suffixed bool
}

func (p Placement) Path() string {
	return filepath.Join(p.Dir, p.Name)
}

// PlannedPath returns the pre-collision candidate path for a file: the
// YYYY/MM directory plus the (optionally tag-prefixed) original name. The
// rerun mode existence probe checks exactly this path.
func PlannedPath(baseDir string, date time.Time, filename, tagPrefix string) string {
	dir, name := planTarget(baseDir, date, filename, tagPrefix)
	return filepath.Join(dir, name)
}

// Plan computes the final placement for a file, appending a numeric suffix
// if the candidate name is already taken in the target directory.
func Plan(baseDir string, date time.Time, filename, tagPrefix string) (Placement, error) {
	dir, name := planTarget(baseDir, date, filename, tagPrefix)
	final, suffixed, err := ResolveCollision(dir, name)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Dir: dir, Name: final, Suffixed: suffixed}, nil
}

func planTarget(baseDir string, date time.Time, filename, tagPrefix string) (string, string) {
	dir := filepath.Join(baseDir,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", date.Month()))
	name := filename
	if tagPrefix != "" {
		name = tagPrefix + "_" + filename
	}
	return dir, name
}

// ResolveCollision returns the first unused variant of name inside dir:
// the name itself, then name_1, name_2, ... before the extension. The probe
// compares names only, never content.
func ResolveCollision(dir, name string) (string, bool, error) {
	if !pathExists(filepath.Join(dir, name)) {
		return name, false, nil
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxCollisionProbes; i++ {
		try := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !pathExists(filepath.Join(dir, try)) {
			return try, true, nil
		}
	}
	return "", false, &CopyError{
		Dest: filepath.Join(dir, name),
		Err:  fmt.Errorf("no free name after %d probes", maxCollisionProbes),
	}
}

// HasTagPrefix reports whether name already carries the exact tag prefix,
// which makes re-tagging a no-op.
func HasTagPrefix(name, tag string) bool {
	return strings.HasPrefix(name, tag+"_")
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
