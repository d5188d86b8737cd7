package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// RunStatistics holds the per-category counters for one invocation.
type RunStatistics struct {
	Processed      int
	Duplicates     int
	AlreadyPresent int
	Skipped        int
	Errors         int
	ForksRemoved   int
}

// Organizer places image files from one or more source folders into a
// YEAR/MONTH tree under Destination. Every per-file failure is recorded and
// traversal continues; nothing short of a broken destination aborts a run.
type Organizer struct {
	Config      *Config
	Resolver    *Resolver
	Destination string
	TagPrefix   string
	Rerun       bool
	DryRun      bool

	hashes   map[string]string // digest -> first placed destination path
	manifest *RunManifest
	stats    RunStatistics
}

func NewOrganizer(cfg *Config, resolver *Resolver, destination, tagPrefix string, rerun, dryRun bool) *Organizer {
	return &Organizer{
		Config:      cfg,
		Resolver:    resolver,
		Destination: destination,
		TagPrefix:   tagPrefix,
		Rerun:       rerun,
		DryRun:      dryRun,
		hashes:      make(map[string]string),
	}
}

// Run organizes all sources in order and returns the final statistics.
func (o *Organizer) Run(sources []string) (RunStatistics, error) {
	extensions := o.Config.Extensions()

	var files []string
	for _, source := range sources {
		found, skipped, err := ScanImageFiles(source, extensions)
		if err != nil {
			return o.stats, fmt.Errorf("error scanning %s: %w", source, err)
		}
		files = append(files, found...)
		o.stats.Skipped += skipped
	}
	logrus.Infof("Found %d image files across %d source folder(s)", len(files), len(sources))

	if !o.DryRun {
		manifest, err := NewRunManifest(o.Destination)
		if err != nil {
			return o.stats, err
		}
		defer manifest.Close()
		o.manifest = manifest
		o.manifest.LogRunStart(sources, len(files))
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Organizing"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, path := range files {
		o.processFile(path)
		bar.Add(1)
	}

	if !o.DryRun {
		removed, err := RemoveResourceForks(o.Destination)
		if err != nil {
			logrus.Warnf("Resource fork cleanup incomplete: %v", err)
		}
		o.stats.ForksRemoved = removed
		o.manifest.LogRunEnd(o.stats)
	}

	return o.stats, nil
}

func (o *Organizer) processFile(path string) {
	digest, err := FileHash(path)
	if err != nil {
		logrus.Warnf("Skipping %s - could not calculate hash: %v", path, err)
		o.stats.Skipped++
		o.logSkipped(path, "unreadable")
		return
	}

	date, err := o.Resolver.Resolve(path)
	if err != nil {
		logrus.Warnf("Skipping %s - could not resolve date: %v", path, err)
		o.stats.Skipped++
		o.logSkipped(path, "unreadable")
		return
	}

	if original, seen := o.hashes[digest]; seen {
		o.placeDuplicate(path, digest, date, original)
		return
	}

	if o.Rerun {
		planned := PlannedPath(o.Destination, date, filepath.Base(path), o.TagPrefix)
		if pathExists(planned) {
			logrus.Infof("Already in destination, skipping: %s", path)
			o.stats.AlreadyPresent++
			o.logSkipped(path, "already_present")
			return
		}
	}

	placement, err := Plan(o.Destination, date, filepath.Base(path), o.TagPrefix)
	if err != nil {
		o.recordError(path, err)
		return
	}

	if o.DryRun {
		logrus.Infof("[dry-run] would copy %s -> %s", path, placement.Path())
		o.stats.Processed++
		o.hashes[digest] = placement.Path()
		return
	}

	if err := os.MkdirAll(placement.Dir, 0755); err != nil {
		o.recordError(path, &CopyError{Src: path, Dest: placement.Dir, Err: err})
		return
	}
	if err := CopyFile(path, placement.Path()); err != nil {
		o.recordError(path, err)
		return
	}

	logrus.Infof("Copied: %s -> %s", path, placement.Path())
	o.stats.Processed++
	o.hashes[digest] = placement.Path()
	if o.manifest != nil {
		o.manifest.LogCopied(path, placement.Path(), digest)
	}
}

// placeDuplicate copies a file whose content was already placed this run
// into DESTINATION/duplicates/<parent-dir>/YYYY_MM_name, never silently
// dropping it.
func (o *Organizer) placeDuplicate(path, digest string, date time.Time, original string) {
	dupDir := filepath.Join(o.Destination, "duplicates", filepath.Base(filepath.Dir(path)))
	name := fmt.Sprintf("%04d_%02d_%s", date.Year(), date.Month(), filepath.Base(path))

	final, _, err := ResolveCollision(dupDir, name)
	if err != nil {
		o.recordError(path, err)
		return
	}
	dest := filepath.Join(dupDir, final)

	if o.DryRun {
		logrus.Infof("[dry-run] duplicate of %s, would copy %s -> %s", original, path, dest)
		o.stats.Duplicates++
		return
	}

	if err := os.MkdirAll(dupDir, 0755); err != nil {
		o.recordError(path, &CopyError{Src: path, Dest: dupDir, Err: err})
		return
	}
	if err := CopyFile(path, dest); err != nil {
		o.recordError(path, err)
		return
	}

	logrus.Infof("Duplicate of %s: %s -> %s", original, path, dest)
	o.stats.Duplicates++
	if o.manifest != nil {
		o.manifest.LogDuplicate(path, dest, digest)
	}
}

func (o *Organizer) recordError(path string, err error) {
	logrus.Errorf("Failed processing %s: %v", path, err)
	o.stats.Errors++
	if o.manifest != nil {
		o.manifest.LogError(path, err)
	}
}

func (o *Organizer) logSkipped(path, reason string) {
	if o.manifest != nil {
		o.manifest.LogSkipped(path, reason)
	}
}
