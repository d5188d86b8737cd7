package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunManifest records every per-file outcome of an organize run as one JSON
// line, under DESTINATION/runs/<timestamp>/manifest.jsonl. An interrupted
// run leaves a readable log of exactly what was placed.
type RunManifest struct {
	ID   string
	Dir  string
	file *os.File
}

type manifestEvent struct {
	Event  string `json:"event"`
	Ts     string `json:"ts"`
	Src    string `json:"src,omitempty"`
	Dest   string `json:"dest,omitempty"`
	Hash   string `json:"hash,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`

	// Run start/end fields
	Sources        []string `json:"sources,omitempty"`
	TotalFiles     int      `json:"total_files,omitempty"`
	Processed      int      `json:"processed,omitempty"`
	Duplicates     int      `json:"duplicates,omitempty"`
	AlreadyPresent int      `json:"already_present,omitempty"`
	Skipped        int      `json:"skipped,omitempty"`
	Errors         int      `json:"errors,omitempty"`
	ForksRemoved   int      `json:"forks_removed,omitempty"`
}

func NewRunManifest(destination string) (*RunManifest, error) {
	id := time.Now().Format("2006-01-02-150405")
	dir := filepath.Join(destination, "runs", id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	path := filepath.Join(dir, "manifest.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &RunManifest{ID: id, Dir: dir, file: f}, nil
}

func (m *RunManifest) LogRunStart(sources []string, totalFiles int) error {
	return m.writeEvent(manifestEvent{
		Event:      "run_start",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		Sources:    sources,
		TotalFiles: totalFiles,
	})
}

func (m *RunManifest) LogCopied(src, dest, hash string) error {
	return m.writeEvent(manifestEvent{
		Event: "copied",
		Ts:    time.Now().UTC().Format(time.RFC3339),
		Src:   src,
		Dest:  dest,
		Hash:  hash,
	})
}

func (m *RunManifest) LogDuplicate(src, dest, hash string) error {
	return m.writeEvent(manifestEvent{
		Event: "duplicate",
		Ts:    time.Now().UTC().Format(time.RFC3339),
		Src:   src,
		Dest:  dest,
		Hash:  hash,
	})
}

func (m *RunManifest) LogSkipped(src, reason string) error {
	return m.writeEvent(manifestEvent{
		Event:  "skipped",
		Ts:     time.Now().UTC().Format(time.RFC3339),
		Src:    src,
		Reason: reason,
	})
}

func (m *RunManifest) LogError(src string, err error) error {
	return m.writeEvent(manifestEvent{
		Event: "error",
		Ts:    time.Now().UTC().Format(time.RFC3339),
		Src:   src,
		Error: err.Error(),
	})
}

func (m *RunManifest) LogRunEnd(stats RunStatistics) error {
	return m.writeEvent(manifestEvent{
		Event:          "run_end",
		Ts:             time.Now().UTC().Format(time.RFC3339),
		Processed:      stats.Processed,
		Duplicates:     stats.Duplicates,
		AlreadyPresent: stats.AlreadyPresent,
		Skipped:        stats.Skipped,
		Errors:         stats.Errors,
		ForksRemoved:   stats.ForksRemoved,
	})
}

func (m *RunManifest) Close() error {
	if m.file != nil {
		return m.file.Close()
	}
	return nil
}

func (m *RunManifest) writeEvent(event manifestEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := m.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}
	return m.file.Sync()
}
