package internal

import "fmt"

// ReadError means a source file could not be read at all. The engines treat
// it as a per-file skip, never as a reason to abort the run.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// CopyError means placement of a single file failed. The file is counted as
// an error and the run continues with the next file.
type CopyError struct {
	Src  string
	Dest string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s -> %s: %v", e.Src, e.Dest, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// ConflictError means a duplicate relocation would overwrite an existing
// file. The mover reports it and leaves the source in place.
type ConflictError struct {
	Src  string
	Dest string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("destination already exists: %s (moving %s)", e.Dest, e.Src)
}

// ConfigError is the only fatal class: invalid flag combinations or no
// usable source folder. It aborts before any file is touched.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
