package internal

import (
	"errors"
	"io"
	"os"
)

// CopyFile copies src to dest atomically (temp file + rename) and carries
// the source modification time over, so a later run dating the copy by
// mtime lands in the same month.
func CopyFile(src, dest string) error {
	if err := copyFileAtomic(src, dest); err != nil {
		return &CopyError{Src: src, Dest: dest, Err: err}
	}
	return nil
}

func copyFileAtomic(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}

	if fi, err := os.Stat(src); err == nil {
		os.Chtimes(dest, fi.ModTime(), fi.ModTime())
	}
	return nil
}

// MoveFile moves src to dest, refusing to overwrite: an existing dest is a
// ConflictError and src stays where it is. Falls back to copy+remove when
// rename crosses filesystems.
func MoveFile(src, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return &ConflictError{Src: src, Dest: dest}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &CopyError{Src: src, Dest: dest, Err: err}
	}

	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFileAtomic(src, dest); err != nil {
		return &CopyError{Src: src, Dest: dest, Err: err}
	}
	if err := os.Remove(src); err != nil {
		return &CopyError{Src: src, Dest: dest, Err: err}
	}
	return nil
}
