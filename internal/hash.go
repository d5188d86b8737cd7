package internal

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileHash computes the SHA256 digest of a file's content. Identical bytes
// always yield identical digests regardless of path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
