package internal

import (
	"fmt"
	"os"
	"sync"
	"time"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// Extractor pulls a capture timestamp out of embedded image metadata.
// A zero time or an error both mean "no usable metadata"; the Resolver
// falls back to the file modification time in either case.
type Extractor interface {
	Extract(path string) (time.Time, error)
}

// ExifExtractor reads EXIF natively via goexif.
type ExifExtractor struct{}

func (ExifExtractor) Extract(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime, exif.DateTimeDigitized} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		dateStr, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, err := ParseExifDate(dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no date tag in %s", path)
}

// ExifToolExtractor shells out to the exiftool binary, which understands
// far more formats (vendor RAW in particular) than the native decoder.
type ExifToolExtractor struct {
	et *exiftool.Exiftool
	mu sync.Mutex
}

func NewExifToolExtractor() (*ExifToolExtractor, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exiftool: %w", err)
	}
	return &ExifToolExtractor{et: et}, nil
}

func (e *ExifToolExtractor) Extract(path string) (time.Time, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fileInfos := e.et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return time.Time{}, fmt.Errorf("no metadata extracted for %s", path)
	}
	fi := fileInfos[0]
	if fi.Err != nil {
		return time.Time{}, fi.Err
	}

	for _, tag := range []string{"DateTimeOriginal", "CreateDate", "DateCreated"} {
		val, found := fi.Fields[tag]
		if !found {
			continue
		}
		dateStr, ok := val.(string)
		if !ok {
			continue
		}
		if t, err := ParseExifDate(dateStr); err == nil {
			return t, nil
		}
		logrus.Warnf("Unparsable %s value %q in %s", tag, dateStr, path)
	}
	return time.Time{}, fmt.Errorf("no date tag in %s", path)
}

func (e *ExifToolExtractor) Close() {
	e.et.Close()
}

// ParseExifDate parses the date layouts seen in the wild in EXIF fields.
func ParseExifDate(dateStr string) (time.Time, error) {
	layouts := []string{
		"2006:01:02 15:04:05-07:00",
		"2006:01:02 15:04:05",
		"2006:01:02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", dateStr)
}

// Resolver produces the capture date for a file: embedded metadata first,
// file modification time second. Only an unreadable file is an error.
type Resolver struct {
	Extractor Extractor
}

func (r *Resolver) Resolve(path string) (time.Time, error) {
	if t, err := r.Extractor.Extract(path); err == nil && !t.IsZero() {
		return t, nil
	} else if err != nil {
		logrus.Debugf("No metadata date for %s: %v", path, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, &ReadError{Path: path, Err: err}
	}
	return fi.ModTime(), nil
}
