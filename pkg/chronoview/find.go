package chronoview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// ErrNoExtensions is returned by Load when no file extensions are allowed.
var ErrNoExtensions = errors.New("at least one file extension must be provided")

var exifDate = "2006:01:02 15:04:05"

// Dater returns the capture time of a file.
type Dater interface {
	Taken(path string) (time.Time, error)
}

// LoadOptions controls folder loading.
type LoadOptions struct {
	Recursive  bool
	Extensions []string
	// Dater overrides the file modification time when it returns a non-zero time.
	Dater Dater
}

// Load returns the images under root whose extension is allowed, oldest first.
func Load(root string, opts LoadOptions) ([]*TimelineItem, error) {
	allowed := normalizeExtensions(opts.Extensions)
	if len(allowed) == 0 {
		return nil, ErrNoExtensions
	}

	root = filepath.Clean(root)
	klog.Infof("loading %s (recursive=%v, extensions=%v)", root, opts.Recursive, opts.Extensions)

	found := []*TimelineItem{}
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == root {
				return nil
			}
			if filepath.Base(path)[0] == '.' {
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}
			if de.IsDir() {
				if !opts.Recursive {
					return godirwalk.SkipThis
				}
				return nil
			}
			if !allowed[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			i, err := readItem(path, opts.Dater)
			if err != nil {
				return err
			}
			klog.V(1).Infof("found %s at %s", i.Path, i.Timestamp)
			found = append(found, i)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Timestamp.Equal(found[j].Timestamp) {
			return found[i].Path < found[j].Path
		}
		return found[i].Timestamp.Before(found[j].Timestamp)
	})

	klog.Infof("found %d images in %s", len(found), root)
	return found, nil
}

func readItem(path string, d Dater) (*TimelineItem, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	i := &TimelineItem{
		Path:        path,
		DisplayName: filepath.Base(path),
		Timestamp:   fi.ModTime(),
	}

	if d == nil {
		return i, nil
	}
	t, err := d.Taken(path)
	if err != nil {
		klog.V(1).Infof("no capture time for %s, using mtime: %v", path, err)
		return i, nil
	}
	if !t.IsZero() {
		i.Timestamp = t
	}
	return i, nil
}

// normalizeExtensions returns a lower-case set of extensions with a leading dot.
func normalizeExtensions(exts []string) map[string]bool {
	set := map[string]bool{}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}

// ExifDater reads DateTimeOriginal using exiftool.
type ExifDater struct {
	et *exiftool.Exiftool
}

// NewExifDater starts an exiftool process. Callers must Close it.
func NewExifDater() (*ExifDater, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &ExifDater{et: et}, nil
}

// Taken returns the EXIF DateTimeOriginal of path.
func (e *ExifDater) Taken(path string) (time.Time, error) {
	fis := e.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return time.Time{}, fmt.Errorf("no metadata for %q", path)
	}
	fi := fis[0]
	if fi.Err != nil {
		return time.Time{}, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	ds, err := fi.GetString("DateTimeOriginal")
	if err != nil {
		return time.Time{}, fmt.Errorf("get DateTimeOriginal: %w", err)
	}

	t, err := time.ParseInLocation(exifDate, ds, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", ds, err)
	}
	return t, nil
}

// Close stops the exiftool process.
func (e *ExifDater) Close() error {
	return e.et.Close()
}
