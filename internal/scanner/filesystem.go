package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ralt/photometa/internal/exif"
	"github.com/ralt/photometa/internal/utils"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner finds image files on the local filesystem
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan recursively scans a directory for image files. Entries that cannot
// be read are returned with an unknown container instead of stopping the
// scan; only cancellation aborts it.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Keep the entry so the extractor reports it as a failed path
			logrus.Warnf("Failed to scan %s: %v", path, err)
			files = append(files, ScannedFile{Path: path})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		file, ok := s.inspect(path, info)
		if !ok {
			return nil
		}

		logrus.Debugf("Found %s image: %s", file.Container, path)
		files = append(files, file)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	logrus.Debugf("Found %d images in %s", len(files), dir)
	return files, nil
}

// DetectType determines the container format of a file
func (s *FileSystemScanner) DetectType(path string) (exif.Container, error) {
	return DetectContainerType(path)
}

// Expand turns command line arguments into an ordered list of paths.
// Directories are walked, doublestar patterns are globbed, and anything
// else is passed through as is so that missing files are reported by
// the extractor. Matches of one argument are sorted.
func (s *FileSystemScanner) Expand(ctx context.Context, args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		switch {
		case isPattern(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				info, err := os.Stat(m)
				if err != nil {
					continue
				}
				if _, ok := s.inspect(m, info); ok {
					paths = append(paths, m)
				}
			}
			if len(matches) == 0 {
				logrus.Warnf("Pattern %s matched no files", arg)
			}

		case utils.IsDir(arg):
			files, err := s.Scan(ctx, arg)
			if err != nil {
				return nil, err
			}
			var found []string
			for _, f := range files {
				found = append(found, f.Path)
			}
			sort.Strings(found)
			paths = append(paths, found...)

		default:
			paths = append(paths, arg)
		}
	}

	return paths, nil
}

// inspect keeps files whose content or extension identify an image
func (s *FileSystemScanner) inspect(path string, info os.FileInfo) (ScannedFile, bool) {
	container, err := s.DetectType(path)
	if err != nil {
		logrus.Warnf("Failed to detect type for %s: %v", path, err)
		return ScannedFile{}, false
	}

	// Skip unknown types
	if container == exif.ContainerUnknown {
		return ScannedFile{}, false
	}

	return ScannedFile{
		Path:      path,
		Container: container,
		Size:      info.Size(),
	}, true
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
