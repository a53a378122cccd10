package scanner

import (
	"github.com/ralt/photometa/internal/exif"
)

// ScannedFile represents an image file found during scanning
type ScannedFile struct {
	Path      string
	Container exif.Container
	Size      int64
}
