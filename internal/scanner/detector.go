package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/photometa/internal/exif"
)

// Extensions accepted when the magic bytes are inconclusive
var extensions = map[string]exif.Container{
	".jpg":  exif.ContainerJPEG,
	".jpeg": exif.ContainerJPEG,
	".jpe":  exif.ContainerJPEG,
	".tif":  exif.ContainerTIFF,
	".tiff": exif.ContainerTIFF,
	".png":  exif.ContainerPNG,
	".webp": exif.ContainerWebP,
}

// DetectContainerType determines the container format based on magic bytes and file extension
func DetectContainerType(path string) (exif.Container, error) {
	// Open file
	f, err := os.Open(path)
	if err != nil {
		return exif.ContainerUnknown, err
	}
	defer f.Close()

	header := make([]byte, exif.SniffLen)
	n, err := f.Read(header)
	if err != nil && n == 0 && !isEmpty(f) {
		return exif.ContainerUnknown, err
	}

	if c := exif.DetectContainer(header[:n]); c != exif.ContainerUnknown {
		return c, nil
	}

	return extensions[strings.ToLower(filepath.Ext(path))], nil
}

// IsSupportedExtension reports whether the file name has an image extension
func IsSupportedExtension(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func isEmpty(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Size() == 0
}
