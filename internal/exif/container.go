package exif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Container is an image file format that can carry an EXIF payload
type Container int

const (
	ContainerUnknown Container = iota
	ContainerJPEG
	ContainerTIFF
	ContainerPNG
	ContainerWebP
)

// String returns the string representation of Container
func (c Container) String() string {
	switch c {
	case ContainerJPEG:
		return "jpeg"
	case ContainerTIFF:
		return "tiff"
	case ContainerPNG:
		return "png"
	case ContainerWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// Magic bytes for container detection
var (
	jpegMagic     = []byte{0xFF, 0xD8}
	tiffLEMagic   = []byte{'I', 'I', 0x2A, 0x00}
	tiffBEMagic   = []byte{'M', 'M', 0x00, 0x2A}
	pngMagic      = []byte("\x89PNG\r\n\x1a\n")
	riffMagic     = []byte("RIFF")
	webpMagic     = []byte("WEBP")
	exifAPP1Magic = []byte("Exif\x00\x00")
)

// SniffLen is the number of header bytes DetectContainer looks at
const SniffLen = 12

// DetectContainer determines the container format from the leading bytes
func DetectContainer(header []byte) Container {
	switch {
	case bytes.HasPrefix(header, jpegMagic):
		return ContainerJPEG
	case bytes.HasPrefix(header, tiffLEMagic), bytes.HasPrefix(header, tiffBEMagic):
		return ContainerTIFF
	case bytes.HasPrefix(header, pngMagic):
		return ContainerPNG
	case len(header) >= 12 && bytes.HasPrefix(header, riffMagic) && bytes.Equal(header[8:12], webpMagic):
		return ContainerWebP
	default:
		return ContainerUnknown
	}
}

// sniff reads the header of r and rewinds it
func sniff(r io.ReadSeeker) (Container, error) {
	header := make([]byte, SniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ContainerUnknown, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ContainerUnknown, err
	}
	return DetectContainer(header[:n]), nil
}

// locate returns the raw TIFF payload stored in the container
func locate(r io.ReadSeeker, c Container) ([]byte, error) {
	switch c {
	case ContainerJPEG:
		return locateJPEG(r)
	case ContainerTIFF:
		return io.ReadAll(r)
	case ContainerPNG:
		return locatePNG(r)
	case ContainerWebP:
		return locateWebP(r)
	default:
		return nil, invalidf("unknown image format")
	}
}

// JPEG markers
const (
	markerSOS  = 0xDA
	markerEOI  = 0xD9
	markerAPP1 = 0xE1
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
)

// locateJPEG walks the marker segments up to the start of scan
func locateJPEG(r io.ReadSeeker) ([]byte, error) {
	// Skip SOI marker
	if _, err := r.Seek(2, io.SeekStart); err != nil {
		return nil, err
	}

	var b [2]byte
	for {
		if _, err := io.ReadFull(r, b[:1]); err != nil {
			return nil, truncated(err, "JPEG marker")
		}
		if b[0] != 0xFF {
			return nil, invalidf("invalid JPEG marker 0x%02x", b[0])
		}

		// Any number of 0xFF fill bytes may precede the marker code
		marker := byte(0xFF)
		for marker == 0xFF {
			if _, err := io.ReadFull(r, b[:1]); err != nil {
				return nil, truncated(err, "JPEG marker")
			}
			marker = b[0]
		}

		switch {
		case marker == markerSOS, marker == markerEOI:
			return nil, ErrNotFound
		case marker == markerTEM, marker >= markerRST0 && marker <= markerRST7:
			continue
		}

		if _, err := io.ReadFull(r, b[:2]); err != nil {
			return nil, truncated(err, "JPEG segment length")
		}
		length := binary.BigEndian.Uint16(b[:2])
		if length < 2 {
			return nil, invalidf("invalid JPEG segment length %d", length)
		}

		if marker == markerAPP1 {
			data := make([]byte, length-2)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, truncated(err, "APP1 segment")
			}
			if bytes.HasPrefix(data, exifAPP1Magic) {
				return data[len(exifAPP1Magic):], nil
			}
			continue
		}

		if _, err := r.Seek(int64(length)-2, io.SeekCurrent); err != nil {
			return nil, err
		}
	}
}

// locatePNG looks for the eXIf chunk
func locatePNG(r io.ReadSeeker) ([]byte, error) {
	if _, err := r.Seek(int64(len(pngMagic)), io.SeekStart); err != nil {
		return nil, err
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, truncated(err, "PNG chunk header")
		}
		length := binary.BigEndian.Uint32(hdr[0:4])
		kind := string(hdr[4:8])

		switch kind {
		case "IEND":
			return nil, ErrNotFound
		case "eXIf":
			if length > maxPayload {
				return nil, invalidf("eXIf chunk too large")
			}
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, truncated(err, "eXIf chunk")
			}
			return data, nil
		}

		// Chunk data plus CRC
		if _, err := r.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return nil, err
		}
	}
}

// locateWebP looks for the EXIF chunk of a RIFF/WEBP file
func locateWebP(r io.ReadSeeker) ([]byte, error) {
	if _, err := r.Seek(12, io.SeekStart); err != nil {
		return nil, err
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNotFound
			}
			return nil, truncated(err, "WebP chunk header")
		}
		kind := string(hdr[0:4])
		length := binary.LittleEndian.Uint32(hdr[4:8])

		if kind == "EXIF" {
			if length > maxPayload {
				return nil, invalidf("EXIF chunk too large")
			}
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, truncated(err, "EXIF chunk")
			}
			// Some writers keep the JPEG APP1 identifier
			return bytes.TrimPrefix(data, exifAPP1Magic), nil
		}

		// Chunks are padded to an even size
		skip := int64(length) + int64(length&1)
		if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
			return nil, err
		}
	}
}

// truncated maps EOF conditions to a format error
func truncated(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return invalidf("truncated %s", what)
	}
	return err
}
