// Package exif decodes EXIF metadata embedded in JPEG, TIFF, PNG and WebP
// files into typed fields that can be rendered with their units.
package exif

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxPayload bounds the EXIF payload read from PNG and WebP chunks
const maxPayload = 16 << 20

var (
	// ErrNotFound means the container is valid but carries no EXIF payload
	ErrNotFound = errors.New("exif: no EXIF data found")

	// ErrInvalidFormat means the container or its TIFF structure is malformed
	ErrInvalidFormat = errors.New("exif: invalid format")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...))
}

// In is the index of the top-level IFD a field belongs to
type In int

const (
	Primary   In = 0
	Thumbnail In = 1
)

// String returns primary, thumbnail, or In(n) for further directories
func (i In) String() string {
	switch i {
	case Primary:
		return "primary"
	case Thumbnail:
		return "thumbnail"
	default:
		return fmt.Sprintf("In(%d)", int(i))
	}
}

// Field is one entry of an image file directory
type Field struct {
	Tag    Tag
	IFDNum In
	Value  Value
}

// DisplayValue returns a renderer for the field's value
func (f *Field) DisplayValue() Display {
	return Display{field: f}
}

// Exif is the parsed content of one EXIF payload
type Exif struct {
	container    Container
	fields       []Field
	index        map[fieldKey]int
	littleEndian bool
}

type fieldKey struct {
	tag Tag
	in  In
}

// Fields returns the fields in the order they appear in the payload
func (e *Exif) Fields() []Field {
	return e.fields
}

// GetField returns the field with the given tag in the given IFD
func (e *Exif) GetField(tag Tag, in In) (*Field, bool) {
	i, ok := e.index[fieldKey{tag, in}]
	if !ok {
		return nil, false
	}
	return &e.fields[i], true
}

// Container returns the file format the payload was read from
func (e *Exif) Container() Container {
	return e.container
}

// LittleEndian reports the byte order of the payload
func (e *Exif) LittleEndian() bool {
	return e.littleEndian
}

// Reader parses EXIF payloads
type Reader struct{}

// NewReader creates a new EXIF reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadFromContainer detects the container format of r, locates the EXIF
// payload and parses it
func (rd *Reader) ReadFromContainer(r io.ReadSeeker) (*Exif, error) {
	c, err := sniff(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if c == ContainerUnknown {
		return nil, invalidf("unknown image format")
	}

	payload, err := locate(r, c)
	if err != nil {
		return nil, err
	}

	x, err := rd.ReadRaw(payload)
	if err != nil {
		return nil, err
	}
	x.container = c
	return x, nil
}

// ReadRaw parses a bare TIFF-structured payload
func (rd *Reader) ReadRaw(data []byte) (*Exif, error) {
	fields, order, err := parseTIFF(data)
	if err != nil {
		return nil, err
	}

	x := &Exif{
		container:    ContainerTIFF,
		fields:       fields,
		index:        make(map[fieldKey]int, len(fields)),
		littleEndian: order == binary.LittleEndian,
	}
	for i, f := range fields {
		key := fieldKey{f.Tag, f.IFDNum}
		// First occurrence wins on duplicates
		if _, dup := x.index[key]; !dup {
			x.index[key] = i
		}
	}
	return x, nil
}
