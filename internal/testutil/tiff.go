// Package testutil builds image fixtures with known EXIF content for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// TIFF field types used by the builders
const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
)

// Entry is one IFD entry. Entries with Child > 0 are sub-IFD pointers to
// ifds[Child] and ignore Data.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
	Child int
}

// IFD is one image file directory
type IFD struct {
	Entries []Entry
	Next    int // index of the next IFD in the chain, 0 for none
}

// BuildTIFF lays out a TIFF payload: header, every IFD in order, then the
// out-of-line value area. ifds[0] is IFD0.
func BuildTIFF(order binary.ByteOrder, ifds []IFD) []byte {
	offsets := make([]uint32, len(ifds))
	pos := uint32(8)
	for i, ifd := range ifds {
		offsets[i] = pos
		pos += 2 + 12*uint32(len(ifd.Entries)) + 4
	}

	var area bytes.Buffer
	areaStart := pos
	valueOffsets := make([][]uint32, len(ifds))
	for i, ifd := range ifds {
		valueOffsets[i] = make([]uint32, len(ifd.Entries))
		for j, e := range ifd.Entries {
			if e.Child == 0 && len(e.Data) > 4 {
				valueOffsets[i][j] = areaStart + uint32(area.Len())
				area.Write(e.Data)
			}
		}
	}

	var buf bytes.Buffer
	if order == binary.LittleEndian {
		buf.WriteString("II")
	} else {
		buf.WriteString("MM")
	}
	binary.Write(&buf, order, uint16(42))
	binary.Write(&buf, order, offsets[0])

	for i, ifd := range ifds {
		binary.Write(&buf, order, uint16(len(ifd.Entries)))
		for j, e := range ifd.Entries {
			binary.Write(&buf, order, e.Tag)
			field := make([]byte, 4)
			switch {
			case e.Child > 0:
				binary.Write(&buf, order, TypeLong)
				binary.Write(&buf, order, uint32(1))
				order.PutUint32(field, offsets[e.Child])
			case len(e.Data) > 4:
				binary.Write(&buf, order, e.Type)
				binary.Write(&buf, order, e.Count)
				order.PutUint32(field, valueOffsets[i][j])
			default:
				binary.Write(&buf, order, e.Type)
				binary.Write(&buf, order, e.Count)
				copy(field, e.Data)
			}
			buf.Write(field)
		}
		next := uint32(0)
		if ifd.Next > 0 {
			next = offsets[ifd.Next]
		}
		binary.Write(&buf, order, next)
	}

	buf.Write(area.Bytes())
	return buf.Bytes()
}

// ASCII returns a NUL-terminated string entry
func ASCII(tag uint16, s string) Entry {
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(s) + 1), Data: append([]byte(s), 0)}
}

// Short returns a SHORT entry
func Short(order binary.ByteOrder, tag uint16, vals ...uint16) Entry {
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		order.PutUint16(data[i*2:], v)
	}
	return Entry{Tag: tag, Type: TypeShort, Count: uint32(len(vals)), Data: data}
}

// Long returns a LONG entry
func Long(order binary.ByteOrder, tag uint16, vals ...uint32) Entry {
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		order.PutUint32(data[i*4:], v)
	}
	return Entry{Tag: tag, Type: TypeLong, Count: uint32(len(vals)), Data: data}
}

// Rational returns a RATIONAL entry from numerator/denominator pairs
func Rational(order binary.ByteOrder, tag uint16, pairs ...uint32) Entry {
	data := make([]byte, 4*len(pairs))
	for i, v := range pairs {
		order.PutUint32(data[i*4:], v)
	}
	return Entry{Tag: tag, Type: TypeRational, Count: uint32(len(pairs) / 2), Data: data}
}

// Byte returns a BYTE entry
func Byte(tag uint16, vals ...byte) Entry {
	return Entry{Tag: tag, Type: TypeByte, Count: uint32(len(vals)), Data: vals}
}

// Undefined returns an UNDEFINED entry
func Undefined(tag uint16, data []byte) Entry {
	return Entry{Tag: tag, Type: TypeUndefined, Count: uint32(len(data)), Data: data}
}

// Pointer returns a sub-IFD pointer entry
func Pointer(tag uint16, child int) Entry {
	return Entry{Tag: tag, Child: child}
}

// WrapJPEG embeds a TIFF payload in a minimal JPEG. A nil payload gives a
// JPEG without an APP1 segment.
func WrapJPEG(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})

	// APP0 JFIF segment that readers must skip
	jfif := []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	buf.Write([]byte{0xFF, 0xE0})
	binary.Write(&buf, binary.BigEndian, uint16(len(jfif)+2))
	buf.Write(jfif)

	if payload != nil {
		app1 := append([]byte("Exif\x00\x00"), payload...)
		buf.Write([]byte{0xFF, 0xE1})
		binary.Write(&buf, binary.BigEndian, uint16(len(app1)+2))
		buf.Write(app1)
	}

	// Start of scan, some entropy-coded bytes, end of image
	buf.Write([]byte{0xFF, 0xDA, 0x00, 0x02, 0x12, 0x34, 0xFF, 0xD9})
	return buf.Bytes()
}

// WrapPNG embeds a TIFF payload in an eXIf chunk. CRCs are zero.
func WrapPNG(payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := func(kind string, data []byte) {
		binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		buf.WriteString(kind)
		buf.Write(data)
		buf.Write([]byte{0, 0, 0, 0})
	}
	chunk("IHDR", make([]byte, 13))
	if payload != nil {
		chunk("eXIf", payload)
	}
	chunk("IEND", nil)
	return buf.Bytes()
}

// WrapWebP embeds a TIFF payload in a RIFF EXIF chunk
func WrapWebP(payload []byte) []byte {
	var body bytes.Buffer
	body.WriteString("WEBP")
	chunk := func(kind string, data []byte) {
		body.WriteString(kind)
		binary.Write(&body, binary.LittleEndian, uint32(len(data)))
		body.Write(data)
		if len(data)%2 == 1 {
			body.WriteByte(0)
		}
	}
	chunk("VP8X", make([]byte, 9))
	chunk("EXIF", payload)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// SampleJPEG returns a JPEG whose primary IFD holds Make, Model,
// XResolution and ResolutionUnit, in that order
func SampleJPEG() []byte {
	order := binary.LittleEndian
	return WrapJPEG(BuildTIFF(order, []IFD{{
		Entries: []Entry{
			ASCII(0x010f, "Canon"),
			ASCII(0x0110, "EOS 5D"),
			Rational(order, 0x011a, 300, 1),
			Short(order, 0x0128, 2),
		},
	}}))
}

// SampleLines are the rendered fields of SampleJPEG
var SampleLines = []string{
	`Make primary "Canon"`,
	`Model primary "EOS 5D"`,
	"XResolution primary 300 pixels per inch",
	"ResolutionUnit primary inch",
}

// WriteFile writes data under dir and returns the path
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}
