package exif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/photometa/internal/testutil"
)

func sampleTIFF(order binary.ByteOrder) []byte {
	return testutil.BuildTIFF(order, []testutil.IFD{
		{
			Entries: []testutil.Entry{
				testutil.ASCII(TagMake.Number, "Canon"),
				testutil.Rational(order, TagXResolution.Number, 72, 1),
				testutil.Short(order, TagResolutionUnit.Number, 3),
				testutil.Pointer(TagExifIFDPointer.Number, 2),
			},
			Next: 1,
		},
		{
			Entries: []testutil.Entry{
				testutil.Rational(order, TagXResolution.Number, 72, 1),
				testutil.Long(order, TagJPEGInterchangeFormat.Number, 0),
			},
		},
		{
			Entries: []testutil.Entry{
				testutil.Rational(order, TagExposureTime.Number, 1, 125),
				testutil.Rational(order, TagFNumber.Number, 28, 10),
				testutil.Short(order, 0xbeef, 7),
				testutil.Short(order, TagFlash.Number, 0x19),
				testutil.ASCII(TagDateTimeOriginal.Number, "2024:05:06 07:08:09"),
				testutil.Undefined(TagExifVersion.Number, []byte("0230")),
			},
		},
	})
}

var sampleLines = []string{
	`Make primary "Canon"`,
	"XResolution primary 72 pixels per centimeter",
	"ResolutionUnit primary cm",
	"ExposureTime primary 1/125 s",
	"FNumber primary f/2.8",
	"Tag(Exif, 48879) primary 7",
	"Flash primary fired, auto mode",
	"DateTimeOriginal primary 2024-05-06 07:08:09",
	"ExifVersion primary 2.30",
	"XResolution thumbnail 72 pixels per inch",
	"JPEGInterchangeFormat thumbnail 0",
}

func render(x *Exif) []string {
	var lines []string
	for _, f := range x.Fields() {
		lines = append(lines, fmt.Sprintf("%s %s %s", f.Tag, f.IFDNum, f.DisplayValue().WithUnit(x)))
	}
	return lines
}

func TestReadFromContainerJPEG(t *testing.T) {
	data := testutil.WrapJPEG(sampleTIFF(binary.LittleEndian))

	x, err := NewReader().ReadFromContainer(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFromContainer failed: %v", err)
	}

	if x.Container() != ContainerJPEG {
		t.Errorf("Expected jpeg container, got %s", x.Container())
	}
	if !x.LittleEndian() {
		t.Errorf("Expected little endian payload")
	}

	if diff := cmp.Diff(sampleLines, render(x)); diff != "" {
		t.Errorf("Rendered fields mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFromContainerBigEndianTIFF(t *testing.T) {
	data := sampleTIFF(binary.BigEndian)

	x, err := NewReader().ReadFromContainer(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFromContainer failed: %v", err)
	}

	if x.Container() != ContainerTIFF {
		t.Errorf("Expected tiff container, got %s", x.Container())
	}
	if x.LittleEndian() {
		t.Errorf("Expected big endian payload")
	}
	if diff := cmp.Diff(sampleLines, render(x)); diff != "" {
		t.Errorf("Rendered fields mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFromContainerPNGAndWebP(t *testing.T) {
	payload := sampleTIFF(binary.LittleEndian)

	tests := []struct {
		name string
		data []byte
		want Container
	}{
		{"png", testutil.WrapPNG(payload), ContainerPNG},
		{"webp", testutil.WrapWebP(payload), ContainerWebP},
		{"webp with APP1 identifier", testutil.WrapWebP(append([]byte("Exif\x00\x00"), payload...)), ContainerWebP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := NewReader().ReadFromContainer(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("ReadFromContainer failed: %v", err)
			}
			if x.Container() != tt.want {
				t.Errorf("Expected %s container, got %s", tt.want, x.Container())
			}
			if len(x.Fields()) != len(sampleLines) {
				t.Errorf("Expected %d fields, got %d", len(sampleLines), len(x.Fields()))
			}
		})
	}
}

func TestGPSUnitsUseSiblingFields(t *testing.T) {
	order := binary.LittleEndian
	data := testutil.BuildTIFF(order, []testutil.IFD{
		{Entries: []testutil.Entry{testutil.Pointer(TagGPSInfoIFDPointer.Number, 1)}},
		{Entries: []testutil.Entry{
			testutil.Byte(TagGPSVersionID.Number, 2, 2, 0, 0),
			testutil.ASCII(TagGPSLatitudeRef.Number, "N"),
			testutil.Rational(order, TagGPSLatitude.Number, 35, 1, 40, 1, 1234, 100),
			testutil.Byte(TagGPSAltitudeRef.Number, 1),
			testutil.Rational(order, TagGPSAltitude.Number, 100, 1),
			testutil.Rational(order, TagGPSTimeStamp.Number, 12, 1, 34, 1, 5, 1),
		}},
	})

	x, err := NewReader().ReadRaw(data)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	want := []string{
		"GPSVersionID primary 2.2.0.0",
		`GPSLatitudeRef primary "N"`,
		"GPSLatitude primary 35 deg 40 min 12.34 sec N",
		"GPSAltitudeRef primary below sea level",
		"GPSAltitude primary 100 m below sea level",
		"GPSTimeStamp primary 12:34:05",
	}
	if diff := cmp.Diff(want, render(x)); diff != "" {
		t.Errorf("Rendered fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayValueWithoutUnit(t *testing.T) {
	x, err := NewReader().ReadRaw(sampleTIFF(binary.LittleEndian))
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	f, ok := x.GetField(TagXResolution, Primary)
	if !ok {
		t.Fatalf("XResolution not found in primary IFD")
	}
	if got := f.DisplayValue().String(); got != "72" {
		t.Errorf("Expected bare value 72, got %q", got)
	}

	if _, ok := x.GetField(TagResolutionUnit, Thumbnail); ok {
		t.Errorf("ResolutionUnit should not be present in the thumbnail IFD")
	}
}

func TestEmptyIFD(t *testing.T) {
	data := testutil.BuildTIFF(binary.LittleEndian, []testutil.IFD{{}})

	x, err := NewReader().ReadRaw(data)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if len(x.Fields()) != 0 {
		t.Errorf("Expected no fields, got %d", len(x.Fields()))
	}
}

func TestReadFromContainerErrors(t *testing.T) {
	payload := sampleTIFF(binary.LittleEndian)

	loop := testutil.BuildTIFF(binary.LittleEndian, []testutil.IFD{
		{Entries: []testutil.Entry{testutil.ASCII(TagMake.Number, "x")}, Next: 1},
		{Entries: []testutil.Entry{testutil.ASCII(TagModel.Number, "y")}, Next: 1},
	})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"jpeg without exif", testutil.WrapJPEG(nil), ErrNotFound},
		{"png without exif", testutil.WrapPNG(nil), ErrNotFound},
		{"unknown format", []byte("definitely not an image"), ErrInvalidFormat},
		{"empty file", nil, ErrInvalidFormat},
		{"truncated IFD", testutil.WrapJPEG(payload[:20]), ErrInvalidFormat},
		{"truncated jpeg", testutil.WrapJPEG(payload)[:30], ErrInvalidFormat},
		{"IFD loop", loop, ErrInvalidFormat},
		{"bad byte order", testutil.WrapJPEG([]byte("XX\x2a\x00\x08\x00\x00\x00")), ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader().ReadFromContainer(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	if got := TagExposureTime.String(); got != "ExposureTime" {
		t.Errorf("Expected ExposureTime, got %q", got)
	}
	if got := (Tag{ContextGPS, 0x99}).String(); got != "Tag(Gps, 153)" {
		t.Errorf("Expected Tag(Gps, 153), got %q", got)
	}
	if got := In(3).String(); got != "In(3)" {
		t.Errorf("Expected In(3), got %q", got)
	}
}

func TestZeroDenominatorHasNoUnit(t *testing.T) {
	order := binary.LittleEndian
	data := testutil.BuildTIFF(order, []testutil.IFD{
		{Entries: []testutil.Entry{
			testutil.Rational(order, TagXResolution.Number, 72, 0),
			testutil.Short(order, TagResolutionUnit.Number, 2),
			testutil.Pointer(TagGPSInfoIFDPointer.Number, 1),
		}},
		{Entries: []testutil.Entry{
			testutil.ASCII(TagGPSLatitudeRef.Number, "N"),
			testutil.Rational(order, TagGPSLatitude.Number, 35, 1, 40, 0, 0, 0),
			testutil.Rational(order, TagGPSTimeStamp.Number, 12, 0, 34, 1, 5, 1),
		}},
	})

	x, err := NewReader().ReadRaw(data)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	want := []string{
		"XResolution primary undefined",
		"ResolutionUnit primary inch",
		`GPSLatitudeRef primary "N"`,
		"GPSLatitude primary 35 deg undefined min undefined sec",
		"GPSTimeStamp primary 12/0, 34/1, 5/1",
	}
	if diff := cmp.Diff(want, render(x)); diff != "" {
		t.Errorf("Rendered fields mismatch (-want +got):\n%s", diff)
	}
}
