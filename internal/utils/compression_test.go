package utils

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("XResolution primary 72 pixels per inch\n"), 64)

	for _, c := range []Compression{CompressNone, CompressGzip, CompressZstd, CompressXz} {
		t.Run(string(c), func(t *testing.T) {
			packed, err := Compress(data, c)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if c != CompressNone && len(packed) >= len(data) {
				t.Errorf("Expected %s output to be smaller than input (%d >= %d)", c, len(packed), len(data))
			}

			unpacked, err := Decompress(packed, c)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(unpacked, data) {
				t.Errorf("Round trip through %s changed the data", c)
			}
		})
	}
}

func TestParseCompression(t *testing.T) {
	if c, err := ParseCompression(""); err != nil || c != CompressNone {
		t.Errorf("Expected empty name to mean none, got %q, %v", c, err)
	}
	if c, err := ParseCompression("zstd"); err != nil || c.Extension() != ".zst" {
		t.Errorf("Expected zstd with .zst extension, got %q, %v", c, err)
	}
	if _, err := ParseCompression("bzip2"); err == nil {
		t.Errorf("Expected error for unsupported compression")
	}
}

func TestChecksumReader(t *testing.T) {
	sum, err := ChecksumReader(bytes.NewReader([]byte("abc")))
	if err != nil {
		t.Fatalf("ChecksumReader failed: %v", err)
	}
	if sum.SHA256 != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("Unexpected digest %s", sum.SHA256)
	}
	if sum.Size != 3 {
		t.Errorf("Expected size 3, got %d", sum.Size)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "report.txt")
	if err := WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if IsDir(path) || !IsDir(filepath.Dir(path)) {
		t.Errorf("Expected file inside a created directory")
	}
}
