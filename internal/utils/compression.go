package utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression names a report compression format
type Compression string

const (
	CompressNone Compression = "none"
	CompressGzip Compression = "gzip"
	CompressZstd Compression = "zstd"
	CompressXz   Compression = "xz"
)

// ParseCompression validates a compression name. An empty name means none.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(name); c {
	case "", CompressNone:
		return CompressNone, nil
	case CompressGzip, CompressZstd, CompressXz:
		return c, nil
	default:
		return "", fmt.Errorf("unsupported compression %q", name)
	}
}

// Extension returns the file name suffix for the format
func (c Compression) Extension() string {
	switch c {
	case CompressGzip:
		return ".gz"
	case CompressZstd:
		return ".zst"
	case CompressXz:
		return ".xz"
	default:
		return ""
	}
}

// Compress compresses data with the given format
func Compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressNone, "":
		return data, nil
	case CompressGzip:
		return GzipCompress(data)
	case CompressZstd:
		return ZstdCompress(data)
	case CompressXz:
		return XzCompress(data)
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}

// Decompress reverses Compress
func Decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressNone, "":
		return data, nil
	case CompressGzip:
		return GzipDecompress(data)
	case CompressZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressXz:
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(xr)
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}

// GzipCompress compresses data using gzip
func GzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GzipDecompress decompresses gzip data
func GzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// ZstdCompress compresses data using zstd
func ZstdCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}

	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// XzCompress compresses data using xz
func XzCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}

	if _, err := xw.Write(data); err != nil {
		xw.Close()
		return nil, err
	}

	if err := xw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
