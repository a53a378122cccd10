package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Checksum contains the digest and size of a stream
type Checksum struct {
	SHA256 string
	Size   int64
}

// ChecksumReader calculates the checksum of the remaining content of r
func ChecksumReader(r io.Reader) (*Checksum, error) {
	h := sha256.New()

	n, err := io.Copy(h, r)
	if err != nil {
		return nil, err
	}

	return &Checksum{
		SHA256: hex.EncodeToString(h.Sum(nil)),
		Size:   n,
	}, nil
}
