package signer

// Signer interface for OpenPGP signing of reports
type Signer interface {
	// SignCleartext wraps data in a cleartext signature
	SignCleartext(data []byte) ([]byte, error)

	// SignDetached creates an armored detached signature
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}

// RSASigner interface for raw RSA signing of reports
type RSASigner interface {
	// SignRSA creates an RSA PKCS1v15 signature
	SignRSA(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}
