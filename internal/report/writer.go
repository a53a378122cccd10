package report

import (
	"fmt"
	"io"

	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/signer"
	"github.com/ralt/photometa/internal/utils"
	"github.com/sirupsen/logrus"
)

// Writer renders batch reports to a stream or to a file
type Writer struct {
	format      Format
	compression utils.Compression
	signer      signer.Signer
	rsaSigner   signer.RSASigner
	clearsign   bool
	exportKey   bool
}

// Option configures a Writer
type Option func(*Writer)

// WithCompression compresses reports written to files
func WithCompression(c utils.Compression) Option {
	return func(w *Writer) { w.compression = c }
}

// WithSigner adds an armored detached signature next to written files
func WithSigner(s signer.Signer) Option {
	return func(w *Writer) { w.signer = s }
}

// WithRSASigner adds a raw RSA signature next to written files
func WithRSASigner(s signer.RSASigner) Option {
	return func(w *Writer) { w.rsaSigner = s }
}

// WithClearsign replaces the written text report with its cleartext
// signed form. Requires a signer.
func WithClearsign() Option {
	return func(w *Writer) { w.clearsign = true }
}

// WithExportKey writes the public key of each signer next to its signature
func WithExportKey() Option {
	return func(w *Writer) { w.exportKey = true }
}

// NewWriter creates a report writer for the given format
func NewWriter(format Format, opts ...Option) *Writer {
	w := &Writer{
		format:      format,
		compression: utils.CompressNone,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the report to out without compression or signing
func (w *Writer) Write(out io.Writer, b *models.BatchReport) error {
	data, err := Render(b, w.format)
	if err != nil {
		return reportError(err)
	}

	if _, err := out.Write(data); err != nil {
		return reportError(fmt.Errorf("failed to write report: %w", err))
	}
	return nil
}

// WriteFile renders the report to path and returns every file written.
// The compression extension is appended to path; signatures are placed
// next to the report as .asc and .sig.
func (w *Writer) WriteFile(path string, b *models.BatchReport) ([]string, error) {
	if w.clearsign && (w.signer == nil || w.format != FormatText || w.compression != utils.CompressNone) {
		return nil, reportError(fmt.Errorf("clearsign requires a GPG key and an uncompressed text report"))
	}

	data, err := Render(b, w.format)
	if err != nil {
		return nil, reportError(err)
	}

	data, err = utils.Compress(data, w.compression)
	if err != nil {
		return nil, reportError(fmt.Errorf("failed to compress report: %w", err))
	}

	if w.clearsign {
		data, err = w.signer.SignCleartext(data)
		if err != nil {
			return nil, signingError(path, err)
		}
	}

	reportPath := path + w.compression.Extension()
	if err := utils.WriteFile(reportPath, data, 0644); err != nil {
		return nil, &models.PhotoMetaError{
			Type: models.ErrFileOp,
			Path: reportPath,
			Err:  fmt.Errorf("failed to write report: %w", err),
		}
	}
	written := []string{reportPath}
	logrus.Infof("Wrote %s report to %s", w.format, reportPath)

	if w.signer != nil && !w.clearsign {
		sig, err := w.signer.SignDetached(data)
		if err != nil {
			return written, signingError(reportPath, err)
		}
		sigPath := reportPath + ".asc"
		if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
			return written, signingError(sigPath, err)
		}
		written = append(written, sigPath)
	}

	if w.signer != nil && w.exportKey {
		keyPath, err := exportKey(reportPath+".pub.asc", w.signer.GetPublicKey)
		if err != nil {
			return written, err
		}
		written = append(written, keyPath)
	}

	if w.rsaSigner != nil {
		sig, err := w.rsaSigner.SignRSA(data)
		if err != nil {
			return written, signingError(reportPath, err)
		}
		sigPath := reportPath + ".sig"
		if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
			return written, signingError(sigPath, err)
		}
		written = append(written, sigPath)

		if w.exportKey {
			keyPath, err := exportKey(reportPath+".pub.pem", w.rsaSigner.GetPublicKey)
			if err != nil {
				return written, err
			}
			written = append(written, keyPath)
		}
	}

	if w.signer == nil && w.rsaSigner == nil {
		logrus.Debug("No signer configured, report will be unsigned")
	} else {
		logrus.Info("Report signed successfully")
	}

	return written, nil
}

func exportKey(path string, publicKey func() ([]byte, error)) (string, error) {
	key, err := publicKey()
	if err != nil {
		return "", signingError(path, fmt.Errorf("failed to export public key: %w", err))
	}
	if err := utils.WriteFile(path, key, 0644); err != nil {
		return "", signingError(path, err)
	}
	logrus.Infof("Exported public key to %s", path)
	return path, nil
}

func reportError(err error) error {
	return &models.PhotoMetaError{Type: models.ErrReport, Err: err}
}

func signingError(path string, err error) error {
	return &models.PhotoMetaError{
		Type: models.ErrSigning,
		Path: path,
		Err:  fmt.Errorf("failed to sign report: %w", err),
	}
}
