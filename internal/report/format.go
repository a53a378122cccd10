package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ralt/photometa/internal/models"
	"gopkg.in/yaml.v3"
)

// Format names a report output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. An empty name means text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// Render serializes the batch report in the given format
func Render(b *models.BatchReport, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return RenderText(b), nil
	case FormatJSON:
		return RenderJSON(b)
	case FormatYAML:
		return RenderYAML(b)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// RenderText prints one "<tag> <ifd> <value>" line per field, files in
// input order. Failed paths contribute no lines.
func RenderText(b *models.BatchReport) []byte {
	var buf bytes.Buffer

	for _, r := range b.Results {
		if !r.OK() {
			continue
		}
		for _, f := range r.Fields {
			fmt.Fprintf(&buf, "%s %s %s\n", f.Tag, f.IFDName, f.Value)
		}
	}

	return buf.Bytes()
}

// RenderJSON serializes the full report including per-path errors
func RenderJSON(b *models.BatchReport) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RenderYAML serializes the full report including per-path errors
func RenderYAML(b *models.BatchReport) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Summary returns a one-line description of the run
func Summary(b *models.BatchReport) string {
	return fmt.Sprintf("Processed %d paths: %d succeeded, %d failed (run %s)",
		len(b.Results), b.Succeeded, b.Failed, b.RunID)
}
