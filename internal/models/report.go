package models

import "time"

// Field is a single rendered metadata field
type Field struct {
	Tag     string `json:"tag" yaml:"tag"`
	TagID   uint16 `json:"tag_id" yaml:"tag_id"`
	IFD     int    `json:"ifd" yaml:"ifd"`
	IFDName string `json:"ifd_name" yaml:"ifd_name"`
	Value   string `json:"value" yaml:"value"`
}

// FileResult is the outcome of extracting metadata from one path
type FileResult struct {
	Path      string  `json:"path" yaml:"path"`
	Container string  `json:"container,omitempty" yaml:"container,omitempty"`
	Size      int64   `json:"size,omitempty" yaml:"size,omitempty"`
	SHA256Sum string  `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Fields    []Field `json:"fields" yaml:"fields"`

	// Err is set when the path could not be processed
	Err error `json:"-" yaml:"-"`
	// Error mirrors Err for serialized reports
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the path was processed without error
func (r *FileResult) OK() bool {
	return r.Err == nil
}

// BatchReport aggregates the results of one extraction run
type BatchReport struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	StartedAt time.Time    `json:"started_at" yaml:"started_at"`
	Results   []FileResult `json:"results" yaml:"results"`
	Succeeded int          `json:"succeeded" yaml:"succeeded"`
	Failed    int          `json:"failed" yaml:"failed"`
}

// Tally recomputes the success and failure counters
func (b *BatchReport) Tally() {
	b.Succeeded, b.Failed = 0, 0
	for i := range b.Results {
		if b.Results[i].OK() {
			b.Succeeded++
		} else {
			b.Failed++
		}
	}
}

// Failures returns the results that carry an error
func (b *BatchReport) Failures() []FileResult {
	var failed []FileResult
	for _, r := range b.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
