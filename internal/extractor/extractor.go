package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ralt/photometa/internal/exif"
	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files read at once
const DefaultConcurrency = 4

// Parser decodes the metadata container of an image
type Parser interface {
	ReadFromContainer(r io.ReadSeeker) (*exif.Exif, error)
}

// Extractor reads EXIF fields from image files
type Extractor struct {
	parser      Parser
	concurrency int
}

// NewExtractor creates a new extractor. A concurrency below 1 uses
// DefaultConcurrency.
func NewExtractor(concurrency int) *Extractor {
	return NewExtractorWithParser(exif.NewReader(), concurrency)
}

// NewExtractorWithParser creates a new extractor with a custom parser
func NewExtractorWithParser(parser Parser, concurrency int) *Extractor {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Extractor{
		parser:      parser,
		concurrency: concurrency,
	}
}

// Extract processes every path and returns the results in input order.
// A failing path is recorded in its result and never stops the batch.
func (e *Extractor) Extract(ctx context.Context, paths []string) *models.BatchReport {
	report := &models.BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Results:   make([]models.FileResult, len(paths)),
	}

	// Each goroutine owns one slot of Results
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			report.Results[i] = e.ExtractFile(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	report.Tally()
	logrus.Debugf("Processed %d files: %d succeeded, %d failed", len(paths), report.Succeeded, report.Failed)
	return report
}

// ExtractFile reads the EXIF fields of a single file
func (e *Extractor) ExtractFile(ctx context.Context, path string) models.FileResult {
	result := models.FileResult{Path: path, Fields: []models.Field{}}

	if err := ctx.Err(); err != nil {
		return fail(result, models.ErrFileOp, err)
	}

	logrus.Debugf("Reading metadata from %s", path)

	f, err := os.Open(path)
	if err != nil {
		return fail(result, models.ErrPathNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fail(result, models.ErrPathNotFound, err)
	}
	if info.IsDir() {
		return fail(result, models.ErrPathNotFound, fmt.Errorf("is a directory"))
	}

	checksums, err := utils.ChecksumReader(f)
	if err != nil {
		return fail(result, models.ErrPathNotFound, fmt.Errorf("failed to read file: %w", err))
	}
	result.Size = checksums.Size
	result.SHA256Sum = checksums.SHA256

	container, err := detect(f)
	if err != nil {
		return fail(result, models.ErrPathNotFound, fmt.Errorf("failed to read file: %w", err))
	}
	result.Container = container.String()

	x, err := e.parser.ReadFromContainer(f)
	if errors.Is(err, exif.ErrNotFound) {
		logrus.Debugf("No EXIF data in %s", path)
		return result
	}
	if err != nil {
		return fail(result, models.ErrMalformedContainer, err)
	}

	result.Fields = Render(x)
	logrus.Debugf("Found %d fields in %s", len(result.Fields), path)
	return result
}

// Render converts parsed fields to their display form. Units are resolved
// against the whole container.
func Render(x *exif.Exif) []models.Field {
	fields := make([]models.Field, 0, len(x.Fields()))
	for _, f := range x.Fields() {
		fields = append(fields, models.Field{
			Tag:     f.Tag.String(),
			TagID:   f.Tag.Number,
			IFD:     int(f.IFDNum),
			IFDName: f.IFDNum.String(),
			Value:   f.DisplayValue().WithUnit(x).String(),
		})
	}
	return fields
}

// detect sniffs the container kind and rewinds the file
func detect(f io.ReadSeeker) (exif.Container, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return exif.ContainerUnknown, err
	}
	header := make([]byte, exif.SniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return exif.ContainerUnknown, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return exif.ContainerUnknown, err
	}
	return exif.DetectContainer(header[:n]), nil
}

func fail(result models.FileResult, t models.ErrorType, err error) models.FileResult {
	result.Err = &models.PhotoMetaError{Type: t, Path: result.Path, Err: err}
	result.Error = result.Err.Error()
	logrus.Warnf("Failed to process %s: %v", result.Path, err)
	return result
}
