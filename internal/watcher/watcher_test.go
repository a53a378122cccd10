package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/photometa/internal/extractor"
	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// start runs a watcher on dir and returns its reports plus a stop func
func start(t *testing.T, dir string) (<-chan *models.BatchReport, func()) {
	t.Helper()

	reports := make(chan *models.BatchReport, 16)
	w := New(extractor.NewExtractor(1), 20*time.Millisecond, func(r *models.BatchReport) {
		select {
		case reports <- r:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, []string{dir}) }()

	select {
	case <-w.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("Run exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatalf("Watcher did not become ready")
	}

	return reports, func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	}
}

// waitFor returns the first report containing a successful result for path
func waitFor(t *testing.T, reports <-chan *models.BatchReport, path string) models.FileResult {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-reports:
			for _, res := range r.Results {
				if res.Path == path && res.OK() {
					return res
				}
			}
		case <-timeout:
			t.Fatalf("No report for %s", path)
		}
	}
}

// place writes data under a neutral name and renames it into place so the
// watcher never sees a partially written image
func place(t *testing.T, path string, data []byte) {
	t.Helper()
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Failed to rename %s: %v", tmp, err)
	}
}

func TestWatcherExtractsNewImages(t *testing.T) {
	dir := t.TempDir()
	reports, stop := start(t, dir)
	defer stop()

	path := filepath.Join(dir, "new.jpg")
	place(t, path, testutil.SampleJPEG())

	res := waitFor(t, reports, path)
	got := make([]string, len(res.Fields))
	for i, f := range res.Fields {
		got[i] = f.Tag + " " + f.IFDName + " " + f.Value
	}
	if diff := cmp.Diff(testutil.SampleLines, got); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	reports, stop := start(t, dir)
	defer stop()

	sub := filepath.Join(dir, "album")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// The directory is added asynchronously; keep rewriting until seen
	path := filepath.Join(sub, "late.jpg")
	deadline := time.Now().Add(5 * time.Second)
	for {
		place(t, path, testutil.SampleJPEG())
		select {
		case r := <-reports:
			for _, res := range r.Results {
				if res.Path == path && res.OK() {
					return
				}
			}
		case <-time.After(200 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatalf("No report for %s", path)
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	reports, stop := start(t, dir)
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	select {
	case r := <-reports:
		t.Errorf("Unexpected report for non-image: %+v", r.Results)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(extractor.NewExtractor(1), 0, nil)
	err := w.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	if !models.IsType(err, models.ErrPathNotFound) {
		t.Errorf("Expected PathNotFound error, got %v", err)
	}
}
