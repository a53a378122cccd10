package cli

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/testutil"
)

// run executes the root command and returns its stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractText(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "sample.jpg", testutil.SampleJPEG())

	out, err := run(t, "extract", path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if diff := cmp.Diff(testutil.SampleLines, lines); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteFile(t, dir, "good.jpg", testutil.SampleJPEG())
	missing := filepath.Join(dir, "missing.jpg")

	out, err := run(t, "extract", missing, good)
	if err != nil {
		t.Fatalf("extract should not fail without --fail-on-error: %v", err)
	}
	if !strings.Contains(out, `Make primary "Canon"`) {
		t.Errorf("Expected fields of the good file, got:\n%s", out)
	}

	if _, err := run(t, "extract", "--fail-on-error", missing, good); err == nil {
		t.Errorf("Expected error with --fail-on-error")
	}
}

func TestExtractEmptyContainer(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "plain.jpg", testutil.WrapJPEG(nil))

	out, err := run(t, "extract", "--fail-on-error", path)
	if err != nil {
		t.Fatalf("A file without EXIF is not a failure: %v", err)
	}
	if out != "" {
		t.Errorf("Expected no output, got %q", out)
	}
}

func TestExtractDirectory(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.jpg", testutil.SampleJPEG())
	testutil.WriteFile(t, dir, "a.jpg", testutil.SampleJPEG())
	testutil.WriteFile(t, dir, "readme.txt", []byte("not an image"))

	out, err := run(t, "extract", dir)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got := strings.Count(out, "\n"); got != 2*len(testutil.SampleLines) {
		t.Errorf("Expected %d lines, got %d:\n%s", 2*len(testutil.SampleLines), got, out)
	}
}

func TestExtractToCompressedFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "sample.jpg", testutil.SampleJPEG())
	output := filepath.Join(dir, "report.json")

	out, err := run(t, "extract", "--format", "json", "--compress", "zstd", "--output", output, path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected nothing on stdout, got %q", out)
	}
	if _, err := os.Stat(output + ".zst"); err != nil {
		t.Errorf("Expected compressed report: %v", err)
	}
}

func TestExtractInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"extract", "--format", "xml", "x.jpg"}},
		{"compress to stdout", []string{"extract", "--compress", "gzip", "x.jpg"}},
		{"sign to stdout", []string{"extract", "--gpg-key", "key.asc", "x.jpg"}},
		{"clearsign without key", []string{"extract", "--clearsign", "-o", "out.txt", "x.jpg"}},
		{"missing config", []string{"extract", "--config", "/nonexistent/photometa.yaml", "x.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !models.IsType(err, models.ErrInvalidConfig) {
				t.Errorf("Expected InvalidConfig error, got %v", err)
			}
		})
	}
}

func TestExtractConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "sample.jpg", testutil.SampleJPEG())
	cfg := testutil.WriteFile(t, dir, "photometa.yaml", []byte("format: yaml\n"))

	out, err := run(t, "extract", "--config", cfg, path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(out, "run_id:") {
		t.Errorf("Expected YAML report from config file, got:\n%s", out)
	}

	out, err = run(t, "extract", "--config", cfg, "--format", "text", path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.HasPrefix(out, `Make primary "Canon"`) {
		t.Errorf("Expected explicit flag to win over config, got:\n%s", out)
	}
}

func TestGreet(t *testing.T) {
	out, err := run(t, "greet", "World")
	if err != nil {
		t.Fatalf("greet failed: %v", err)
	}
	if out != "Hello, World! You've been greeted from Go!\n" {
		t.Errorf("Unexpected greeting %q", out)
	}

	out, err = run(t, "greet")
	if err != nil {
		t.Fatalf("greet failed: %v", err)
	}
	if out != "Hello, ! You've been greeted from Go!\n" {
		t.Errorf("Unexpected greeting %q", out)
	}
}

func TestInvoke(t *testing.T) {
	out, err := run(t, "invoke", "greet", `{"name":"Ada"}`)
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if out != "\"Hello, Ada! You've been greeted from Go!\"\n" {
		t.Errorf("Unexpected result %q", out)
	}

	path := testutil.WriteFile(t, t.TempDir(), "sample.jpg", testutil.SampleJPEG())
	payload := `{"paths":[` + strings.ReplaceAll(`"`+path+`"`, `\`, `\\`) + `]}`
	out, err = run(t, "invoke", "extract", payload)
	if err != nil {
		t.Fatalf("invoke extract failed: %v", err)
	}
	if !strings.Contains(out, `"tag":"Make"`) || !strings.Contains(out, `"succeeded":1`) {
		t.Errorf("Unexpected extract result:\n%s", out)
	}
}

func TestInvokeErrors(t *testing.T) {
	if _, err := run(t, "invoke", "launch"); !models.IsType(err, models.ErrCommand) {
		t.Errorf("Expected Command error for unknown command, got %v", err)
	}
	if _, err := run(t, "invoke", "greet", "{"); !models.IsType(err, models.ErrCommand) {
		t.Errorf("Expected Command error for bad payload, got %v", err)
	}
}

func TestExtractSignedWithExportedKey(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "sample.jpg", testutil.SampleJPEG())

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	keyPath := testutil.WriteFile(t, dir, "key.pem",
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
	output := filepath.Join(dir, "report.txt")

	if _, err := run(t, "extract", "--rsa-key", keyPath, "--export-key", "-o", output, path); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	for _, f := range []string{output, output + ".sig", output + ".pub.pem"} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("Expected %s to be written: %v", filepath.Base(f), err)
		}
	}
}

func TestExtractUnreadableDirectory(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "a/good.jpg", testutil.SampleJPEG())
	locked := filepath.Join(root, "b")
	if err := os.Mkdir(locked, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	if _, err := os.ReadDir(locked); err == nil {
		t.Skip("Directory permissions are not enforced for this user")
	}

	out, err := run(t, "extract", root)
	if err != nil {
		t.Fatalf("extract should continue past an unreadable directory: %v", err)
	}
	if !strings.Contains(out, `Make primary "Canon"`) {
		t.Errorf("Expected fields of the readable file, got:\n%s", out)
	}

	if _, err := run(t, "extract", "--fail-on-error", root); err == nil {
		t.Errorf("Expected the unreadable directory to count as a failed path")
	}
}
