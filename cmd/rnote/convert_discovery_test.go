package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	rnote "github.com/alnah/go-rnote"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles
// ---------------------------------------------------------------------------

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.rn"), "= a")
	writeFile(t, filepath.Join(dir, "sub", "b.RN"), "= b")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	out := filepath.Join(t.TempDir(), "out")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	want := []FileToConvert{
		{InputPath: filepath.Join(dir, "a.rn"), OutputPath: filepath.Join(out, "a.pdf")},
		{InputPath: filepath.Join(dir, "sub", "b.RN"), OutputPath: filepath.Join(out, "sub", "b.pdf")},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_SingleFileAndStdin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "memo.rn"), "= memo")

	files, err := discoverFiles(src, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	want := []FileToConvert{{InputPath: src, OutputPath: filepath.Join(dir, "memo.pdf")}}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("single file mismatch (-want +got):\n%s", diff)
	}

	files, err = discoverFiles(stdinPath, "out")
	if err != nil {
		t.Fatalf("discoverFiles(-) error = %v", err)
	}
	if diff := cmp.Diff([]FileToConvert{{InputPath: stdinPath}}, files); diff != "" {
		t.Errorf("stdin mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := writeFile(t, filepath.Join(dir, "memo.md"), "# memo")

	if _, err := discoverFiles(txt, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("wrong extension error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing.rn"), ""); err == nil {
		t.Error("missing file should fail")
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath / TestTitleOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to input", filepath.Join("docs", "memo.rn"), "", "", filepath.Join("docs", "memo.pdf")},
		{"explicit pdf", "memo.rn", "final.pdf", "", "final.pdf"},
		{"output dir", "memo.rn", "out", "", filepath.Join("out", "memo.pdf")},
		{"mirrors tree", filepath.Join("src", "a", "memo.rn"), "out", "src", filepath.Join("out", "a", "memo.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title     string
		outputDir string
		want      string
	}{
		{"Quarterly Report", "", "quarterly-report.pdf"},
		{"Quarterly Report", "out", filepath.Join("out", "quarterly-report.pdf")},
		{"", "", "document.pdf"},
		{"Anything", "named.pdf", "named.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.title+"|"+tt.outputDir, func(t *testing.T) {
			t.Parallel()

			if got := titleOutputPath(tt.title, tt.outputDir); got != tt.want {
				t.Errorf("titleOutputPath(%q, %q) = %q, want %q", tt.title, tt.outputDir, got, tt.want)
			}
		})
	}
}

func TestHTMLOutputPath(t *testing.T) {
	t.Parallel()

	if got := htmlOutputPath(filepath.Join("out", "memo.pdf")); got != filepath.Join("out", "memo.html") {
		t.Errorf("htmlOutputPath() = %q", got)
	}
	if got := htmlOutputPath("memo"); got != "memo.html" {
		t.Errorf("htmlOutputPath() = %q, want memo.html", got)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, rnote.MaxPoolSize} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{-1, rnote.MaxPoolSize + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
