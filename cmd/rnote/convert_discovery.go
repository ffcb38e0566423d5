package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/fileutil"
)

const (
	sourceExt = ".rn"
	pdfExt    = ".pdf"
	htmlExt   = ".html"

	// stdinPath reads the source from standard input.
	stdinPath = "-"
	// untitledName names stdin output when the document sets no title.
	untitledName = "document"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .rn extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
// OutputPath is empty for stdin until the document title is known.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all RNote sources to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	if inputPath == stdinPath {
		return []FileToConvert{{InputPath: stdinPath}}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateSourceExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.HasExtension(path, sourceExt) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the PDF output path for a source file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExtension(filepath.Base(inputPath), pdfExt)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if fileutil.HasExtension(outputDir, pdfExt) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// titleOutputPath names stdin output after the document title.
func titleOutputPath(title, outputDir string) string {
	if fileutil.HasExtension(outputDir, pdfExt) {
		return outputDir
	}
	name := slug.Make(title)
	if name == "" {
		name = untitledName
	}
	return filepath.Join(outputDir, name+pdfExt)
}

// validateSourceExtension checks that the file has the .rn extension.
func validateSourceExtension(path string) error {
	if !fileutil.HasExtension(path, sourceExt) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > rnote.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, rnote.MaxPoolSize)
	}
	return nil
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	if strings.HasSuffix(strings.ToLower(pdfPath), pdfExt) {
		return fileutil.ReplaceExtension(pdfPath, htmlExt)
	}
	return pdfPath + htmlExt
}
