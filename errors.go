package rnote

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource     = errors.New("source cannot be empty")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrConverterClosed = errors.New("converter pool is closed")

	// Compile configuration errors.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// Asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
