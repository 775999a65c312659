package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidEngine  = errors.New("invalid engine")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPathRebase     = errors.New("failed to rebase relative paths")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
