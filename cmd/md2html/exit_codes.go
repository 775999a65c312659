package main

import (
	"errors"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitGeneral = 1 // unexpected or conversion failure
	ExitUsage   = 2 // bad flags, config, or arguments
	ExitIO      = 3 // missing input or unwritable output
	ExitStale   = 4 // --check found outputs that differ
)

// exitCodeFor maps an error to its exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess

	case errors.Is(err, ErrStaleOutput):
		return ExitStale

	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrOutputConflict),
		errors.Is(err, ErrInvalidWorkerCount),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidEngine),
		errors.Is(err, config.ErrInvalidLang),
		errors.Is(err, md2html.ErrInvalidEngine),
		errors.Is(err, md2html.ErrStyleNotFound),
		errors.Is(err, md2html.ErrInvalidAssetPath),
		errors.Is(err, fileutil.ErrExtensionEmpty),
		errors.Is(err, fileutil.ErrExtensionPathTraversal):
		return ExitUsage

	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrReadMarkdown),
		errors.Is(err, ErrWriteHTML),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO

	default:
		return ExitGeneral
	}
}
