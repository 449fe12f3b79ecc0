package md2overleaf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocumentPath = errors.New("document path cannot be empty")
	ErrVaultNotFound     = errors.New("vault root does not exist")

	// Conversion errors.
	ErrConversion  = errors.New("converter exited with error")
	ErrTexNotFound = errors.New("converter output did not appear before timeout")

	// Staging errors.
	ErrTemplateMissing = errors.New("shared template file not found in vault root")
	ErrStageBuild      = errors.New("staging directory build failed")

	// Upload errors.
	ErrUpload = errors.New("upload tool exited with error")
)
