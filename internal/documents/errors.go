package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist for the user.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates the upload is not a PDF, DOCX or text file.
	ErrUnsupportedType = errors.New("unsupported document type")
)
