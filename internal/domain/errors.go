package domain

import "errors"

var (
	ErrNotSpreadsheet      = errors.New("file is not a readable spreadsheet")
	ErrMissingColumn       = errors.New("required column is missing")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrTooManyFiles        = errors.New("too many files in one request")
	ErrNoInput             = errors.New("no input files provided")
	ErrNoUsableInput       = errors.New("no input file could be read")
)
