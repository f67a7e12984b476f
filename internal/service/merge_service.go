package service

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"bommerge/internal/bom"
	"bommerge/internal/config"
	"bommerge/internal/domain"
)

// FilePayload is one uploaded file held in memory for a merge run.
type FilePayload struct {
	Name string
	Data []byte
}

// MergeService defines the BOM merge contract.
type MergeService interface {
	Merge(ctx context.Context, files []FilePayload) (*domain.MergeResult, error)
	Export(rows []domain.MergedRow) ([]byte, error)
}

type mergeService struct {
	cfg *config.MergeConfig
}

// NewMergeService creates a new MergeService implementation.
func NewMergeService(cfg *config.MergeConfig) MergeService {
	return &mergeService{cfg: cfg}
}

// Merge normalizes each uploaded file and folds the survivors into one
// merged table. Files that are oversized, of an unsupported type,
// unreadable, or missing a required column are skipped and recorded in
// the result; the run fails only when nothing was uploaded
// (domain.ErrNoInput), too much was (domain.ErrTooManyFiles), or no
// file survived normalization (domain.ErrNoUsableInput — the returned
// result still carries the per-file errors in that case).
func (s *mergeService) Merge(ctx context.Context, files []FilePayload) (*domain.MergeResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoInput
	}
	if s.cfg.MaxFiles > 0 && len(files) > s.cfg.MaxFiles {
		return nil, domain.ErrTooManyFiles
	}

	result := &domain.MergeResult{}
	var tables []domain.NormalizedTable
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Name), "."))
		if !domain.AllowedExtensions[ext] {
			result.Skipped = append(result.Skipped, fileError(file.Name, domain.ErrUnsupportedFileType))
			continue
		}
		if maxBytes > 0 && int64(len(file.Data)) > maxBytes {
			result.Skipped = append(result.Skipped, fileError(file.Name, domain.ErrFileTooLarge))
			continue
		}

		table, err := bom.ParseWorkbook(file.Name, file.Data)
		if err != nil {
			log.Printf("mergeService.Merge: skipping %s: %v", file.Name, err)
			result.Skipped = append(result.Skipped, fileError(file.Name, err))
			continue
		}
		tables = append(tables, *table)
		result.FilesMerged++
	}

	rows, err := bom.Merge(tables)
	if err != nil {
		return result, err
	}
	result.Rows = rows
	result.TotalQuantity = bom.TotalQuantity(rows)
	return result, nil
}

// Export serializes merged rows to an .xlsx byte buffer.
func (s *mergeService) Export(rows []domain.MergedRow) ([]byte, error) {
	return bom.WriteWorkbook(rows)
}

// fileError converts a per-file failure into its skip record.
func fileError(name string, err error) domain.FileError {
	code := "FILE_READ"
	switch {
	case errors.Is(err, domain.ErrMissingColumn):
		code = "MISSING_COLUMN"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		code = "UNSUPPORTED_FILE_TYPE"
	case errors.Is(err, domain.ErrFileTooLarge):
		code = "FILE_TOO_LARGE"
	}
	return domain.FileError{File: name, Code: code, Message: err.Error()}
}
