// Command bommerge merges spreadsheet BOM files from the command line.
// Usage: bommerge [-out merged_bom.xlsx] fileA.xlsx fileB.xlsx ...
// A JSON run summary is printed to stdout; files that cannot be read
// as BOM spreadsheets are skipped and listed in the summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"bommerge/internal/config"
	"bommerge/internal/domain"
	"bommerge/internal/service"
)

type runSummary struct {
	Success     bool               `json:"success"`
	OutputFile  string             `json:"output_file,omitempty"`
	RowCount    int                `json:"row_count,omitempty"`
	FilesMerged int                `json:"files_merged,omitempty"`
	Skipped     []domain.FileError `json:"skipped,omitempty"`
	Error       string             `json:"error,omitempty"`
	Duration    string             `json:"duration"`
}

func main() {
	start := time.Now()

	out := flag.String("out", domain.MergedFileName, "path of the merged workbook")
	maxSizeMB := flag.Int64("max-size", 0, "per-file size limit in MB (0 = no limit)")
	flag.Parse()

	if flag.NArg() == 0 {
		fail(start, nil, "at least one input file is required")
	}

	var skipped []domain.FileError
	files := make([]service.FilePayload, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			skipped = append(skipped, domain.FileError{File: path, Code: "FILE_READ", Message: err.Error()})
			continue
		}
		files = append(files, service.FilePayload{Name: path, Data: data})
	}
	if len(files) == 0 {
		fail(start, skipped, domain.ErrNoUsableInput.Error())
	}

	svc := service.NewMergeService(&config.MergeConfig{MaxFileSizeMB: *maxSizeMB})
	result, err := svc.Merge(context.Background(), files)
	if err != nil {
		if result != nil {
			skipped = append(skipped, result.Skipped...)
		}
		fail(start, skipped, err.Error())
	}
	skipped = append(skipped, result.Skipped...)

	artifact, err := svc.Export(result.Rows)
	if err != nil {
		fail(start, skipped, "export failed: "+err.Error())
	}
	if err := os.WriteFile(*out, artifact, 0o644); err != nil {
		fail(start, skipped, "write output: "+err.Error())
	}

	emitJSON(runSummary{
		Success:     true,
		OutputFile:  *out,
		RowCount:    len(result.Rows),
		FilesMerged: result.FilesMerged,
		Skipped:     skipped,
		Duration:    time.Since(start).String(),
	})
}

func fail(start time.Time, skipped []domain.FileError, msg string) {
	emitJSON(runSummary{
		Success:  false,
		Skipped:  skipped,
		Error:    msg,
		Duration: time.Since(start).String(),
	})
	os.Exit(1)
}

func emitJSON(s runSummary) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		log.Fatalf("failed to encode run summary: %v", err)
	}
}
