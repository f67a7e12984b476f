package domain

// AllowedExtensions maps accepted spreadsheet file extensions
// (without dot) to true.
var AllowedExtensions = map[string]bool{
	"xlsx": true,
	"xls":  true,
}

// XLSXContentType is the MIME type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MergedFileName is the suggested download name for the exported workbook.
const MergedFileName = "merged_bom.xlsx"
