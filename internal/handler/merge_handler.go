package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bommerge/internal/domain"
	"bommerge/internal/service"
)

// MergeHandler handles BOM merge and preview endpoints.
type MergeHandler struct {
	mergeService service.MergeService
}

// NewMergeHandler creates a new MergeHandler.
func NewMergeHandler(mergeService service.MergeService) *MergeHandler {
	return &MergeHandler{mergeService: mergeService}
}

// MergePreview is the JSON body returned by the preview endpoint.
type MergePreview struct {
	Rows          []domain.MergedRow `json:"rows"`
	RowCount      int                `json:"row_count"`
	FilesMerged   int                `json:"files_merged"`
	TotalQuantity decimal.Decimal    `json:"total_quantity"`
	Skipped       []domain.FileError `json:"skipped,omitempty"`
}

// Merge handles POST /api/v1/bom/merge
// @Summary Merge BOM files
// @Description Upload BOM spreadsheets (repeated files field) and download the merged workbook
// @Tags bom
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param files formData file true "BOM files to merge (.xlsx, .xls)"
// @Success 200 {file} binary "Merged workbook"
// @Failure 400 {object} APIResponse "Missing files or invalid form"
// @Failure 422 {object} APIResponse "No uploaded file could be read"
// @Router /bom/merge [post]
func (h *MergeHandler) Merge(c *gin.Context) {
	files, ok := readUploads(c)
	if !ok {
		return
	}

	result, err := h.mergeService.Merge(c.Request.Context(), files)
	if err != nil {
		handleMergeError(c, result, err)
		return
	}

	artifact, err := h.mergeService.Export(result.Rows)
	if err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] mergeHandler.Merge: export failed: %v", requestID, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to encode merged workbook")
		return
	}

	c.Header("X-Merge-Skipped", strconv.Itoa(len(result.Skipped)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.MergedFileName))
	c.Data(http.StatusOK, domain.XLSXContentType, artifact)
}

// Preview handles POST /api/v1/bom/preview
// @Summary Preview a BOM merge
// @Description Upload BOM spreadsheets and get the merged rows as JSON without producing a workbook
// @Tags bom
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "BOM files to merge (.xlsx, .xls)"
// @Success 200 {object} APIResponse{data=MergePreview} "Merged rows"
// @Failure 400 {object} APIResponse "Missing files or invalid form"
// @Failure 422 {object} APIResponse "No uploaded file could be read"
// @Router /bom/preview [post]
func (h *MergeHandler) Preview(c *gin.Context) {
	files, ok := readUploads(c)
	if !ok {
		return
	}

	result, err := h.mergeService.Merge(c.Request.Context(), files)
	if err != nil {
		handleMergeError(c, result, err)
		return
	}

	RespondOK(c, MergePreview{
		Rows:          result.Rows,
		RowCount:      len(result.Rows),
		FilesMerged:   result.FilesMerged,
		TotalQuantity: result.TotalQuantity,
		Skipped:       result.Skipped,
	})
}

// readUploads pulls the repeated "files" field out of the multipart
// form into memory. On failure the error response has already been
// written and ok is false.
func readUploads(c *gin.Context) (payloads []service.FilePayload, ok bool) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "request is not a valid multipart form")
		return nil, false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "at least one file is required in the files field")
		return nil, false
	}

	payloads = make([]service.FilePayload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_UPLOAD", fmt.Sprintf("could not open uploaded file %q", header.Filename))
			return nil, false
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_UPLOAD", fmt.Sprintf("could not read uploaded file %q", header.Filename))
			return nil, false
		}
		payloads = append(payloads, service.FilePayload{Name: header.Filename, Data: data})
	}
	return payloads, true
}

// handleMergeError sends the error response for a failed merge run.
// When nothing survived normalization the per-file skip records ride
// along as error details so the caller can see why each file failed.
func handleMergeError(c *gin.Context, result *domain.MergeResult, err error) {
	if errors.Is(err, domain.ErrNoUsableInput) && result != nil && len(result.Skipped) > 0 {
		status, code, msg := MapDomainError(err)
		RespondErrorDetails(c, status, code, msg, result.Skipped)
		return
	}
	HandleError(c, err)
}
