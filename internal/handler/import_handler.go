package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/logger"
	"github.com/kanha-9770/bulkimport/internal/middleware"
	"github.com/kanha-9770/bulkimport/internal/parser"
	"github.com/kanha-9770/bulkimport/internal/service"
)

// ImportHandler handles import-related HTTP requests.
type ImportHandler struct {
	importService  *service.ImportService
	maxUploadBytes int64
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// importJSONRequest is the inline-JSON request body accepted by both
// CreateImport and PreviewImport as an alternative to a file upload.
type importJSONRequest struct {
	EntityType     string                `json:"entityType"`
	Language       string                `json:"language"`
	Records        []domain.RawRecord    `json:"records"`
	Mapping        domain.FieldMapping   `json:"mapping,omitempty"`
	MappingOptions domain.MappingOptions `json:"mappingOptions"`
	Options        domain.ProcessOptions `json:"options"`
}

// ImportJobResponse represents an import job in the API response.
type ImportJobResponse struct {
	ID           string  `json:"id"`
	EntityType   string  `json:"entity_type"`
	Language     string  `json:"language"`
	Status       string  `json:"status"`
	Filename     string  `json:"filename,omitempty"`
	TotalRecords int     `json:"total_records"`
	Processed    int     `json:"processed"`
	Created      int     `json:"created"`
	Updated      int     `json:"updated"`
	Skipped      int     `json:"skipped"`
	ErrorCount   int     `json:"error_count"`
	ErrorMessage *string `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	CompletedAt  *string `json:"completed_at,omitempty"`
}

// toImportJobResponse converts a domain.ImportJob to an ImportJobResponse.
func toImportJobResponse(job *domain.ImportJob) ImportJobResponse {
	response := ImportJobResponse{
		ID:           job.ID,
		EntityType:   string(job.EntityType),
		Language:     string(job.Language),
		Status:       string(job.Status),
		Filename:     job.Filename,
		TotalRecords: job.TotalRecords,
		Processed:    job.Processed,
		Created:      job.Created,
		Updated:      job.Updated,
		Skipped:      job.Skipped,
		ErrorCount:   job.ErrorCount,
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt.Format(TimeFormat),
		UpdatedAt:    job.UpdatedAt.Format(TimeFormat),
	}
	if job.CompletedAt != nil {
		completedAt := job.CompletedAt.Format(TimeFormat)
		response.CompletedAt = &completedAt
	}
	return response
}

// CreateImport handles POST /api/v1/imports. It accepts either a
// multipart upload (file + form fields) or an inline JSON body with the
// records embedded, runs the pipeline synchronously, and returns the
// processing result.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	req, ok := h.buildRequest(c)
	if !ok {
		return
	}

	result, err := h.importService.RunImport(c.Request.Context(), req)
	if err != nil {
		h.writeImportError(c, req.RequestID, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PreviewImport handles POST /api/v1/imports/preview. It parses and
// validates the payload and returns the derived field mapping without
// writing anything.
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	req, ok := h.buildRequest(c)
	if !ok {
		return
	}

	preview, err := h.importService.Preview(c.Request.Context(), req)
	if err != nil {
		h.writeImportError(c, req.RequestID, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// GetImport handles GET /api/v1/imports/:id
func (h *ImportHandler) GetImport(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	job, err := h.importService.GetImportJob(c.Request.Context(), id)
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to get import job",
			slog.String("job_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve import job"})
		return
	}

	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import job not found"})
		return
	}

	c.JSON(http.StatusOK, toImportJobResponse(job))
}

// ListImports handles GET /api/v1/imports
func (h *ImportHandler) ListImports(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	jobs, err := h.importService.ListImportJobs(c.Request.Context(), limit)
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to list import jobs",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list import jobs"})
		return
	}

	responses := make([]ImportJobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, toImportJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"imports": responses})
}

// buildRequest assembles a service.ImportRequest from either request
// shape. On failure it writes the error response and returns ok=false.
func (h *ImportHandler) buildRequest(c *gin.Context) (service.ImportRequest, bool) {
	contentType, _, _ := mime.ParseMediaType(c.ContentType())
	if contentType == parser.MediaTypeJSON {
		return h.buildJSONRequest(c)
	}
	return h.buildMultipartRequest(c)
}

// defaultMappingOptions and defaultProcessOptions are the lenient
// wizard defaults shared by both request shapes: create what is
// missing, update what exists, tolerate ragged rows.
func defaultMappingOptions() domain.MappingOptions {
	return domain.MappingOptions{
		SkipMissingFields: true,
		CreateRelations:   true,
		UpdateExisting:    true,
	}
}

func defaultProcessOptions() domain.ProcessOptions {
	return domain.ProcessOptions{
		UpdateExisting: true,
		CreateMissing:  true,
	}
}

func (h *ImportHandler) buildJSONRequest(c *gin.Context) (service.ImportRequest, bool) {
	// Pre-populate the defaults so omitted option fields keep them.
	body := importJSONRequest{
		MappingOptions: defaultMappingOptions(),
		Options:        defaultProcessOptions(),
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return service.ImportRequest{}, false
	}
	if len(body.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "records must not be empty"})
		return service.ImportRequest{}, false
	}

	data, err := json.Marshal(body.Records)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid records"})
		return service.ImportRequest{}, false
	}

	return service.ImportRequest{
		EntityType:     domain.EntityType(body.EntityType),
		Language:       domain.LanguageCode(body.Language),
		Data:           data,
		MediaType:      parser.MediaTypeJSON,
		Mapping:        body.Mapping,
		MappingOptions: body.MappingOptions,
		Options:        body.Options,
		RequestID:      middleware.GetRequestID(c),
	}, true
}

func (h *ImportHandler) buildMultipartRequest(c *gin.Context) (service.ImportRequest, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return service.ImportRequest{}, false
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit"})
		return service.ImportRequest{}, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return service.ImportRequest{}, false
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit"})
		return service.ImportRequest{}, false
	}

	mapping := domain.FieldMapping{}
	if raw := c.PostForm("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mapping must be a JSON object of source to target fields"})
			return service.ImportRequest{}, false
		}
	}

	return service.ImportRequest{
		EntityType: domain.EntityType(c.PostForm("entity_type")),
		Language:   domain.LanguageCode(c.PostForm("language")),
		Data:       data,
		MediaType:  fileMediaType(header.Header.Get("Content-Type"), header.Filename),
		Filename:   header.Filename,
		Mapping:    mapping,
		MappingOptions: domain.MappingOptions{
			SkipMissingFields:     formBool(c, "skip_missing_fields", true),
			CreateRelations:       formBool(c, "create_relations", true),
			UpdateExisting:        formBool(c, "update_existing", true),
			AllowDuplicateTargets: formBool(c, "allow_duplicate_targets", false),
		},
		Options: domain.ProcessOptions{
			SkipErrors:     formBool(c, "skip_errors", false),
			UpdateExisting: formBool(c, "update_existing", true),
			CreateMissing:  formBool(c, "create_missing", true),
		},
		RequestID: middleware.GetRequestID(c),
	}, true
}

func (h *ImportHandler) writeImportError(c *gin.Context, requestID string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrUnsupportedEntityType),
		strings.Contains(err.Error(), "field mapping"):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithRequestID(requestID).Error("Import failed",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process import request"})
	}
}

// fileMediaType resolves the media type of an uploaded file, preferring
// the part's Content-Type header and falling back to the file extension.
func fileMediaType(contentType, filename string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil &&
		mt != "" && mt != "application/octet-stream" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parser.MediaTypeCSV
	case ".json":
		return parser.MediaTypeJSON
	case ".xlsx":
		return parser.MediaTypeXLSX
	case ".xls":
		return parser.MediaTypeXLS
	default:
		return contentType
	}
}

func formBool(c *gin.Context, key string, defaultValue bool) bool {
	raw := c.PostForm(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
