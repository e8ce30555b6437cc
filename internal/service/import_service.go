// Package service sequences the import pipeline: parse, validate, map,
// process. The only cross-stage control flow is the validation
// short-circuit; every other boundary passes the previous stage's value
// straight through.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/logger"
	"github.com/kanha-9770/bulkimport/internal/mapper"
	"github.com/kanha-9770/bulkimport/internal/metrics"
	"github.com/kanha-9770/bulkimport/internal/parser"
	"github.com/kanha-9770/bulkimport/internal/processor"
	"github.com/kanha-9770/bulkimport/internal/repository"
	"github.com/kanha-9770/bulkimport/internal/validator"
)

// DefaultImportTimeout bounds one whole pipeline run.
const DefaultImportTimeout = 10 * time.Minute

// ImportRequest carries everything one import run needs.
type ImportRequest struct {
	EntityType domain.EntityType
	Language   domain.LanguageCode
	Data       []byte
	MediaType  string
	Filename   string

	// Mapping holds operator overrides applied on top of the automatic
	// case-insensitive mapping. Nil means pure auto-mapping.
	Mapping        domain.FieldMapping
	MappingOptions domain.MappingOptions
	Options        domain.ProcessOptions

	RequestID string
}

// PreviewResult is what the wizard needs to render its validate-and-map
// steps: the parsed batch, its validation verdict, and the mapping the
// operator starts from.
type PreviewResult struct {
	Batch        domain.ImportBatch      `json:"batch"`
	Validation   domain.ValidationResult `json:"validation"`
	SourceFields []string                `json:"sourceFields"`
	TargetFields []string                `json:"targetFields"`
	Mapping      domain.FieldMapping     `json:"mapping"`
}

// ImportService drives import runs and records their history.
type ImportService struct {
	validator *validator.Validator
	processor *processor.Processor
	jobRepo   repository.JobRepository
	timeout   time.Duration
}

// NewImportService creates an ImportService.
func NewImportService(v *validator.Validator, p *processor.Processor, jobRepo repository.JobRepository, timeout time.Duration) *ImportService {
	if timeout <= 0 {
		timeout = DefaultImportTimeout
	}
	return &ImportService{
		validator: v,
		processor: p,
		jobRepo:   jobRepo,
		timeout:   timeout,
	}
}

// Preview parses and validates raw data and derives the initial field
// mapping, without touching the store.
func (s *ImportService) Preview(ctx context.Context, req ImportRequest) (*PreviewResult, error) {
	batch, err := parser.Parse(req.Data, req.MediaType, parser.Options{
		EntityType:      req.EntityType,
		Language:        req.Language,
		InferEntityType: req.EntityType == "",
	})
	if err != nil {
		return nil, err
	}

	sourceFields := mapper.SourceFields(batch)
	targetFields := mapper.TargetFields(batch.EntityType, batch.Language)
	mapping := mapper.AutoMap(sourceFields, targetFields)
	for source, target := range req.Mapping {
		mapping[source] = target
	}

	return &PreviewResult{
		Batch:        batch,
		Validation:   s.validator.ValidateBatch(batch),
		SourceFields: sourceFields,
		TargetFields: targetFields,
		Mapping:      mapping,
	}, nil
}

// RunImport executes the full pipeline synchronously and records an
// import job for the history view. Parse-level failures and a rejected
// mapping return an error; everything downstream is reported through the
// ProcessingResult.
func (s *ImportService) RunImport(ctx context.Context, req ImportRequest) (domain.ProcessingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := logger.WithRequestID(req.RequestID)
	startTime := time.Now()

	parseTimer := metrics.NewTimer()
	batch, err := parser.Parse(req.Data, req.MediaType, parser.Options{
		EntityType: req.EntityType,
		Language:   req.Language,
	})
	parseTimer.ObserveDuration(metrics.StageDuration.WithLabelValues("parse"))
	if err != nil {
		log.Error("Parse failed",
			slog.String("media_type", req.MediaType),
			slog.String("error", err.Error()))
		return domain.ProcessingResult{}, err
	}

	log.Info("Batch parsed",
		slog.String("entity_type", string(batch.EntityType)),
		slog.String("language", string(batch.Language)),
		slog.Int("records", len(batch.Records)))

	job := s.createJob(ctx, req, batch)
	metrics.StartImport(string(batch.EntityType), string(batch.Language))
	defer metrics.EndImport(string(batch.EntityType), string(batch.Language))

	validateTimer := metrics.NewTimer()
	validation := s.validator.ValidateBatch(batch)
	validateTimer.ObserveDuration(metrics.StageDuration.WithLabelValues("validate"))

	if !validation.Valid && !req.Options.SkipErrors {
		result := resultFromValidation(validation)
		s.finishJob(ctx, job, result, startTime)
		log.Warn("Validation failed, import aborted",
			slog.Int("errors", len(validation.Errors)))
		return result, nil
	}

	mapTimer := metrics.NewTimer()
	sourceFields := mapper.SourceFields(batch)
	targetFields := mapper.TargetFields(batch.EntityType, batch.Language)
	mapping := mapper.AutoMap(sourceFields, targetFields)
	for source, target := range req.Mapping {
		mapping[source] = target
	}
	mapTimer.ObserveDuration(metrics.StageDuration.WithLabelValues("map"))

	if err := mapper.CheckMapping(mapping, req.MappingOptions); err != nil {
		s.failJob(ctx, job, err)
		log.Error("Field mapping rejected", slog.String("error", err.Error()))
		return domain.ProcessingResult{}, fmt.Errorf("field mapping: %w", err)
	}

	processTimer := metrics.NewTimer()
	result := s.processor.Process(ctx, batch, mapping, req.MappingOptions, req.Options)
	processTimer.ObserveDuration(metrics.StageDuration.WithLabelValues("process"))

	s.finishJob(ctx, job, result, startTime)

	log.Info("Import completed",
		slog.String("entity_type", string(batch.EntityType)),
		slog.String("language", string(batch.Language)),
		slog.Bool("success", result.Success),
		slog.Int("processed", result.Processed),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("elapsed", time.Since(startTime).Round(time.Millisecond)))

	return result, nil
}

// resultFromValidation is the short-circuit result: zero counts, the
// validation errors copied over verbatim.
func resultFromValidation(validation domain.ValidationResult) domain.ProcessingResult {
	errors := make([]domain.ProcessingError, len(validation.Errors))
	for i, issue := range validation.Errors {
		errors[i] = domain.ProcessingError{Row: issue.Row, Message: issue.Message}
	}
	return domain.ProcessingResult{
		Success: false,
		Errors:  errors,
	}
}

func (s *ImportService) createJob(ctx context.Context, req ImportRequest, batch domain.ImportBatch) *domain.ImportJob {
	now := time.Now()
	job := &domain.ImportJob{
		ID:           uuid.New().String(),
		EntityType:   batch.EntityType,
		Language:     batch.Language,
		Status:       domain.JobStatusProcessing,
		Filename:     req.Filename,
		TotalRecords: len(batch.Records),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobRepo.CreateImportJob(ctx, job); err != nil {
		logger.WithRequestID(req.RequestID).Error("Failed to record import job",
			slog.String("error", err.Error()))
	}
	return job
}

func (s *ImportService) finishJob(ctx context.Context, job *domain.ImportJob, result domain.ProcessingResult, startTime time.Time) {
	now := time.Now()
	job.Processed = result.Processed
	job.Created = result.Created
	job.Updated = result.Updated
	job.Skipped = result.Skipped
	job.ErrorCount = len(result.Errors)
	job.UpdatedAt = now
	job.CompletedAt = &now

	switch {
	case !result.Success:
		job.Status = domain.JobStatusFailed
	case len(result.Errors) > 0:
		job.Status = domain.JobStatusCompletedWithErrors
	default:
		job.Status = domain.JobStatusCompleted
	}
	if len(result.Errors) > 0 {
		msg := result.Errors[0].Message
		job.ErrorMessage = &msg
	}

	if err := s.jobRepo.UpdateImportJob(ctx, job); err != nil {
		logger.WithJobID(job.ID).Error("Failed to update import job",
			slog.String("error", err.Error()))
	}

	metrics.ObserveImportCompletion(string(job.EntityType), string(job.Language),
		string(job.Status), time.Since(startTime).Seconds(),
		result.Created, result.Updated, result.Skipped, len(result.Errors))
}

func (s *ImportService) failJob(ctx context.Context, job *domain.ImportJob, cause error) {
	now := time.Now()
	msg := cause.Error()
	job.Status = domain.JobStatusFailed
	job.ErrorMessage = &msg
	job.UpdatedAt = now
	job.CompletedAt = &now
	if err := s.jobRepo.UpdateImportJob(ctx, job); err != nil {
		logger.WithJobID(job.ID).Error("Failed to update import job",
			slog.String("error", err.Error()))
	}
}

// GetImportJob retrieves an import job by ID.
func (s *ImportService) GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	return s.jobRepo.GetImportJob(ctx, id)
}

// ListImportJobs returns recent import jobs, newest first.
func (s *ImportService) ListImportJobs(ctx context.Context, limit int) ([]domain.ImportJob, error) {
	return s.jobRepo.ListImportJobs(ctx, limit)
}
