package domain

import "time"

// JobStatus represents the lifecycle state of an import job.
type JobStatus string

const (
	JobStatusPending             JobStatus = "pending"
	JobStatusProcessing          JobStatus = "processing"
	JobStatusCompleted           JobStatus = "completed"
	JobStatusCompletedWithErrors JobStatus = "completed_with_errors"
	JobStatusFailed              JobStatus = "failed"
)

// ImportJob records one run of the import pipeline for the history view.
// Counts mirror the ProcessingResult of the run.
type ImportJob struct {
	ID           string       `json:"id"`
	EntityType   EntityType   `json:"entity_type"`
	Language     LanguageCode `json:"language"`
	Status       JobStatus    `json:"status"`
	Filename     string       `json:"filename,omitempty"`
	TotalRecords int          `json:"total_records"`
	Processed    int          `json:"processed"`
	Created      int          `json:"created"`
	Updated      int          `json:"updated"`
	Skipped      int          `json:"skipped"`
	ErrorCount   int          `json:"error_count"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}
