package repository

import (
	"context"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// JobRepository persists import-job history records.
type JobRepository interface {
	CreateImportJob(ctx context.Context, job *domain.ImportJob) error
	GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error)
	ListImportJobs(ctx context.Context, limit int) ([]domain.ImportJob, error)
	UpdateImportJob(ctx context.Context, job *domain.ImportJob) error
}
