package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// PostgresJobRepository implements JobRepository using PostgreSQL.
type PostgresJobRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresJobRepository creates a new PostgresJobRepository.
func NewPostgresJobRepository(pool *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{pool: pool}
}

// CreateImportJob creates a new import job record.
func (r *PostgresJobRepository) CreateImportJob(ctx context.Context, job *domain.ImportJob) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO import_jobs (id, entity_type, language, status, filename,
			total_records, processed, created_count, updated_count, skipped_count,
			error_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, job.ID, job.EntityType, job.Language, job.Status, job.Filename,
		job.TotalRecords, job.Processed, job.Created, job.Updated, job.Skipped,
		job.ErrorCount, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert import job: %w", err)
	}
	return nil
}

const importJobSelect = `
	SELECT id, entity_type, language, status, filename, total_records, processed,
		created_count, updated_count, skipped_count, error_count, error_message,
		created_at, updated_at, completed_at
	FROM import_jobs`

func scanImportJob(row pgx.Row) (*domain.ImportJob, error) {
	var job domain.ImportJob
	var completedAt *time.Time
	var errorMsg *string

	err := row.Scan(&job.ID, &job.EntityType, &job.Language, &job.Status, &job.Filename,
		&job.TotalRecords, &job.Processed, &job.Created, &job.Updated, &job.Skipped,
		&job.ErrorCount, &errorMsg, &job.CreatedAt, &job.UpdatedAt, &completedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan import job: %w", err)
	}

	job.CompletedAt = completedAt
	job.ErrorMessage = errorMsg
	return &job, nil
}

// GetImportJob retrieves an import job by ID.
func (r *PostgresJobRepository) GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	return scanImportJob(r.pool.QueryRow(ctx, importJobSelect+` WHERE id = $1`, id))
}

// ListImportJobs returns the most recent import jobs, newest first.
func (r *PostgresJobRepository) ListImportJobs(ctx context.Context, limit int) ([]domain.ImportJob, error) {
	rows, err := r.pool.Query(ctx, importJobSelect+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.ImportJob
	for rows.Next() {
		var job domain.ImportJob
		var completedAt *time.Time
		var errorMsg *string
		if err := rows.Scan(&job.ID, &job.EntityType, &job.Language, &job.Status, &job.Filename,
			&job.TotalRecords, &job.Processed, &job.Created, &job.Updated, &job.Skipped,
			&job.ErrorCount, &errorMsg, &job.CreatedAt, &job.UpdatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan import job: %w", err)
		}
		job.CompletedAt = completedAt
		job.ErrorMessage = errorMsg
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateImportJob updates an existing import job record.
func (r *PostgresJobRepository) UpdateImportJob(ctx context.Context, job *domain.ImportJob) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE import_jobs
		SET status = $2, total_records = $3, processed = $4, created_count = $5,
			updated_count = $6, skipped_count = $7, error_count = $8,
			error_message = $9, updated_at = $10, completed_at = $11
		WHERE id = $1
	`, job.ID, job.Status, job.TotalRecords, job.Processed, job.Created,
		job.Updated, job.Skipped, job.ErrorCount, job.ErrorMessage,
		job.UpdatedAt, job.CompletedAt)
	if err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	return nil
}
