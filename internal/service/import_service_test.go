package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/parser"
	"github.com/kanha-9770/bulkimport/internal/processor"
	"github.com/kanha-9770/bulkimport/internal/service"
	"github.com/kanha-9770/bulkimport/internal/store"
	"github.com/kanha-9770/bulkimport/internal/validator"
)

// fakeJobRepo is an in-memory JobRepository that records every saved
// state so tests can assert on status transitions.
type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]domain.ImportJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]domain.ImportJob)}
}

func (r *fakeJobRepo) CreateImportJob(_ context.Context, job *domain.ImportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) GetImportJob(_ context.Context, id string) (*domain.ImportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

func (r *fakeJobRepo) ListImportJobs(_ context.Context, limit int) ([]domain.ImportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ImportJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, job)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateImportJob(_ context.Context, job *domain.ImportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) single(t *testing.T) domain.ImportJob {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.jobs, 1)
	for _, job := range r.jobs {
		return job
	}
	return domain.ImportJob{}
}

func newTestService(jobRepo *fakeJobRepo) (*service.ImportService, *store.MemoryCategoryStore, *store.MemoryProductStore) {
	categories := store.NewMemoryCategoryStore()
	products := store.NewMemoryProductStore()
	proc := processor.New(map[domain.EntityType]processor.Strategy{
		domain.EntityCategory: processor.NewCategoryStrategy(categories),
		domain.EntityProduct:  processor.NewProductStrategy(products),
	})
	svc := service.NewImportService(validator.New(), proc, jobRepo, time.Minute)
	return svc, categories, products
}

var defaultOptions = domain.ProcessOptions{UpdateExisting: true, CreateMissing: true}

func TestImportService_RunImport(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a CSV batch end to end", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, categories, _ := newTestService(jobRepo)

		result, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangEnglish,
			Data:       []byte("name_en,category_icon\nFilling Machines,/icons/fill.svg\nCapping Machines,/icons/cap.svg\n"),
			MediaType:  parser.MediaTypeCSV,
			Filename:   "categories.csv",
			Options:    defaultOptions,
		})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 2, result.Processed)

		stored, err := categories.FindByName(ctx, "Filling Machines")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "/icons/fill.svg", stored.CategoryIcon)

		job := jobRepo.single(t)
		assert.Equal(t, domain.JobStatusCompleted, job.Status)
		assert.Equal(t, "categories.csv", job.Filename)
		assert.Equal(t, 2, job.TotalRecords)
		assert.Equal(t, 2, job.Created)
		require.NotNil(t, job.CompletedAt)
	})

	t.Run("validation failure short-circuits with zero counts", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, categories, _ := newTestService(jobRepo)

		result, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangEnglish,
			Data:       []byte("name_en\nFilling Machines\n\"\"\n"),
			MediaType:  parser.MediaTypeCSV,
			Options:    defaultOptions,
		})
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.Equal(t, 0, result.Processed)
		assert.Equal(t, 0, result.Created)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Equal(t, "Required field 'name_en' is missing", result.Errors[0].Message)

		// Nothing reached the store, including the valid first row.
		all, err := categories.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		job := jobRepo.single(t)
		assert.Equal(t, domain.JobStatusFailed, job.Status)
	})

	t.Run("skip errors proceeds past validation failures", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, categories, _ := newTestService(jobRepo)

		result, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangEnglish,
			Data:       []byte("name_en\nFilling Machines\n\"\"\nCapping Machines\n"),
			MediaType:  parser.MediaTypeCSV,
			MappingOptions: domain.MappingOptions{
				SkipMissingFields: true,
			},
			Options: domain.ProcessOptions{SkipErrors: true, UpdateExisting: true, CreateMissing: true},
		})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 2, result.Created)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)

		all, err := categories.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		job := jobRepo.single(t)
		assert.Equal(t, domain.JobStatusCompletedWithErrors, job.Status)
		assert.Equal(t, 1, job.ErrorCount)
	})

	t.Run("unsupported media type returns an error", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, _, _ := newTestService(jobRepo)

		_, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangEnglish,
			Data:       []byte("<xml/>"),
			MediaType:  "application/xml",
			Options:    defaultOptions,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("operator mapping overrides auto-mapping", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, categories, _ := newTestService(jobRepo)

		result, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangEnglish,
			Data:       []byte(`[{"name_en":"Filling Machines","icon":"/icons/fill.svg"}]`),
			MediaType:  parser.MediaTypeJSON,
			Mapping:    domain.FieldMapping{"icon": "category_icon"},
			Options:    defaultOptions,
		})
		require.NoError(t, err)
		require.True(t, result.Success)

		stored, err := categories.FindByName(ctx, "Filling Machines")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "/icons/fill.svg", stored.CategoryIcon)
	})

	t.Run("duplicate mapping targets are rejected", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, _, _ := newTestService(jobRepo)

		_, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangEnglish,
			Data:       []byte(`[{"name_en":"Filling Machines","title":"Filling"}]`),
			MediaType:  parser.MediaTypeJSON,
			Mapping:    domain.FieldMapping{"title": "name_en"},
			Options:    defaultOptions,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field mapping")

		job := jobRepo.single(t)
		assert.Equal(t, domain.JobStatusFailed, job.Status)
	})

	t.Run("translation batch attaches to base rows", func(t *testing.T) {
		jobRepo := newFakeJobRepo()
		svc, categories, _ := newTestService(jobRepo)

		parent, err := categories.Create(ctx, store.Fields{"name_en": "Filling Machines"})
		require.NoError(t, err)

		result, err := svc.RunImport(ctx, service.ImportRequest{
			EntityType: domain.EntityCategory,
			Language:   domain.LangFrench,
			Data:       []byte(`[{"name":"Machines de remplissage","name_en":"Filling Machines"}]`),
			MediaType:  parser.MediaTypeJSON,
			MappingOptions: domain.MappingOptions{
				CreateRelations: true,
			},
			Options: defaultOptions,
		})
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, 1, result.Created)

		translation, err := categories.FindTranslation(ctx, parent.ID, domain.LangFrench)
		require.NoError(t, err)
		require.NotNil(t, translation)
		assert.Equal(t, "Machines de remplissage", translation.Name)
	})
}

func TestImportService_Preview(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(newFakeJobRepo())

	preview, err := svc.Preview(ctx, service.ImportRequest{
		EntityType: domain.EntityCategory,
		Language:   domain.LangEnglish,
		Data:       []byte("name_en,icon\nFilling Machines,/icons/fill.svg\n"),
		MediaType:  parser.MediaTypeCSV,
	})
	require.NoError(t, err)

	assert.True(t, preview.Validation.Valid)
	assert.ElementsMatch(t, []string{"name_en", "icon"}, preview.SourceFields)
	assert.Contains(t, preview.TargetFields, "category_icon")
	assert.Equal(t, "name_en", preview.Mapping["name_en"])
	assert.Equal(t, domain.SkipField, preview.Mapping["icon"], "unmatched source fields map to the skip sentinel")
	require.Len(t, preview.Batch.Records, 1)
}

func TestImportService_Preview_InfersEntityType(t *testing.T) {
	svc, _, _ := newTestService(newFakeJobRepo())

	preview, err := svc.Preview(context.Background(), service.ImportRequest{
		Language:  domain.LangEnglish,
		Data:      []byte(`[{"model_name_en":"FM-100"}]`),
		MediaType: parser.MediaTypeJSON,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EntityProduct, preview.Batch.EntityType)
}

func TestImportService_Jobs(t *testing.T) {
	ctx := context.Background()
	jobRepo := newFakeJobRepo()
	svc, _, _ := newTestService(jobRepo)

	_, err := svc.RunImport(ctx, service.ImportRequest{
		EntityType: domain.EntityCategory,
		Language:   domain.LangEnglish,
		Data:       []byte(`[{"name_en":"Filling Machines"}]`),
		MediaType:  parser.MediaTypeJSON,
		Options:    defaultOptions,
	})
	require.NoError(t, err)

	jobs, err := svc.ListImportJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job, err := svc.GetImportJob(ctx, jobs[0].ID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)

	missing, err := svc.GetImportJob(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
