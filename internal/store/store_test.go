package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdash/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "ytdash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ytdash.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	names, err := migrationNames()
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, len(names), n)
}

func TestCacheRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepo(openTestDB(t))

	_, ok, err := repo.Get(ctx, "abc", "en", "es", "google")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put(ctx, "abc", "en", "es", "google", "hola"))
	require.NoError(t, repo.Put(ctx, "abc", "en", "es", "google", "hola!"))
	require.NoError(t, repo.Put(ctx, "abc", "en", "fr", "google", "salut"))

	got, ok, err := repo.Get(ctx, "abc", "en", "es", "google")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hola!", got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestJobRepoSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepo(openTestDB(t))

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	job := &model.TranslationJob{
		ID:             "translate-1",
		URL:            "https://youtu.be/dQw4w9WgXcQ",
		TargetLanguage: "es",
		VideoID:        "video_1_es",
		Status:         model.TaskStatusPending,
		CreatedAt:      created,
	}
	require.NoError(t, repo.SaveJob(ctx, job))

	job.Status = model.TaskStatusCompleted
	job.Progress = 1
	job.OutputPath = "/out/video_1_es.mp4"
	job.FileSize = 4096
	job.StartedAt = created.Add(time.Second)
	job.FinishedAt = created.Add(time.Minute)
	require.NoError(t, repo.SaveJob(ctx, job))

	got, err := repo.GetJob(ctx, "translate-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
	assert.Equal(t, 100, got.Percent)
	assert.Equal(t, int64(4096), got.FileSize)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, time.Minute-time.Second, got.Duration())

	missing, err := repo.GetJob(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestJobRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepo(openTestDB(t))

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.SaveJob(ctx, &model.TranslationJob{
			ID:        id,
			Status:    model.TaskStatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	jobs, err := repo.ListJobs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "c", jobs[0].ID)
	assert.Equal(t, "a", jobs[2].ID)

	jobs, err = repo.ListJobs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	require.NoError(t, repo.DeleteJob(ctx, "b"))
	jobs, err = repo.ListJobs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestJobRepoListSubSecondOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepo(openTestDB(t))

	whole := time.Date(2025, 3, 1, 10, 0, 5, 0, time.UTC)
	half := whole.Add(-500 * time.Millisecond)
	require.NoError(t, repo.SaveJob(ctx, &model.TranslationJob{ID: "whole", Status: model.TaskStatusCompleted, CreatedAt: whole}))
	require.NoError(t, repo.SaveJob(ctx, &model.TranslationJob{ID: "half", Status: model.TaskStatusCompleted, CreatedAt: half}))

	jobs, err := repo.ListJobs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "whole", jobs[0].ID)
	assert.True(t, jobs[0].CreatedAt.Equal(whole))

	assert.Less(t, formatTime(half), formatTime(whole))
}

func TestJobRepoMarkInterrupted(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepo(openTestDB(t))

	statuses := map[string]model.TaskStatus{
		"running": model.TaskStatusTranscribing,
		"pending": model.TaskStatusPending,
		"done":    model.TaskStatusCompleted,
		"stopped": model.TaskStatusStopped,
	}
	for id, st := range statuses {
		require.NoError(t, repo.SaveJob(ctx, &model.TranslationJob{ID: id, Status: st, CreatedAt: time.Now()}))
	}

	n, err := repo.MarkInterrupted(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.GetJob(ctx, "running")
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusError, got.Status)
	assert.Equal(t, InterruptedError, got.LastError)

	got, err = repo.GetJob(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
}
