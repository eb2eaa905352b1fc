package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ytget/ytdash/internal/model"
)

// InterruptedError is recorded on jobs that were still running when the process stopped
const InterruptedError = "interrupted"

var jobColumns = []string{
	"id", "url", "target_language", "video_name", "video_id", "title", "status",
	"progress", "detail", "detected_language", "segments_total", "segments_translated",
	"segments_spoken", "output_path", "file_size", "last_error",
	"created_at", "started_at", "finished_at",
}

// JobRepo persists translation jobs
type JobRepo struct{ *repo }

// NewJobRepo creates a job repository over db
func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{newRepo(db)} }

// SaveJob inserts or updates a job snapshot
func (r *JobRepo) SaveJob(ctx context.Context, j *model.TranslationJob) error {
	values := []any{
		j.ID, j.URL, j.TargetLanguage, j.VideoName, j.VideoID, j.Title, string(j.Status),
		j.Progress, j.Detail, j.DetectedLanguage, j.SegmentsTotal, j.SegmentsTranslated,
		j.SegmentsSpoken, j.OutputPath, j.FileSize, j.LastError,
		formatTime(j.CreatedAt), formatTime(j.StartedAt), formatTime(j.FinishedAt),
	}
	q := r.sq.Insert("translation_jobs").
		Columns(append(jobColumns, "updated_at")...).
		Values(append(values, formatTime(time.Now()))...).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
            title=excluded.title,
            status=excluded.status,
            progress=excluded.progress,
            detail=excluded.detail,
            detected_language=excluded.detected_language,
            segments_total=excluded.segments_total,
            segments_translated=excluded.segments_translated,
            segments_spoken=excluded.segments_spoken,
            output_path=excluded.output_path,
            file_size=excluded.file_size,
            last_error=excluded.last_error,
            started_at=excluded.started_at,
            finished_at=excluded.finished_at,
            updated_at=excluded.updated_at`)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("save job %s: %w", j.ID, err)
	}
	return nil
}

// GetJob returns the job with id, or nil when it does not exist
func (r *JobRepo) GetJob(ctx context.Context, id string) (*model.TranslationJob, error) {
	sqlStr, args, err := r.sq.Select(jobColumns...).
		From("translation_jobs").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	j, err := scanJob(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return j, err
}

// ListJobs returns up to limit jobs, newest first. limit <= 0 returns all.
func (r *JobRepo) ListJobs(ctx context.Context, limit int) ([]*model.TranslationJob, error) {
	q := r.sq.Select(jobColumns...).
		From("translation_jobs").
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*model.TranslationJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// DeleteJob removes the job with id
func (r *JobRepo) DeleteJob(ctx context.Context, id string) error {
	sqlStr, args, err := r.sq.Delete("translation_jobs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// MarkInterrupted moves every job left in a non-final state to Error
// and returns how many rows changed.
func (r *JobRepo) MarkInterrupted(ctx context.Context) (int64, error) {
	now := formatTime(time.Now())
	sqlStr, args, err := r.sq.Update("translation_jobs").
		Set("status", string(model.TaskStatusError)).
		Set("last_error", InterruptedError).
		Set("detail", InterruptedError).
		Set("finished_at", now).
		Set("updated_at", now).
		Where(sq.NotEq{"status": []string{
			string(model.TaskStatusCompleted),
			string(model.TaskStatusStopped),
			string(model.TaskStatusError),
		}}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*model.TranslationJob, error) {
	var j model.TranslationJob
	var status, created, started, finished string
	if err := row.Scan(
		&j.ID, &j.URL, &j.TargetLanguage, &j.VideoName, &j.VideoID, &j.Title, &status,
		&j.Progress, &j.Detail, &j.DetectedLanguage, &j.SegmentsTotal, &j.SegmentsTranslated,
		&j.SegmentsSpoken, &j.OutputPath, &j.FileSize, &j.LastError,
		&created, &started, &finished,
	); err != nil {
		return nil, err
	}
	j.Status = model.TaskStatus(status)
	j.Percent = int(math.Round(j.Progress * 100))
	j.CreatedAt = parseTime(created)
	j.StartedAt = parseTime(started)
	j.FinishedAt = parseTime(finished)
	return &j, nil
}
