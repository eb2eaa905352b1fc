package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// CacheRepo stores translations keyed by text hash, language pair and provider
type CacheRepo struct{ *repo }

// NewCacheRepo creates a cache repository over db
func NewCacheRepo(db *sql.DB) *CacheRepo { return &CacheRepo{newRepo(db)} }

// Get returns the cached translation and whether it was found
func (r *CacheRepo) Get(ctx context.Context, hash, source, target, provider string) (string, bool, error) {
	q := r.sq.Select("translation").
		From("translation_cache").
		Where(sq.Eq{
			"text_hash": hash,
			"src_lang":  source,
			"tgt_lang":  target,
			"provider":  provider,
		}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return "", false, err
	}

	var translation string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&translation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return translation, true, nil
}

// Put inserts or replaces a cached translation
func (r *CacheRepo) Put(ctx context.Context, hash, source, target, provider, translation string) error {
	q := r.sq.Insert("translation_cache").
		Columns("text_hash", "src_lang", "tgt_lang", "provider", "translation", "created_at").
		Values(hash, source, target, provider, translation, formatTime(time.Now())).
		Suffix("ON CONFLICT(text_hash, src_lang, tgt_lang, provider) DO UPDATE SET translation=excluded.translation")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Count returns the number of cached translations
func (r *CacheRepo) Count(ctx context.Context) (int, error) {
	sqlStr, args, err := r.sq.Select("COUNT(*)").From("translation_cache").ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n)
	return n, err
}
