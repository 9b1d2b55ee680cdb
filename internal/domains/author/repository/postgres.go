package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftbook-backend/internal/domains/author"
	"draftbook-backend/pkg/cache"
)

// postgresRepository implements author.Repository.
// Uses pgxpool for PostgreSQL and a Redis-backed read-through cache for
// the hot lookups (by id and by email). The database remains the single
// source of truth; every write invalidates the affected keys.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorEmailKeyPrefix = "author:email:"
	authorListCacheKey   = "authors:list"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, name, email, summary, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, email, summary)
        VALUES ($1, $2, $3)
        RETURNING ` + authorColumns

	var created author.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Email, a.Summary).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.Summary,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	// The new record changes the listing and may shadow a cached
	// email lookup.
	r.invalidate(ctx, created.ID, created.Email)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.Summary, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*author.Author, error) {
	cacheKey := authorEmailKeyPrefix + email

	var a author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	// Oldest record wins when duplicates share an email.
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        WHERE email = $1
        ORDER BY created_at ASC
        LIMIT 1
    `

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.Summary, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by email: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	var authors []author.Author
	if found, err := r.cache.Get(ctx, authorListCacheKey, &authors); err == nil && found {
		return authors, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY email ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors = []author.Author{}
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Summary, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read authors: %w", err)
	}

	r.cache.Set(ctx, authorListCacheKey, authors, cacheTTL)

	return authors, nil
}

func (r *postgresRepository) UpdateSummaryByEmail(ctx context.Context, email, summary string) (*author.Author, error) {
	// One UPDATE, atomic per row. When duplicates share the email all of
	// them receive the new summary; the first row comes back to the
	// caller. Last write wins under concurrency.
	query := `
        UPDATE authors
        SET summary = $2, updated_at = NOW()
        WHERE email = $1
        RETURNING ` + authorColumns

	rows, err := r.pool.Query(ctx, query, email, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to update summary: %w", err)
	}
	defer rows.Close()

	var updated *author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Summary, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan updated author: %w", err)
		}
		if updated == nil {
			updated = &a
		}
		r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read updated authors: %w", err)
	}

	if updated == nil {
		return nil, author.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, authorEmailKeyPrefix+email, authorListCacheKey)

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Fetch first so the email cache key can be invalidated too.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id, existing.Email)

	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID, email string) {
	r.cache.Delete(ctx,
		authorCacheKeyPrefix+id.String(),
		authorEmailKeyPrefix+email,
		authorListCacheKey,
	)
}
