package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"mangashelf/pkg/models"
)

// Repo is the sqlite authoring store the published catalog JSON is exported
// from. The page itself never reads it.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert writes items keeping their slice order as the catalog order. Items
// already present keep their original position.
func (r *Repo) Upsert(ctx context.Context, items []models.Item) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) FROM items`).Scan(&next); err != nil {
		return fmt.Errorf("max position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, position, title, code, genres, status, cover, synopsis, rating, url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  code = excluded.code,
		  genres = excluded.genres,
		  status = excluded.status,
		  cover = excluded.cover,
		  synopsis = excluded.synopsis,
		  rating = excluded.rating,
		  url = excluded.url,
		  updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		if it.ID == "" {
			return fmt.Errorf("upsert %q: missing id", it.Title)
		}
		genres := it.Genres
		if genres == nil {
			genres = []string{}
		}
		genresJSON, err := json.Marshal(genres)
		if err != nil {
			return fmt.Errorf("marshal genres for %s: %w", it.ID, err)
		}
		next++
		if _, err := stmt.ExecContext(ctx,
			it.ID.String(),
			next,
			it.Title,
			it.Code,
			string(genresJSON),
			nullString(it.Status),
			nullString(it.Cover),
			nullString(it.Synopsis),
			it.Rating,
			nullString(it.URL),
		); err != nil {
			return fmt.Errorf("upsert %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns every item in catalog order. limit <= 0 means no limit.
func (r *Repo) List(ctx context.Context, limit int) ([]models.Item, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, code, genres, status, cover, synopsis, rating, url
		FROM items
		ORDER BY position, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Get returns nil, nil when the id is unknown.
func (r *Repo) Get(ctx context.Context, id models.ItemID) (*models.Item, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, code, genres, status, cover, synopsis, rating, url
		FROM items
		WHERE id = ?
	`, id.String())
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan get: %w", err)
	}
	return &it, nil
}

func (r *Repo) Delete(ctx context.Context, id models.ItemID) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (models.Item, error) {
	var (
		it         models.Item
		id         string
		genresJSON string
		status     sql.NullString
		cover      sql.NullString
		synopsis   sql.NullString
		url        sql.NullString
	)
	if err := s.Scan(&id, &it.Title, &it.Code, &genresJSON, &status, &cover, &synopsis, &it.Rating, &url); err != nil {
		return models.Item{}, err
	}
	it.ID = models.ItemID(id)
	it.Status = status.String
	it.Cover = cover.String
	it.Synopsis = synopsis.String
	it.URL = url.String

	it.Genres = []string{}
	_ = json.Unmarshal([]byte(genresJSON), &it.Genres)
	return it, nil
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
