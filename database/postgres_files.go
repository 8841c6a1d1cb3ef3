package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"askcaira/backend/models"
	"askcaira/backend/utils"
)

// PostgresStore keeps files and chats as rows with JSONB document columns.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

const fileColumns = `id::text, user_id, original_file_name, display_name, upload_date, file_type,
    size, status, mode, row_count, column_count, data_summary, chart_recommendations,
    generated_html, created_at, updated_at`

func (s *PostgresStore) CreateFileRecord(ctx context.Context, rec *models.FileRecord) (string, error) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = utils.NewRecordID()
	}
	if rec.UploadDate.IsZero() {
		rec.UploadDate = now
	}
	rec.CreatedAt, rec.UpdatedAt = now, now

	summary, err := json.Marshal(rec.DataSummary)
	if err != nil {
		return "", fmt.Errorf("encode data summary: %w", err)
	}
	recs, err := json.Marshal(rec.ChartRecommendations)
	if err != nil {
		return "", fmt.Errorf("encode chart recommendations: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        INSERT INTO files (id, user_id, original_file_name, display_name, upload_date, file_type,
            size, status, mode, row_count, column_count, data_summary, chart_recommendations,
            created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::jsonb,$13::jsonb,$14,$15)`,
		rec.ID, rec.UserID, rec.OriginalFileName, rec.DisplayName, rec.UploadDate, rec.FileType,
		rec.Size, rec.Status, rec.Mode, rec.RowCount, rec.ColumnCount, string(summary), string(recs),
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert file: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresStore) GetFile(ctx context.Context, id, userID string) (*models.FileRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := s.pool.QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1 AND user_id = $2`, id, userID)
	f, err := scanFile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *PostgresStore) ListFiles(ctx context.Context, userID string) ([]models.FileRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+fileColumns+` FROM files WHERE user_id = $1 ORDER BY upload_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	out := []models.FileRecord{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteFile(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := s.pool.Exec(ctx, `DELETE FROM files WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFile(row pgx.Row) (*models.FileRecord, error) {
	var (
		f             models.FileRecord
		summary, recs []byte
	)
	err := row.Scan(&f.ID, &f.UserID, &f.OriginalFileName, &f.DisplayName, &f.UploadDate, &f.FileType,
		&f.Size, &f.Status, &f.Mode, &f.RowCount, &f.ColumnCount, &summary, &recs,
		&f.GeneratedHTML, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(summary) > 0 {
		if err := json.Unmarshal(summary, &f.DataSummary); err != nil {
			return nil, fmt.Errorf("decode data summary: %w", err)
		}
	}
	if len(recs) > 0 {
		if err := json.Unmarshal(recs, &f.ChartRecommendations); err != nil {
			return nil, fmt.Errorf("decode chart recommendations: %w", err)
		}
	}
	return &f, nil
}

var _ Store = (*PostgresStore)(nil)
