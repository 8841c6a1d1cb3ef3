package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the document tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS files (
            id UUID PRIMARY KEY,
            user_id TEXT NOT NULL,
            original_file_name TEXT NOT NULL,
            display_name TEXT NOT NULL,
            upload_date TIMESTAMPTZ NOT NULL,
            file_type TEXT NOT NULL,
            size BIGINT NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            mode TEXT NOT NULL,
            row_count INT NOT NULL DEFAULT 0,
            column_count INT NOT NULL DEFAULT 0,
            data_summary JSONB NOT NULL DEFAULT '{}'::jsonb,
            chart_recommendations JSONB NOT NULL DEFAULT '{}'::jsonb,
            generated_html TEXT NULL, -- legacy, read only
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS files_user_id_idx ON files(user_id, upload_date DESC)`,
		`CREATE TABLE IF NOT EXISTS chats (
            id UUID PRIMARY KEY,
            file_id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            title TEXT NOT NULL,
            messages JSONB NOT NULL DEFAULT '[]'::jsonb,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS chats_file_user_idx ON chats(file_id, user_id)`,
	}

	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
