package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"askcaira/backend/models"
	"askcaira/backend/utils"
)

const chatColumns = `id::text, file_id, user_id, title, messages, created_at, updated_at`

func (s *PostgresStore) CreateChatForFile(ctx context.Context, fileID, userID, welcome string) (string, error) {
	now := time.Now().UTC()
	msgs := []models.Message{}
	if welcome != "" {
		msgs = append(msgs, welcomeMessage(welcome, now))
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return "", fmt.Errorf("encode messages: %w", err)
	}
	id := utils.NewRecordID()
	_, err = s.pool.Exec(ctx, `
        INSERT INTO chats (id, file_id, user_id, title, messages, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5::jsonb, $6, $6)`,
		id, fileID, userID, welcomeChatTitle, string(raw), now)
	if err != nil {
		return "", fmt.Errorf("insert chat: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) AddMessageToChat(ctx context.Context, chatID string, msg models.Message) (*models.Message, error) {
	if _, err := uuid.Parse(chatID); err != nil {
		return nil, ErrNotFound
	}
	msg = normalizeMessage(msg, time.Now().UTC())
	raw, err := json.Marshal([]models.Message{msg})
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	ct, err := s.pool.Exec(ctx,
		`UPDATE chats SET messages = messages || $1::jsonb, updated_at = now() WHERE id = $2`,
		string(raw), chatID)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &msg, nil
}

func (s *PostgresStore) GetChatForFile(ctx context.Context, fileID, userID string) (*models.ChatThread, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE file_id = $1 AND user_id = $2`, fileID, userID)
	c, err := scanChat(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// SaveOrUpdateChat appends to the thread for (fileID, userID), creating it
// if needed, in one statement. The unique index on (file_id, user_id) makes
// concurrent first writes converge on a single thread.
func (s *PostgresStore) SaveOrUpdateChat(ctx context.Context, fileID, userID string, msgs []models.Message) (*models.ChatThread, error) {
	now := time.Now().UTC()
	raw, err := json.Marshal(normalizeMessages(msgs, now))
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}
	row := s.pool.QueryRow(ctx, `
        INSERT INTO chats (id, file_id, user_id, title, messages, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5::jsonb, $6, $6)
        ON CONFLICT (file_id, user_id) DO UPDATE
        SET messages = chats.messages || EXCLUDED.messages, updated_at = EXCLUDED.updated_at
        RETURNING `+chatColumns,
		utils.NewRecordID(), fileID, userID, upsertChatTitle, string(raw), now)
	c, err := scanChat(row)
	if err != nil {
		return nil, fmt.Errorf("upsert chat: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) UpdateChatMessage(ctx context.Context, chatID, messageID string, upd models.MessageUpdate) error {
	if _, err := uuid.Parse(chatID); err != nil {
		return ErrNotFound
	}
	patch := map[string]any{
		"content":           upd.Content,
		"hasVisualization":  upd.HasVisualization,
		"visualizationHTML": upd.VisualizationHTML,
	}
	if !upd.HasVisualization {
		patch["visualizationHTML"] = nil
	}
	if upd.Metadata != nil {
		patch["metadata"] = upd.Metadata
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	ct, err := s.pool.Exec(ctx, `
        UPDATE chats SET messages = (
            SELECT jsonb_agg(CASE WHEN elem->>'id' = $2::text THEN elem || $3::jsonb ELSE elem END ORDER BY ord)
            FROM jsonb_array_elements(messages) WITH ORDINALITY AS t(elem, ord)
        ), updated_at = now()
        WHERE id = $1 AND messages @> jsonb_build_array(jsonb_build_object('id', $2::text))`,
		chatID, messageID, string(raw))
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanChat(row pgx.Row) (*models.ChatThread, error) {
	var (
		c   models.ChatThread
		raw []byte
	)
	if err := row.Scan(&c.ID, &c.FileID, &c.UserID, &c.Title, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Messages = []models.Message{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.Messages); err != nil {
			return nil, fmt.Errorf("decode messages: %w", err)
		}
	}
	return &c, nil
}
