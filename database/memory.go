package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"askcaira/backend/models"
	"askcaira/backend/utils"
)

type chatKey struct{ fileID, userID string }

// MemoryStore keeps everything in process. It backs STORE_DRIVER=memory and
// the tests.
type MemoryStore struct {
	mu     sync.RWMutex
	files  map[string]models.FileRecord
	chats  map[string]*models.ChatThread
	byFile map[chatKey]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files:  map[string]models.FileRecord{},
		chats:  map[string]*models.ChatThread{},
		byFile: map[chatKey]string{},
	}
}

func (s *MemoryStore) Close() {}

func (s *MemoryStore) CreateFileRecord(_ context.Context, rec *models.FileRecord) (string, error) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = utils.NewRecordID()
	}
	if rec.UploadDate.IsZero() {
		rec.UploadDate = now
	}
	rec.CreatedAt, rec.UpdatedAt = now, now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[rec.ID] = *rec
	return rec.ID, nil
}

func (s *MemoryStore) GetFile(_ context.Context, id, userID string) (*models.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	if !ok || f.UserID != userID {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (s *MemoryStore) ListFiles(_ context.Context, userID string) ([]models.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.FileRecord{}
	for _, f := range s.files {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

func (s *MemoryStore) DeleteFile(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok || f.UserID != userID {
		return ErrNotFound
	}
	delete(s.files, id)
	return nil
}

func (s *MemoryStore) CreateChatForFile(_ context.Context, fileID, userID, welcome string) (string, error) {
	now := time.Now().UTC()
	c := &models.ChatThread{
		ID:        utils.NewRecordID(),
		FileID:    fileID,
		UserID:    userID,
		Title:     welcomeChatTitle,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if welcome != "" {
		c.Messages = append(c.Messages, welcomeMessage(welcome, now))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[c.ID] = c
	s.byFile[chatKey{fileID, userID}] = c.ID
	return c.ID, nil
}

func (s *MemoryStore) AddMessageToChat(_ context.Context, chatID string, msg models.Message) (*models.Message, error) {
	now := time.Now().UTC()
	msg = normalizeMessage(msg, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = now
	return &msg, nil
}

func (s *MemoryStore) GetChatForFile(_ context.Context, fileID, userID string) (*models.ChatThread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byFile[chatKey{fileID, userID}]
	if !ok {
		return nil, nil
	}
	return copyThread(s.chats[id]), nil
}

func (s *MemoryStore) SaveOrUpdateChat(_ context.Context, fileID, userID string, msgs []models.Message) (*models.ChatThread, error) {
	now := time.Now().UTC()
	msgs = normalizeMessages(msgs, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	key := chatKey{fileID, userID}
	if id, ok := s.byFile[key]; ok {
		c := s.chats[id]
		c.Messages = append(c.Messages, msgs...)
		c.UpdatedAt = now
		return copyThread(c), nil
	}
	c := &models.ChatThread{
		ID:        utils.NewRecordID(),
		FileID:    fileID,
		UserID:    userID,
		Title:     upsertChatTitle,
		Messages:  msgs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.chats[c.ID] = c
	s.byFile[key] = c.ID
	return copyThread(c), nil
}

func (s *MemoryStore) UpdateChatMessage(_ context.Context, chatID, messageID string, upd models.MessageUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	for i := range c.Messages {
		if c.Messages[i].ID == messageID {
			applyUpdate(&c.Messages[i], upd)
			c.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func copyThread(c *models.ChatThread) *models.ChatThread {
	out := *c
	out.Messages = append([]models.Message(nil), c.Messages...)
	if out.Messages == nil {
		out.Messages = []models.Message{}
	}
	return &out
}

var _ Store = (*MemoryStore)(nil)
