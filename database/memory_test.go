package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"askcaira/backend/models"
)

func TestSaveOrUpdateChatAppendsBatches(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	m1 := []models.Message{{Type: models.MessageUser, Content: "a"}, {Type: models.MessageAssistant, Content: "b"}}
	m2 := []models.Message{{Type: models.MessageUser, Content: "c"}}

	first, err := s.SaveOrUpdateChat(ctx, "f1", "u1", m1)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := s.SaveOrUpdateChat(ctx, "f1", "u1", m2)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("thread id changed: %s -> %s", first.ID, second.ID)
	}
	var got []string
	for _, m := range second.Messages {
		got = append(got, m.Content)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("messages: got=%v want=[a b c]", got)
	}
	if second.Title != "Data Analysis Chat" {
		t.Fatalf("title: got=%q", second.Title)
	}

	ids := map[string]bool{}
	for _, m := range second.Messages {
		if m.ID == "" || ids[m.ID] {
			t.Fatalf("message id missing or duplicated: %q", m.ID)
		}
		ids[m.ID] = true
		if m.Metadata == nil || m.Timestamp.IsZero() {
			t.Fatalf("defaults not applied: %+v", m)
		}
	}
}

func TestSaveOrUpdateChatConcurrentFirstWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.SaveOrUpdateChat(ctx, "f1", "u1", []models.Message{{Content: "x"}}); err != nil {
				t.Errorf("save: %v", err)
			}
		}()
	}
	wg.Wait()

	c, err := s.GetChatForFile(ctx, "f1", "u1")
	if err != nil || c == nil {
		t.Fatalf("get chat: %v", err)
	}
	if len(c.Messages) != 8 {
		t.Fatalf("messages: got=%d want=8", len(c.Messages))
	}
	if len(s.chats) != 1 {
		t.Fatalf("threads: got=%d want=1", len(s.chats))
	}
}

func TestCreateChatForFileWelcome(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.CreateChatForFile(ctx, "f1", "u1", "welcome!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	html := "<html></html>"
	added, err := s.AddMessageToChat(ctx, id, models.Message{
		Type: models.MessageAssistant, Content: "chart", HasVisualization: true, VisualizationHTML: &html,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	c, _ := s.GetChatForFile(ctx, "f1", "u1")
	if len(c.Messages) != 2 {
		t.Fatalf("messages: got=%d want=2", len(c.Messages))
	}
	w := c.Messages[0]
	if w.ID != "1" || w.Type != models.MessageAssistant || w.Content != "welcome!" || w.HasVisualization {
		t.Fatalf("welcome message: got=%+v", w)
	}
	if c.Title != "Analysis Chat" {
		t.Fatalf("title: got=%q", c.Title)
	}
	if c.Messages[1].ID != added.ID {
		t.Fatalf("appended id: got=%q want=%q", c.Messages[1].ID, added.ID)
	}
	if v := c.LatestVisualization(); v == nil || *v.VisualizationHTML != html {
		t.Fatalf("latest visualization: got=%+v", v)
	}

	if _, err := s.AddMessageToChat(ctx, "missing", models.Message{Content: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing chat: got=%v want=ErrNotFound", err)
	}
}

func TestAddMessageClearsHTMLWithoutFlag(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id, _ := s.CreateChatForFile(ctx, "f1", "u1", "")
	html := "<p>stray</p>"
	m, err := s.AddMessageToChat(ctx, id, models.Message{Content: "x", VisualizationHTML: &html})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.VisualizationHTML != nil {
		t.Fatal("html kept without hasVisualization")
	}
	if m.Type != models.MessageUser {
		t.Fatalf("default type: got=%q", m.Type)
	}
}

func TestUpdateChatMessage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c, _ := s.SaveOrUpdateChat(ctx, "f1", "u1", []models.Message{{ID: "m1", Content: "draft"}, {ID: "m2", Content: "keep"}})

	html := "<div></div>"
	err := s.UpdateChatMessage(ctx, c.ID, "m1", models.MessageUpdate{
		Content: "final", HasVisualization: true, VisualizationHTML: &html,
		Metadata: map[string]any{"k": "v"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetChatForFile(ctx, "f1", "u1")
	m := got.Messages[0]
	if m.Content != "final" || !m.HasVisualization || *m.VisualizationHTML != html || m.Metadata["k"] != "v" {
		t.Fatalf("updated message: got=%+v", m)
	}
	if got.Messages[1].Content != "keep" {
		t.Fatalf("other message changed: %+v", got.Messages[1])
	}
	if err := s.UpdateChatMessage(ctx, c.ID, "nope", models.MessageUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown message: got=%v", err)
	}
}

func TestDeleteFileByNonOwner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id, err := s.CreateFileRecord(ctx, &models.FileRecord{UserID: "owner", OriginalFileName: "a.csv"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteFile(ctx, id, "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-owner delete: got=%v want=ErrNotFound", err)
	}
	if _, err := s.GetFile(ctx, id, "owner"); err != nil {
		t.Fatalf("owner fetch after failed delete: %v", err)
	}
	if _, err := s.GetFile(ctx, id, "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-owner fetch: got=%v", err)
	}
	if err := s.DeleteFile(ctx, id, "owner"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if files, _ := s.ListFiles(ctx, "owner"); len(files) != 0 {
		t.Fatalf("files after delete: got=%d", len(files))
	}
}

func TestListFilesScopedAndEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	files, err := s.ListFiles(ctx, "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Fatalf("want empty non-nil slice, got=%#v", files)
	}
	s.CreateFileRecord(ctx, &models.FileRecord{UserID: "a"})
	s.CreateFileRecord(ctx, &models.FileRecord{UserID: "b"})
	if files, _ := s.ListFiles(ctx, "a"); len(files) != 1 {
		t.Fatalf("scoped list: got=%d want=1", len(files))
	}
}
