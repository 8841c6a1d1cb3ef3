package services

import (
	"context"
	"errors"
	"strings"

	"askcaira/backend/ai"
	"askcaira/backend/cache"
	"askcaira/backend/database"
	"askcaira/backend/logger"
	"askcaira/backend/models"
)

const (
	testHTML = "<html><body>chart</body></html>"
	testCSV  = "region,sales\nnorth,10\nsouth,4\n"
)

// scripted answers each prompt kind with a fixed reply.
func scripted() ai.GeneratorFunc {
	return func(_ context.Context, p string) (string, error) {
		switch {
		case strings.Contains(p, "recommend 3-5 different chart types"):
			return `{"recommendations":[{"type":"bar","xAxis":"region","yAxis":"sales","title":"Sales by region","insight":"north leads"}]}`, nil
		case strings.Contains(p, "Create interactive HTML charts"):
			return "```html\n" + testHTML + "\n```", nil
		case strings.Contains(p, "**ANALYSIS:**"):
			return "**ANALYSIS:**\nNorth sells more.\n**HTML:**\n```html\n<div>viz</div>\n```", nil
		default:
			return "The dataset has two regions.", nil
		}
	}
}

type fixture struct {
	store  *database.MemoryStore
	upload *UploadService
	chat   *ChatService
	files  *FileService
}

func newFixture(gen ai.Generator) *fixture {
	return newFixtureWithStore(database.NewMemoryStore(), gen)
}

func newFixtureWithStore(store database.Store, gen ai.Generator) *fixture {
	log := logger.NewNop()
	orch := ai.NewOrchestrator(gen, log)
	fc := cache.NopFileCache{}
	f := &fixture{
		upload: NewUploadService(store, orch, fc, log, 10*1024*1024),
		chat:   NewChatService(store, orch, fc, log),
		files:  NewFileService(store, fc, log),
	}
	if ms, ok := store.(*database.MemoryStore); ok {
		f.store = ms
	}
	return f
}

func csvInput(user string) UploadInput {
	return UploadInput{
		UserID:   user,
		FileName: "sales.csv",
		MIMEType: "text/csv",
		Size:     int64(len(testCSV)),
		Content:  []byte(testCSV),
	}
}

// failingChats rejects chat creation and nothing else.
type failingChats struct {
	*database.MemoryStore
}

func (failingChats) CreateChatForFile(context.Context, string, string, string) (string, error) {
	return "", errors.New("chats unavailable")
}

func kindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

var _ database.Store = failingChats{}

// brokenFiles fails every file lookup.
type brokenFiles struct {
	*database.MemoryStore
}

func (brokenFiles) GetFile(context.Context, string, string) (*models.FileRecord, error) {
	return nil, errors.New("connection reset")
}

var _ database.Store = brokenFiles{}
