package utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewMessageID returns a millisecond timestamp id, bumped past the previous
// one so ids handed out by this process never repeat.
func NewMessageID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

// NewRecordID returns the id for file and chat documents.
func NewRecordID() string {
	return uuid.NewString()
}
