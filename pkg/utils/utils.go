package utils

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewTimestampID(t time.Time) int64
}

type utils struct {
	mu     sync.Mutex
	lastID int64
}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewTimestampID returns t in unix milliseconds, bumped past the last value
// handed out so that ids stay unique within the process.
func (u *utils) NewTimestampID(t time.Time) int64 {
	id := t.UnixMilli()

	u.mu.Lock()
	defer u.mu.Unlock()

	if id <= u.lastID {
		id = u.lastID + 1
	}
	u.lastID = id

	return id
}
