package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewItemID returns a collision-resistant item id: a UUIDv7 when available,
// else a plain UUIDv4, else the queue-id format.
func NewItemID() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}
	if v4, err := uuid.NewRandom(); err == nil {
		return v4.String()
	}
	return NewQueueID()
}

// NewQueueID returns a locally unique, monotonically distinguishable id for
// outbox entries: unix milliseconds plus a random hex suffix.
func NewQueueID() string {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("%d-%x", time.Now().UnixMilli(), time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
