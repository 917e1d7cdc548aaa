package adapter

import (
	"context"

	"github.com/ayutaki/kiroku/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CreateItemRequest is the wire payload for a remote create. Name and
// Content are opaque pre-encrypted strings; the server upserts by id within
// each affected day-record, so resubmitting the same id is safe.
type CreateItemRequest struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Content   string       `json:"content"`
	Tag       []models.Tag `json:"tag"`
	StartTime string       `json:"startTime,omitempty"`
	EndTime   string       `json:"endTime,omitempty"`
	Published string       `json:"published,omitempty"`
}

// ServerAdapter is the client's view of the remote diary API.
type ServerAdapter interface {
	// SetToken stores the bearer token used on all subsequent requests.
	SetToken(token string)
	// Token returns the currently held bearer token.
	Token() string

	// FetchMonth returns the day-records for the given year and month
	// (1-12). Item name/content come back still encrypted.
	FetchMonth(ctx context.Context, year, month int) ([]models.DayRecord, error)

	// CreateItem uploads a new or edited item. Retry-safe: the server
	// upserts by id.
	CreateItem(ctx context.Context, req CreateItemRequest) error

	// DeleteItem removes an item from every day-record in the given range.
	// Returns ErrNotFound (wrapped) when the item is already gone; callers
	// replaying a queue should treat that as success.
	DeleteItem(ctx context.Context, params models.DeleteParams) error
}
