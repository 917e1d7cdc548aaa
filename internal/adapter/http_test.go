package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayutaki/kiroku/internal/config"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) ServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(config.Server{
		Address:        srv.URL,
		Token:          "test-token",
		RequestTimeout: config.Duration(5 * time.Second),
	}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL(" api.example.com ")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", got)

	got, err = normalizeBaseURL("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	_, err = normalizeBaseURL("")
	assert.Error(t, err)
}

func TestFetchMonth_ResolvesDateFromSK(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		assert.Equal(t, "06", r.URL.Query().Get("month"))
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]models.DayRecord{
			{SK: "DATE#2025-06-01", OrderedItems: []models.Item{{ID: "a"}}},
			{Date: "2025-06-02", OrderedItems: []models.Item{{ID: "b"}}},
		})
	}))

	records, err := a.FetchMonth(context.Background(), 2025, 6)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-01", records[0].Date)
	assert.Equal(t, "2025-06-02", records[1].Date)
}

func TestCreateItem_PostsPayload(t *testing.T) {
	var got CreateItemRequest
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	req := CreateItemRequest{
		ID:      "item-1",
		Name:    "enc:v1:s:i:d",
		Content: "enc:v1:s:i:c",
		Tag:     []models.Tag{{Type: "Hashtag", Name: "#日記"}},
	}
	require.NoError(t, a.CreateItem(context.Background(), req))
	assert.Equal(t, req, got)
}

func TestDeleteItem_QueryParams(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/items/item-1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "item-1", q.Get("itemId"))
		assert.Equal(t, "2025-06-01", q.Get("date"))
		assert.Equal(t, "2025-06-01", q.Get("startDate"))
		assert.Equal(t, "2025-06-03", q.Get("endDate"))
	}))

	err := a.DeleteItem(context.Background(), models.DeleteParams{
		ItemID:    "item-1",
		Date:      "2025-06-01",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
	})
	require.NoError(t, err)
}

func TestDeleteItem_NotFound(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such item", http.StatusNotFound)
	}))

	err := a.DeleteItem(context.Background(), models.DeleteParams{ItemID: "gone", Date: "2025-06-01"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := a.FetchMonth(context.Background(), 2025, 6)
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden) // any response means reachable
	}))
	t.Cleanup(srv.Close)

	probe := Probe(srv.URL, time.Second)
	assert.True(t, probe(context.Background()))

	srv.Close()
	assert.False(t, probe(context.Background()))
}
