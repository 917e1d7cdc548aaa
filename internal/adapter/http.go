package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ayutaki/kiroku/internal/config"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/models"
)

type httpServerAdapter struct {
	client *resty.Client
	token  string
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.Address and configures the underlying resty client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.Server, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout.Duration())

	a := &httpServerAdapter{client: client, logger: logger}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", h.token)
	}
	return req
}

// FetchMonth implements [ServerAdapter]. It GETs /items?year=&month= and
// decodes the response into day-records, resolving each record's date from
// its sort key when the server omits a plain date field.
func (h *httpServerAdapter) FetchMonth(ctx context.Context, year, month int) ([]models.DayRecord, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("year", strconv.Itoa(year)).
		SetQueryParam("month", fmt.Sprintf("%02d", month)).
		Get("/items")
	if err != nil {
		return nil, fmt.Errorf("fetch month request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.DayRecord
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode month response: %w", err)
	}

	for i := range records {
		if date := models.DateFromSK(records[i].SK); date != "" {
			records[i].Date = date
		}
	}

	return records, nil
}

// CreateItem implements [ServerAdapter]. It POSTs the pre-encrypted item
// payload to /items.
func (h *httpServerAdapter) CreateItem(ctx context.Context, req CreateItemRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/items")
	if err != nil {
		return fmt.Errorf("create item request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteItem implements [ServerAdapter]. It sends DELETE /items/{id} with
// the date range as query parameters, so the server can clear every
// day-record a multi-day event spans.
func (h *httpServerAdapter) DeleteItem(ctx context.Context, params models.DeleteParams) error {
	req := h.authedRequest(ctx).
		SetPathParam("itemId", params.ItemID).
		SetQueryParam("itemId", params.ItemID)
	if params.Date != "" {
		req.SetQueryParam("date", params.Date)
	}
	if params.StartDate != "" {
		req.SetQueryParam("startDate", params.StartDate)
	}
	if params.EndDate != "" {
		req.SetQueryParam("endDate", params.EndDate)
	}

	resp, err := req.Delete("/items/{itemId}")
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

// Probe reports whether the server answers at all within the given timeout.
// Any HTTP response counts, error statuses included; only transport-level
// failure means offline. Used by the connectivity monitor.
func Probe(address string, timeout time.Duration) func(context.Context) bool {
	client := resty.New().SetBaseURL(address).SetTimeout(timeout)
	return func(ctx context.Context) bool {
		_, err := client.R().SetContext(ctx).Head("/")
		return err == nil
	}
}
