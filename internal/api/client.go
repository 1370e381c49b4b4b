package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/models"
)

// maxErrorBody caps how much of a failed response is read when looking for a message.
const maxErrorBody = 64 << 10

// Client talks to the HAE backend. The zero value is not usable; use New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for baseURL. timeout bounds every call on top of the
// caller's context.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) CreateHae(ctx context.Context, p models.HaePayload) error {
	return c.do(ctx, http.MethodPost, "/hae/create", p, nil)
}

func (c *Client) UpdateHae(ctx context.Context, id string, p models.HaePayload) error {
	return c.do(ctx, http.MethodPut, "/hae/update/"+url.PathEscape(id), p, nil)
}

func (c *Client) GetHaesByProfessorID(ctx context.Context, employeeID string) ([]models.HaeRecord, error) {
	var out []models.HaeRecord
	if err := c.do(ctx, http.MethodGet, "/hae/getHaesByProfessor/"+url.PathEscape(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetHaeByID(ctx context.Context, id string) (models.HaeDetail, error) {
	var out models.HaeDetail
	if err := c.do(ctx, http.MethodGet, "/hae/getHaeById/"+url.PathEscape(id), nil, &out); err != nil {
		return models.HaeDetail{}, err
	}
	return out, nil
}

func (c *Client) RequestClosure(ctx context.Context, id string, closure models.ClosureDraft) error {
	return c.do(ctx, http.MethodPost, "/hae/request-closure/"+url.PathEscape(id), closure, nil)
}

// GetProfessorByEmail resolves the signed-in professor.
func (c *Client) GetProfessorByEmail(ctx context.Context, email string) (models.Employee, error) {
	var out models.Employee
	path := "/employee/get-professor?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return models.Employee{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(constants.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		logger.Error("Request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	logger.Debug("Request completed",
		"method", method,
		"path", path,
		"status", res.StatusCode,
		"request_id", requestID,
		"latency", time.Since(start),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
