// Package assistant talks to the external question-answering service that
// backs the portal's chat panel.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/community-api/internal/config"
	"github.com/gravadigital/community-api/internal/logger"
)

var (
	ErrEmptyQuery    = errors.New("assistant: query is empty")
	ErrNotConfigured = errors.New("assistant: ASSISTANT_URL is not set")
	ErrUpstream      = errors.New("assistant: upstream request failed")
)

// Category tells the chat panel how to render Data
type Category string

const (
	CategoryMembers Category = "members"
	CategoryEvents  Category = "events"
	CategoryOffers  Category = "offers"
	CategoryGeneral Category = "general"
)

// NormalizeCategory maps anything unrecognised to general
func NormalizeCategory(raw string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case CategoryMembers, CategoryEvents, CategoryOffers:
		return c
	default:
		return CategoryGeneral
	}
}

type request struct {
	Query string `json:"query"`
}

// Answer is the assistant's reply. Data is passed through untouched.
type Answer struct {
	Answer   string            `json:"answer"`
	Category Category          `json:"category"`
	Data     []json.RawMessage `json:"data"`
}

// Client posts questions to the assistant endpoint
type Client struct {
	url  string
	http *http.Client
	log  *log.Logger
}

// NewClient creates a client for cfg.Assistant.URL
func NewClient(cfg *config.Config) *Client {
	return NewClientWithHTTP(cfg.Assistant.URL, &http.Client{Timeout: cfg.Assistant.Timeout})
}

// NewClientWithHTTP creates a client with a caller-supplied http.Client
func NewClientWithHTTP(url string, httpClient *http.Client) *Client {
	return &Client{
		url:  strings.TrimSpace(url),
		http: httpClient,
		log:  logger.Client("assistant"),
	}
}

// Configured reports whether an endpoint is set
func (c *Client) Configured() bool {
	return c.url != ""
}

// Ask sends query and decodes the reply
func (c *Client) Ask(ctx context.Context, query string) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(request{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Assistant request failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("Assistant returned an error", "status", resp.StatusCode, "body", string(snippet))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var answer Answer
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&answer); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %w", ErrUpstream, err)
	}

	answer.Category = NormalizeCategory(string(answer.Category))
	if answer.Data == nil {
		answer.Data = []json.RawMessage{}
	}

	c.log.Debug("Assistant answered", "category", answer.Category, "items", len(answer.Data), "duration", time.Since(start))
	return &answer, nil
}
