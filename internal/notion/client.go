package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL  = "https://api.notion.com/v1"
	DefaultVersion  = "2022-06-28"
	DefaultPageSize = 100
	maxPageSize     = 100
	clientTimeout   = 15 * time.Second
)

// Sort is one entry of a database query's sorts list.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithVersion(v string) ClientOption {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		c.pageSize = n
	}
}

func WithSorts(sorts ...Sort) ClientOption {
	return func(c *Client) { c.sorts = sorts }
}

type Client struct {
	baseURL    string
	version    string
	secret     string
	databaseID string
	pageSize   int
	sorts      []Sort
	httpClient *http.Client
}

func NewClient(secret, databaseID string, hc *http.Client, opts ...ClientOption) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: clientTimeout}
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		version:    DefaultVersion,
		secret:     secret,
		databaseID: databaseID,
		pageSize:   DefaultPageSize,
		sorts: []Sort{
			{Property: "Pinned", Direction: "descending"},
			{Property: "Publish Date", Direction: "descending"},
		},
		httpClient: hc,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) DatabaseID() string { return c.databaseID }

// QueryResult is the first page of a database query.
type QueryResult struct {
	Results    []Record `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

type queryRequest struct {
	PageSize int    `json:"page_size"`
	Sorts    []Sort `json:"sorts,omitempty"`
}

// Query fetches a single bounded page of the configured database. Later pages
// are never requested.
func (c *Client) Query(ctx context.Context) (QueryResult, error) {
	_, body, err := c.query(ctx, c.pageSize)
	if err != nil {
		return QueryResult{}, err
	}
	var qr QueryResult
	if err := json.Unmarshal(body, &qr); err != nil {
		return QueryResult{}, fmt.Errorf("decode notion query response: %w", err)
	}
	return qr, nil
}

// Probe issues a one-row query and reports the upstream status and the number
// of rows returned.
func (c *Client) Probe(ctx context.Context) (int, int, error) {
	status, body, err := c.query(ctx, 1)
	if err != nil {
		return status, 0, err
	}
	var qr struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &qr); err != nil {
		return status, 0, err
	}
	return status, len(qr.Results), nil
}

func (c *Client) query(ctx context.Context, pageSize int) (int, []byte, error) {
	payload, err := json.Marshal(queryRequest{PageSize: pageSize, Sorts: c.sorts})
	if err != nil {
		return 0, nil, err
	}
	u := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
		return resp.StatusCode, nil, newAPIError(resp.StatusCode, b)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read notion response: %w", err)
	}
	return resp.StatusCode, body, nil
}
