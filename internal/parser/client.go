// Package parser provides the client for the external resume parsing service.
package parser

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

// Entry is one education or experience item returned by the parser.
// The vendor sends arbitrarily nested objects; only the documented fields
// are decoded, everything else stays in the raw payload.
type Entry struct {
	Name  string   `json:"name"`
	Dates []string `json:"dates"`
}

// Result holds the fields the pipeline knows how to merge, plus the verbatim
// response body for future reprocessing.
type Result struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Education  []Entry  `json:"education"`
	Experience []Entry  `json:"experience"`
	Raw        json.RawMessage
}

// Client posts resume bytes to the parsing service.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a parser client with a hard request timeout. The pipeline
// treats every error from Parse as best-effort: logged and absorbed.
func NewClient(url, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Parse sends the raw artifact bytes to the parsing service and decodes the
// known fields. Non-2xx responses and malformed bodies are returned as errors;
// the caller decides whether they are fatal.
func (c *Client) Parse(ctx context.Context, content []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("build parser request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call parser: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read parser response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("parser returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode parser response: %w", err)
	}
	result.Raw = json.RawMessage(body)
	return &result, nil
}

// FlattenSkills renders the skills list as delimited text.
func (r *Result) FlattenSkills() string {
	return strings.Join(r.Skills, ", ")
}

// FlattenEducation renders education entry names as delimited text.
func (r *Result) FlattenEducation() string {
	names := make([]string, 0, len(r.Education))
	for _, e := range r.Education {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return strings.Join(names, ", ")
}

// FlattenExperience renders experience entries as "Name (start - end)" text.
func (r *Result) FlattenExperience() string {
	items := make([]string, 0, len(r.Experience))
	for _, e := range r.Experience {
		if e.Name == "" {
			continue
		}
		dates := "N/A"
		if len(e.Dates) > 0 {
			dates = strings.Join(e.Dates, " - ")
		}
		items = append(items, fmt.Sprintf("%s (%s)", e.Name, dates))
	}
	return strings.Join(items, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
