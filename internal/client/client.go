// Package client provides an HTTP client for the nucamp JSON API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
)

// Client is an HTTP client for the nucamp API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ShowResponse is the response from GET /api/campsites/{id}.
type ShowResponse struct {
	Campsite *campsite.Campsite `json:"campsite"`
	Comments []*comment.Comment `json:"comments"`
}

// Error is a non-2xx API response. Fields is set when the server rejected
// individual comment fields.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], ", ")))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// ListCampsites returns all campsites, or only featured ones.
func (c *Client) ListCampsites(featuredOnly bool) ([]*campsite.Campsite, error) {
	path := "/api/campsites"
	if featuredOnly {
		path += "?featured=true"
	}

	var campsites []*campsite.Campsite
	if err := c.get(path, &campsites); err != nil {
		return nil, err
	}
	return campsites, nil
}

// GetCampsite returns a campsite with its comments.
func (c *Client) GetCampsite(id int64) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get(fmt.Sprintf("/api/campsites/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListComments returns the comments of a campsite in the order they were added.
func (c *Client) ListComments(id int64) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := c.get(fmt.Sprintf("/api/campsites/%d/comments", id), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment to a campsite.
func (c *Client) AddComment(id int64, rating int, author, text string) (*comment.Comment, error) {
	body := map[string]interface{}{
		"rating": rating,
		"author": author,
		"text":   text,
	}
	var comm comment.Comment
	if err := c.post(fmt.Sprintf("/api/campsites/%d/comments", id), body, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp struct {
			Error  string              `json:"error"`
			Fields map[string][]string `json:"fields"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Fields = errResp.Fields
		} else {
			apiErr.Message = fmt.Sprintf("server error: %s", http.StatusText(resp.StatusCode))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
