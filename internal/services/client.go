package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/shared"
)

var _ SongService = (*Client)(nil)

// APIError is a non-2xx response from the song server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: %d %s", shared.ErrAPIRequest, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// Client talks to the JSON endpoints of a songtable server.
type Client struct {
	api *APIService
}

// NewClient creates a [Client] for the server at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{api: NewAPIService(baseURL, httpClient)}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string { return c.api.BaseURL() }

// ListSongs fetches every song ordered by order. The server falls back to band for unknown keys.
func (c *Client) ListSongs(ctx context.Context, order string) ([]*models.Song, error) {
	path := "/api/songs"
	if order != "" {
		path += "?" + url.Values{"order": {order}}.Encode()
	}

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	songs := []*models.Song{}
	if err := json.Unmarshal(resp.Body, &songs); err != nil {
		return nil, fmt.Errorf("failed to decode songs: %w", err)
	}
	return songs, nil
}

// UploadCSV posts the contents of r as the multipart field "file".
func (c *Client) UploadCSV(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	if r == nil {
		return nil, shared.ErrMissingFile
	}

	body, contentType, err := multipartCSV(filename, r)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.Post(ctx, "/api/songs/upload", body, contentType)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result models.UploadResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload result: %w", err)
	}
	return &result, nil
}

// ClearSongs deletes every song on the server.
func (c *Client) ClearSongs(ctx context.Context) error {
	resp, err := c.api.Delete(ctx, "/api/songs/clear")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// Health reports the server status and song count.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.api.Get(ctx, "/health")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode health: %w", err)
	}
	return &status, nil
}

// multipartCSV encodes r as a single text/csv file part.
func multipartCSV(filename string, r io.Reader) ([]byte, string, error) {
	if filename == "" {
		filename = "songs.csv"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", "text/csv")

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("failed to read CSV: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}

// checkResponse converts a non-2xx response into an [*APIError].
func checkResponse(resp *APIResponse) error {
	if resp.OK() {
		return nil
	}

	msg := strings.TrimSpace(string(resp.Body))
	if m, ok := resp.JSONData.(map[string]any); ok {
		if s, ok := m["error"].(string); ok && s != "" {
			msg = s
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
