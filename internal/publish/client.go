package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkfold/cvpress/internal/models"
)

// Client talks to a running cvpress server over its JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// UploadFile posts the file at path as a multipart upload and returns the
// server's stored-file response.
func (c *Client) UploadFile(ctx context.Context, path string) (*models.UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/uploads", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var uploaded models.UploadResponse
	if err := c.do(req, &uploaded); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	if !uploaded.OK {
		return nil, fmt.Errorf("upload rejected: %s", uploaded.Error)
	}
	return &uploaded, nil
}

// Generate asks the server to build a page from genReq and returns the
// generation response.
func (c *Client) Generate(ctx context.Context, genReq *models.GenerateRequest) (*models.GenerateResponse, error) {
	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var generated models.GenerateResponse
	if err := c.do(req, &generated); err != nil {
		return nil, fmt.Errorf("generate failed: %w", err)
	}
	if !generated.OK {
		return nil, fmt.Errorf("generate rejected: %s", generated.Error)
	}
	return &generated, nil
}

// do executes req and decodes the JSON body into out. Non-2xx statuses with
// a decodable body still decode so callers see the server's error field.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("server returned %d with unreadable body: %w", resp.StatusCode, err)
	}
	return nil
}
