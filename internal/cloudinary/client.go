package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const uploadEndpoint = "https://api.cloudinary.com/v1_1/%s/image/upload"

var ErrNotConfigured = errors.New("cloudinary is not configured")

// Client uploads images through Cloudinary's unsigned upload API and
// returns the public URL of the stored asset.
type Client struct {
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
}

func NewClient(cloudName, uploadPreset string) *Client {
	return &Client{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as multipart form data and returns secure_url.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if c.cloudName == "" || c.uploadPreset == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := w.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf(uploadEndpoint, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed uploadResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("unexpected upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("upload failed: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	if parsed.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}
	return parsed.SecureURL, nil
}
