// services/upload.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadBytes is the asset size ceiling, enforced before any network call.
const MaxUploadBytes = 5 << 20

var (
	ErrAssetTooLarge = errors.New("image exceeds the 5 MiB limit")
	ErrNotAnImage    = errors.New("asset is not an image")
	ErrNoUploadURL   = errors.New("upload response carried no usable URL")
)

// UploadAsset is a binary image chosen by the operator.
type UploadAsset struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// ImageUploader sends image assets to the remote upload endpoint and returns
// the resulting URL reference.
//
// The documented response contract is {"success": true, "url": "..."}; older
// deployments answer in several other shapes, which urlFromLegacyResponse
// handles as an explicit adapter so the shape-guessing stays contained there.
type ImageUploader struct {
	baseURL    string
	uploadPath string
	httpClient *http.Client
	creds      *CredentialStore
}

func NewImageUploader(baseURL, uploadPath string, creds *CredentialStore) *ImageUploader {
	return &ImageUploader{
		baseURL:    baseURL,
		uploadPath: uploadPath,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		creds:      creds,
	}
}

// Upload validates and uploads one asset, returning its URL reference.
func (u *ImageUploader) Upload(ctx context.Context, asset UploadAsset) (string, error) {
	size := asset.Size
	if size == 0 {
		size = int64(len(asset.Data))
	}
	if size > MaxUploadBytes {
		return "", ErrAssetTooLarge
	}
	if !strings.HasPrefix(asset.ContentType, "image/") {
		return "", ErrNotAnImage
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	name := asset.FileName
	if name == "" {
		name = uuid.New().String()
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(asset.Data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+u.uploadPath, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := u.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("upload image: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload image: status %d: %s", resp.StatusCode, string(raw))
	}

	url, err := urlFromUploadResponse(raw)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// urlFromUploadResponse extracts the URL: documented contract first, legacy
// shapes second.
func urlFromUploadResponse(raw []byte) (string, error) {
	var primary struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &primary); err == nil && primary.URL != "" {
		return primary.URL, nil
	}
	return urlFromLegacyResponse(raw)
}

// urlFromLegacyResponse probes the known legacy shapes in fixed priority
// order: a paths array, a nested images array, nested imageUrl, nested url,
// top-level imageUrl, and finally a bare data string.
func urlFromLegacyResponse(raw []byte) (string, error) {
	var legacy struct {
		Paths    []string        `json:"paths"`
		ImageURL string          `json:"imageUrl"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return "", ErrNoUploadURL
	}

	if len(legacy.Paths) > 0 && legacy.Paths[0] != "" {
		return legacy.Paths[0], nil
	}

	if len(legacy.Data) > 0 {
		var nested struct {
			Images   []string `json:"images"`
			ImageURL string   `json:"imageUrl"`
			URL      string   `json:"url"`
		}
		if err := json.Unmarshal(legacy.Data, &nested); err == nil {
			switch {
			case len(nested.Images) > 0 && nested.Images[0] != "":
				return nested.Images[0], nil
			case nested.ImageURL != "":
				return nested.ImageURL, nil
			case nested.URL != "":
				return nested.URL, nil
			}
		}
	}

	if legacy.ImageURL != "" {
		return legacy.ImageURL, nil
	}

	// Oldest deployments return the path as a bare data string.
	var dataString string
	if len(legacy.Data) > 0 {
		if err := json.Unmarshal(legacy.Data, &dataString); err == nil && dataString != "" {
			return dataString, nil
		}
	}

	return "", ErrNoUploadURL
}
