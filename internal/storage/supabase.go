package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SupabaseConfig contains configuration for the Supabase storage client.
type SupabaseConfig struct {
	// URL is the project URL, e.g. https://xyz.supabase.co.
	URL string
	// Key is the service or anon API key.
	Key string
	// Bucket is the storage bucket artifacts are uploaded to.
	Bucket string
	// Timeout bounds each upload. Defaults to 30s.
	Timeout time.Duration
}

// SupabaseClient uploads artifacts to Supabase Storage over its REST API.
type SupabaseClient struct {
	baseURL string
	key     string
	bucket  string
	http    *http.Client
}

// NewSupabaseClient creates a new Supabase storage publisher.
func NewSupabaseClient(cfg SupabaseConfig) (*SupabaseClient, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("supabase URL and key must be set")
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "visualizations"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SupabaseClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.Key,
		bucket:  bucket,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Upload stores the file under a unique name in the configured bucket and
// returns its public URL. Metadata, when present, is sent as a header blob.
func (c *SupabaseClient) Upload(ctx context.Context, path string, meta Metadata) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read artifact: %w", err)
	}

	ext := filepath.Ext(path)
	name := uuid.New().String() + ext

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("x-upsert", "true")
	if len(meta) > 0 {
		if blob, err := json.Marshal(meta); err == nil {
			req.Header.Set("x-metadata", string(blob))
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload %s: status %d: %s", filepath.Base(path), resp.StatusCode, body)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, name)
	log.Printf("[storage] uploaded %s -> %s", filepath.Base(path), publicURL)
	return publicURL, nil
}

var _ Publisher = (*SupabaseClient)(nil)
