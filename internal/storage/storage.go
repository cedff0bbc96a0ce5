// Package storage publishes run artifacts to an external object store and
// returns their public references.
package storage

import (
	"context"
	"errors"
)

// Metadata is free-form context stored alongside an uploaded artifact.
type Metadata map[string]string

// Publisher uploads one artifact file and returns its public URL.
type Publisher interface {
	Upload(ctx context.Context, path string, meta Metadata) (url string, err error)
}

// ErrUnconfigured is returned by Unconfigured for every upload.
var ErrUnconfigured = errors.New("artifact storage is not configured")

// Unconfigured is a Publisher used when no object store is configured. Every
// upload fails, so code tasks fail their all-or-nothing delivery contract
// cleanly instead of silently dropping artifacts.
type Unconfigured struct{}

// Upload always fails with ErrUnconfigured.
func (Unconfigured) Upload(ctx context.Context, path string, meta Metadata) (string, error) {
	return "", ErrUnconfigured
}
