// Package storage writes rendered reports to durable destinations.
// Supported destinations: a local path (or file://path), s3://bucket/key and
// azblob://container/blob.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile  Backend = "file"
	BackendS3    Backend = "s3"
	BackendAzure Backend = "azblob"
)

// Sink is a destination for one rendered report
type Sink interface {
	// Write stores data, replacing anything already at the destination
	Write(ctx context.Context, data []byte, contentType string) error

	// Location describes where Write puts the data
	Location() string
}

// Destination is a parsed --output value
type Destination struct {
	Backend Backend
	// Container is the bucket or blob container; empty for files
	Container string
	// Path is the object key, blob name or file path
	Path string
}

// ParseDestination splits a destination string into its backend and location
func ParseDestination(dest string) (Destination, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return Destination{}, errors.New(errors.TypeStorage, "destination must not be empty")
	}

	scheme, _, found := strings.Cut(dest, "://")
	if !found {
		return Destination{Backend: BackendFile, Path: dest}, nil
	}

	switch Backend(strings.ToLower(scheme)) {
	case BackendFile:
		path := strings.TrimPrefix(dest, scheme+"://")
		if path == "" {
			return Destination{}, errors.Newf(errors.TypeStorage, "destination %q has no file path", dest)
		}
		return Destination{Backend: BackendFile, Path: path}, nil
	case BackendS3, BackendAzure:
		u, err := url.Parse(dest)
		if err != nil {
			return Destination{}, errors.Storage("invalid destination", err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Destination{}, errors.Newf(errors.TypeStorage, "destination %q needs both a container and an object name", dest)
		}
		return Destination{Backend: Backend(strings.ToLower(scheme)), Container: u.Host, Path: key}, nil
	default:
		return Destination{}, errors.NotSupported(fmt.Sprintf("%s destinations", scheme))
	}
}

// Open creates the sink for a destination string
func Open(ctx context.Context, dest string, cfg config.StorageConfig) (Sink, error) {
	d, err := ParseDestination(dest)
	if err != nil {
		return nil, err
	}

	switch d.Backend {
	case BackendS3:
		return NewS3Sink(ctx, cfg.S3, d.Container, d.Path)
	case BackendAzure:
		return NewBlobSink(cfg.Azure, d.Container, d.Path)
	default:
		return NewFileSink(d.Path), nil
	}
}

// FileSink writes reports to the local filesystem
type FileSink struct {
	path string
}

// NewFileSink creates a file sink
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Location returns the file path
func (s *FileSink) Location() string {
	return s.path
}

// Write writes data to the file, creating parent directories
func (s *FileSink) Write(_ context.Context, data []byte, _ string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Storage("failed to create output directory", err).WithContext("path", s.path)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Storage("failed to write report", err).WithContext("path", s.path)
	}
	return nil
}
