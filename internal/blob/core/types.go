// Package core defines the contract shared by the evidence blob backends.
// Evidence files (receipts, photos, warranties, appraisals) are stored under
// keys derived from the claim graph, e.g.
// claims/12/items/48/docs/receipt.pdf, and documentation records keep the
// key so the backend can be swapped without touching rows.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete evidence storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory, the development default
	DriverS3         Driver = "s3"     // S3 / MinIO compatible bucket
	DriverMemory     Driver = "memory" // process-local, for tests
)

// PutOptions carries the optional attributes recorded with an upload.
type PutOptions struct {
	// ContentType is the MIME type reported back on download, e.g.
	// "application/pdf" for a receipt scan.
	ContentType string
	// Metadata is a small flat key-value set stored with the blob; the
	// service records the uploading user id here.
	Metadata map[string]string
}

// SignedURLOptions parameterizes PresignURL.
type SignedURLOptions struct {
	Method  string        // GET|PUT; only GET is used by the service
	Expiry  time.Duration // default 15m
	Headers map[string]string
}

// Info describes one stored evidence file.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	URL          string            `json:"url,omitempty"`
}

// Store is the S3-shaped surface the claim service uploads evidence through.
// Put is create-only: writing an existing key fails rather than silently
// replacing someone's receipt. List returns keys in ascending order, so a
// claims/<id>/ prefix walks one claim's evidence in a stable order.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	PresignURL(ctx context.Context, key string, opts SignedURLOptions) (string, error)
	Driver() Driver
}

// ErrUnsupported is returned for capabilities a backend does not offer, such
// as presigned URLs from the in-memory store.
var ErrUnsupported = errors.New("blobstore: unsupported operation")
