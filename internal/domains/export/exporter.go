// Package export defines the document-export capability the API exposes.
// The core depends on the Exporter interface only; the Google Docs/Drive
// implementation lives in internal/infrastructure/googledocs.
package export

import (
	"context"
	"errors"
)

// ErrUpstream wraps any failure of the external document provider.
// Reported to the caller, never retried.
var ErrUpstream = errors.New("document provider request failed")

// Document is the exported document as seen by clients: a shareable URL.
type Document struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Exporter turns free text into a shared document and returns its link.
type Exporter interface {
	Export(ctx context.Context, title, text string) (*Document, error)
}
