// Package googledocs implements export.Exporter against the Google Docs
// and Drive APIs, authenticated with a service account.
package googledocs

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"draftbook-backend/internal/domains/export"
)

type Exporter struct {
	docs  *docs.Service
	drive *drive.Service
}

// NewExporter builds the Docs and Drive clients from raw service-account
// credentials JSON (the GOOGLE_CREDENTIALS env var).
func NewExporter(ctx context.Context, credentialsJSON string) (*Exporter, error) {
	if credentialsJSON == "" {
		return nil, fmt.Errorf("google credentials are not configured")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON),
		docs.DocumentsScope,
		drive.DriveFileScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}

	docsService, err := docs.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Exporter{
		docs:  docsService,
		drive: driveService,
	}, nil
}

// Export creates a new document, inserts the text, shares the file as
// anyone-with-link reader and returns its view URL. Each step reports
// its failure to the caller; none is retried.
func (e *Exporter) Export(ctx context.Context, title, text string) (*export.Document, error) {
	doc, err := e.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: create document: %v", export.ErrUpstream, err)
	}

	// The Docs API rejects empty insertions; an empty draft simply
	// stays an empty document.
	if text != "" {
		_, err = e.docs.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
			Requests: []*docs.Request{
				{
					InsertText: &docs.InsertTextRequest{
						Location: &docs.Location{Index: 1},
						Text:     text,
					},
				},
			},
		}).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("%w: insert text: %v", export.ErrUpstream, err)
		}
	}

	_, err = e.drive.Permissions.Create(doc.DocumentId, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: share document: %v", export.ErrUpstream, err)
	}

	file, err := e.drive.Files.Get(doc.DocumentId).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: fetch view link: %v", export.ErrUpstream, err)
	}

	return &export.Document{
		ID:  doc.DocumentId,
		URL: file.WebViewLink,
	}, nil
}
