// Package drive wraps the Google Drive v3 API for spreadsheet creation,
// folder management and audio file upload.
package drive

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	folderMimeType      = "application/vnd.google-apps.folder"
)

// Client is a thin wrapper around the Drive service.
type Client struct {
	svc *drive.Service
}

// NewClient creates a Drive client using the given token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// CreateSpreadsheet creates an empty spreadsheet document with the given
// name. A non-empty folderID places it inside that folder. Returns the new
// document's ID.
func (c *Client) CreateSpreadsheet(ctx context.Context, name, folderID string) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: spreadsheetMimeType,
	}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	file, err := c.svc.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet '%s': %w", name, err)
	}
	return file.Id, nil
}

// EnsureFolder finds a folder with the given name under parentID, creating
// it if it does not exist. Returns the folder ID.
func (c *Client) EnsureFolder(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf("mimeType='%s' and name='%s' and '%s' in parents and trashed=false",
		folderMimeType, name, parentID)
	list, err := c.svc.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up folder '%s': %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}
	folder, err := c.svc.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder '%s': %w", name, err)
	}
	return folder.Id, nil
}

// UploadFile uploads data as a new file in the given folder and returns its
// shareable web link.
func (c *Client) UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error) {
	meta := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	file, err := c.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload '%s': %w", name, err)
	}
	return file.WebViewLink, nil
}
