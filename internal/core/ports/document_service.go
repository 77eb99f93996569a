package ports

import (
	"context"
	"io"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// UploadDocumentInput carries the metadata and content of a file upload.
type UploadDocumentInput struct {
	ClientID    string
	Name        string
	Category    string
	ContentType string
	SizeBytes   int64
	UploadedBy  string
	Content     io.Reader
}

// ListDocumentsResult is returned by List.
type ListDocumentsResult struct {
	Items      []*domain.Document
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DocumentService stores client files: metadata in the database, content in
// the object store, deleted together.
type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput) (*domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	// Download returns the document metadata and an open reader over its
	// content. The caller closes the reader.
	Download(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListDocumentsFilter) (*ListDocumentsResult, error)
}
