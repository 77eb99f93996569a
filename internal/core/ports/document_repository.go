package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// ListDocumentsFilter carries the query parameters for listing documents.
type ListDocumentsFilter struct {
	ClientID string // optional: scope to one client
	Category string // optional
	Search   string // optional: partial match on file name
	Page     int
	Limit    int
}

// DocumentRepository defines persistence operations for document metadata.
// File content lives in the object store, not here.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListDocumentsFilter) ([]*domain.Document, int64, error)
	Count(ctx context.Context) (int64, error)
}
