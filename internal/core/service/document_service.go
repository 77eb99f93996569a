package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// DocumentService stores client files: metadata in the repository, content
// in the object store. The two are written in content-first order so a
// failed upload never leaves a metadata record pointing at nothing.
type DocumentService struct {
	repo       ports.DocumentRepository
	clientRepo ports.ClientRepository
	files      ports.FileStore
	log        zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, clientRepo ports.ClientRepository, files ports.FileStore, log zerolog.Logger) *DocumentService {
	return &DocumentService{repo: repo, clientRepo: clientRepo, files: files, log: log}
}

func (s *DocumentService) Upload(ctx context.Context, input ports.UploadDocumentInput) (*domain.Document, error) {
	if _, err := s.clientRepo.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	key := storageKey(input.ClientID, input.Name)
	if err := s.files.Put(ctx, key, input.Content, input.SizeBytes, input.ContentType); err != nil {
		return nil, fmt.Errorf("store document content: %w", err)
	}

	doc, err := s.repo.Create(ctx, &domain.Document{
		ClientID:    input.ClientID,
		Name:        input.Name,
		Category:    domain.DocumentCategory(input.Category),
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		StorageKey:  key,
		UploadedBy:  input.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		// Metadata write failed: remove the orphaned object.
		if cleanupErr := s.files.Delete(ctx, key); cleanupErr != nil {
			s.log.Warn().Err(cleanupErr).Str("key", key).Msg("failed to clean up orphaned object")
		}
		return nil, err
	}

	s.log.Info().
		Str("document_id", doc.ID).
		Str("client_id", doc.ClientID).
		Int64("size_bytes", doc.SizeBytes).
		Msg("document uploaded")

	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DocumentService) Download(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.files.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open document content: %w", err)
	}
	return doc, content, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("delete document content: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("document_id", id).Msg("document deleted")
	return nil
}

func (s *DocumentService) List(ctx context.Context, filter ports.ListDocumentsFilter) (*ports.ListDocumentsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListDocumentsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// storageKey namespaces objects per client; the uuid prefix keeps repeated
// uploads of the same filename from colliding.
func storageKey(clientID, filename string) string {
	return path.Join("clients", clientID, uuid.NewString()+"-"+filename)
}
