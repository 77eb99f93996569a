package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

type stubFileStore struct {
	objects map[string][]byte
	putErr  error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{objects: make(map[string][]byte)}
}

func (s *stubFileStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *stubFileStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubFileStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type stubDocumentRepo struct {
	docs      map[string]*domain.Document
	nextID    int
	createErr error
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[string]*domain.Document)}
}

func (r *stubDocumentRepo) Create(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	copy := *doc
	copy.ID = fmt.Sprintf("doc-%d", r.nextID)
	r.docs[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	copy := *doc
	return &copy, nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *stubDocumentRepo) List(_ context.Context, _ ports.ListDocumentsFilter) ([]*domain.Document, int64, error) {
	out := make([]*domain.Document, 0, len(r.docs))
	for _, d := range r.docs {
		copy := *d
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubDocumentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.docs)), nil
}

func TestDocumentService_UploadAndDownload(t *testing.T) {
	docs := newStubDocumentRepo()
	clients := newStubClientRepo()
	files := newStubFileStore()
	client := seedClient(t, clients)
	svc := NewDocumentService(docs, clients, files, zerolog.Nop())

	content := "NF-e 12345 conteúdo"
	doc, err := svc.Upload(context.Background(), ports.UploadDocumentInput{
		ClientID:    client.ID,
		Name:        "nfe-12345.xml",
		Category:    "fiscal",
		ContentType: "application/xml",
		SizeBytes:   int64(len(content)),
		UploadedBy:  "acc-1",
		Content:     strings.NewReader(content),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if len(files.objects) != 1 {
		t.Fatalf("expected one stored object, got %d", len(files.objects))
	}

	meta, reader, err := svc.Download(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer reader.Close()
	data, _ := io.ReadAll(reader)
	if string(data) != content {
		t.Fatalf("content mismatch: %q", data)
	}
	if meta.Name != "nfe-12345.xml" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestDocumentService_Upload_UnknownClient(t *testing.T) {
	svc := NewDocumentService(newStubDocumentRepo(), newStubClientRepo(), newStubFileStore(), zerolog.Nop())

	_, err := svc.Upload(context.Background(), ports.UploadDocumentInput{
		ClientID: "cli-missing",
		Name:     "x.pdf",
		Content:  strings.NewReader("x"),
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestDocumentService_Upload_MetadataFailureCleansObject(t *testing.T) {
	docs := newStubDocumentRepo()
	docs.createErr = errors.New("insert failed")
	clients := newStubClientRepo()
	files := newStubFileStore()
	client := seedClient(t, clients)
	svc := NewDocumentService(docs, clients, files, zerolog.Nop())

	_, err := svc.Upload(context.Background(), ports.UploadDocumentInput{
		ClientID: client.ID,
		Name:     "balancete.pdf",
		Content:  strings.NewReader("pdf"),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(files.objects) != 0 {
		t.Fatalf("orphaned object left behind")
	}
}

func TestDocumentService_Delete_RemovesContentAndMetadata(t *testing.T) {
	docs := newStubDocumentRepo()
	clients := newStubClientRepo()
	files := newStubFileStore()
	client := seedClient(t, clients)
	svc := NewDocumentService(docs, clients, files, zerolog.Nop())

	doc, err := svc.Upload(context.Background(), ports.UploadDocumentInput{
		ClientID: client.ID,
		Name:     "contrato.pdf",
		Content:  strings.NewReader("pdf"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(files.objects) != 0 {
		t.Fatalf("object not removed")
	}
	if _, err := svc.Get(context.Background(), doc.ID); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("metadata not removed: %v", err)
	}
}
