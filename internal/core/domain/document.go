package domain

import (
	"errors"
	"time"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentCategory groups stored documents by accounting area.
type DocumentCategory string

const (
	CategoryFiscal    DocumentCategory = "fiscal"
	CategoryContabil  DocumentCategory = "contabil"
	CategoryFolha     DocumentCategory = "folha"
	CategorySocietario DocumentCategory = "societario"
	CategoryOutros    DocumentCategory = "outros"
)

// Document is the metadata record of a stored client file. The file content
// itself lives in the object store under StorageKey; only metadata is kept
// in the database.
type Document struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	ClientID    string           `json:"client_id" bson:"client_id"`
	Name        string           `json:"name" bson:"name"`
	Category    DocumentCategory `json:"category" bson:"category"`
	ContentType string           `json:"content_type" bson:"content_type"`
	SizeBytes   int64            `json:"size_bytes" bson:"size_bytes"`
	StorageKey  string           `json:"-" bson:"storage_key"`
	UploadedBy  string           `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
}
