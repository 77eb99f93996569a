package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/api/metrics"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// maxUploadBytes caps a single document upload at 50 MiB.
const maxUploadBytes = 50 << 20

type DocumentHandler struct {
	documents ports.DocumentService
}

func NewDocumentHandler(documents ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Upload stores a document for a client. Multipart form fields: file
// (required), client_id (required), category.
//
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "Document content"
// @Param        client_id  formData  string  true   "Owning client id"
// @Param        category   formData  string  false  "Category (fiscal, contabil, trabalhista, societario, outros)"
// @Success      201        {object}  domain.Document
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	clientID := c.FormValue("client_id")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d MiB limit", maxUploadBytes>>20))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	category := c.FormValue("category")
	if category == "" {
		category = "outros"
	}

	doc, err := h.documents.Upload(c.Request().Context(), ports.UploadDocumentInput{
		ClientID:    clientID,
		Name:        fileHeader.Filename,
		Category:    category,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		UploadedBy:  identity.AccountID,
		Content:     file,
	})
	if err != nil {
		return err
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(category).Inc()
	return c.JSON(http.StatusCreated, doc)
}

// Get returns document metadata by id.
//
// @Summary      Get document metadata
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  domain.Document
// @Failure      404  {object}  map[string]string
// @Router       /documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.documents.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Download streams the document content with its original name and type.
//
// @Summary      Download a document
// @Tags         documents
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Document id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /documents/{id}/content [get]
func (h *DocumentHandler) Download(c echo.Context) error {
	doc, content, err := h.documents.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer content.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.Name))
	return c.Stream(http.StatusOK, contentType, content)
}

// Delete removes a document's content and metadata.
//
// @Summary      Delete a document
// @Tags         documents
// @Security     BearerAuth
// @Param        id  path  string  true  "Document id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	if err := h.documents.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns a page of document metadata.
//
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Client filter"
// @Param        category   query     string  false  "Category filter"
// @Param        search     query     string  false  "Partial match on file name"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  paginatedResponse
// @Router       /documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	page, limit := parsePage(c.QueryParam("page"), c.QueryParam("limit"))

	result, err := h.documents.List(c.Request().Context(), ports.ListDocumentsFilter{
		ClientID: c.QueryParam("client_id"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginatedResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
