package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
	"github.com/sidesa-dev/sidesa-api/pkg/response"
)

type letterService interface {
	Save(ctx context.Context, req dto.SaveLetterRequest) *models.LetterEntry
	UpdateEntry(ctx context.Context, id string, req dto.SaveLetterRequest) *models.LetterEntry
	Get(ctx context.Context, id string) (*models.LetterEntry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query dto.LetterQuery) ([]models.LetterEntry, *models.Pagination, error)
}

type bundleInvalidator interface {
	Invalidate(ctx context.Context)
}

type registerExporter interface {
	RegisterCSV(ctx context.Context, filter models.LetterFilter) ([]byte, error)
}

// LetterHandler exposes the letter register endpoints.
type LetterHandler struct {
	service  letterService
	bundles  bundleInvalidator
	exporter registerExporter
}

// NewLetterHandler constructs the handler. bundles and exporter may be nil.
func NewLetterHandler(service letterService, bundles bundleInvalidator, exporter registerExporter) *LetterHandler {
	return &LetterHandler{service: service, bundles: bundles, exporter: exporter}
}

// Create godoc
// @Summary Record a submitted letter form
// @Tags Letters
// @Accept json
// @Produce json
// @Param payload body dto.SaveLetterRequest true "Form submission"
// @Success 201 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /letter-entries [post]
func (h *LetterHandler) Create(c *gin.Context) {
	var req dto.SaveLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid letter payload"))
		return
	}
	entry := h.service.Save(c.Request.Context(), req)
	if entry == nil {
		// The submission itself succeeded; it just was not reconciled into
		// the register. The caller's flow must not fail because of that.
		response.JSON(c, http.StatusAccepted, gin.H{"recorded": false}, nil)
		return
	}
	h.invalidateBundles(c.Request.Context(), entry)
	response.JSON(c, http.StatusCreated, entry, nil)
}

// Update godoc
// @Summary Correct a register entry
// @Tags Letters
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body dto.SaveLetterRequest true "Corrected form data"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /letter-entries/{id} [put]
func (h *LetterHandler) Update(c *gin.Context) {
	var req dto.SaveLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid letter payload"))
		return
	}
	entry := h.service.UpdateEntry(c.Request.Context(), c.Param("id"), req)
	if entry == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	h.invalidateBundles(c.Request.Context(), entry)
	response.JSON(c, http.StatusOK, entry, nil)
}

// Get godoc
// @Summary Fetch one register entry
// @Tags Letters
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /letter-entries/{id} [get]
func (h *LetterHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Remove a register entry
// @Tags Letters
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /letter-entries/{id} [delete]
func (h *LetterHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	if h.bundles != nil {
		h.bundles.Invalidate(c.Request.Context())
	}
	response.NoContent(c)
}

// List godoc
// @Summary List register entries
// @Tags Letters
// @Produce json
// @Param category query string false "Letter category"
// @Param documentTypeId query string false "Document type"
// @Param bundleKey query string false "Bundle key"
// @Param search query string false "Applicant name or title search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /letter-entries [get]
func (h *LetterHandler) List(c *gin.Context) {
	var query dto.LetterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	entries, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Export godoc
// @Summary Download the letter register as CSV
// @Tags Letters
// @Produce text/csv
// @Param category query string false "Letter category"
// @Param documentTypeId query string false "Document type"
// @Success 200 {string} string "CSV payload"
// @Router /letter-entries/export [get]
func (h *LetterHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export is not enabled"))
		return
	}
	filter := models.LetterFilter{
		Category:       c.Query("category"),
		DocumentTypeID: c.Query("documentTypeId"),
	}
	payload, err := h.exporter.RegisterCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("buku-agenda-surat-%s.csv", c.Query("category"))
	if filter.Category == "" {
		filename = "buku-agenda-surat.csv"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// invalidateBundles drops cached bundle summaries after a write that may
// belong to a marriage packet.
func (h *LetterHandler) invalidateBundles(ctx context.Context, entry *models.LetterEntry) {
	if h.bundles == nil || entry.BundleKey == nil {
		return
	}
	h.bundles.Invalidate(ctx)
}
