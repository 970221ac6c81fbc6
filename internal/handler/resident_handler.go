package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
	"github.com/sidesa-dev/sidesa-api/pkg/response"
)

type residentService interface {
	Create(ctx context.Context, req dto.ResidentRequest) (*models.Resident, error)
	Get(ctx context.Context, id string) (*models.Resident, error)
	Update(ctx context.Context, id string, req dto.ResidentRequest) (*models.Resident, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query dto.ResidentQuery) ([]models.Resident, *models.Pagination, error)
}

// ResidentHandler exposes the resident register endpoints.
type ResidentHandler struct {
	service residentService
}

// NewResidentHandler constructs the handler.
func NewResidentHandler(service residentService) *ResidentHandler {
	return &ResidentHandler{service: service}
}

// Create godoc
// @Summary Register a resident
// @Tags Residents
// @Accept json
// @Produce json
// @Param payload body dto.ResidentRequest true "Resident payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /residents [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	var req dto.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid resident payload"))
		return
	}
	resident, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resident, nil)
}

// Get godoc
// @Summary Fetch one resident
// @Tags Residents
// @Produce json
// @Param id path string true "Resident ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [get]
func (h *ResidentHandler) Get(c *gin.Context) {
	resident, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resident, nil)
}

// Update godoc
// @Summary Replace a resident record
// @Tags Residents
// @Accept json
// @Produce json
// @Param id path string true "Resident ID"
// @Param payload body dto.ResidentRequest true "Resident payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	var req dto.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid resident payload"))
		return
	}
	resident, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resident, nil)
}

// Delete godoc
// @Summary Remove a resident
// @Tags Residents
// @Produce json
// @Param id path string true "Resident ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [delete]
func (h *ResidentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List residents
// @Tags Residents
// @Produce json
// @Param search query string false "Name or NIK search"
// @Param rt query string false "RT filter"
// @Param rw query string false "RW filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /residents [get]
func (h *ResidentHandler) List(c *gin.Context) {
	var query dto.ResidentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	residents, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, residents, pagination)
}
