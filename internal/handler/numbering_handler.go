package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
	"github.com/sidesa-dev/sidesa-api/pkg/response"
)

type numberingService interface {
	Reserve(ctx context.Context, req dto.ReserveNumberRequest) (*dto.ReservedNumber, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context, filter models.SequenceFilter) ([]models.LetterSequence, error)
}

// NumberingHandler exposes the official letter numbering ledger.
type NumberingHandler struct {
	service numberingService
}

// NewNumberingHandler constructs the handler.
func NewNumberingHandler(service numberingService) *NumberingHandler {
	return &NumberingHandler{service: service}
}

// Reserve godoc
// @Summary Reserve the next official letter number
// @Tags Numbering
// @Accept json
// @Produce json
// @Param payload body dto.ReserveNumberRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /letter-numbers/reserve [post]
func (h *NumberingHandler) Reserve(c *gin.Context) {
	var req dto.ReserveNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid reservation payload"))
		return
	}
	reserved, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, reserved, nil)
}

// Confirm godoc
// @Summary Confirm a reserved letter number
// @Tags Numbering
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /letter-numbers/{id}/confirm [post]
func (h *NumberingHandler) Confirm(c *gin.Context) {
	if err := h.service.Confirm(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ConfirmNumberResponse{Success: true}, nil)
}

// Cancel godoc
// @Summary Cancel a reserved letter number
// @Tags Numbering
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /letter-numbers/{id} [delete]
func (h *NumberingHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List ledger rows
// @Tags Numbering
// @Produce json
// @Param prefix query string false "Classification prefix"
// @Param year query int false "Calendar year"
// @Param status query string false "reserved or confirmed"
// @Success 200 {object} response.Envelope
// @Router /letter-numbers [get]
func (h *NumberingHandler) List(c *gin.Context) {
	filter := models.SequenceFilter{
		Prefix: strings.TrimSpace(c.Query("prefix")),
	}
	if rawYear := c.Query("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be an integer"))
			return
		}
		filter.Year = year
	}
	if rawStatus := c.Query("status"); rawStatus != "" {
		filter.Status = models.SequenceStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	}
	sequences, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sequences, nil)
}
