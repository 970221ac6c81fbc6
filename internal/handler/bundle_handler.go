package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/pkg/response"
)

type bundleService interface {
	ListBundles(ctx context.Context) ([]dto.BundleSummary, error)
	GetBundle(ctx context.Context, bundleKey string) (*dto.BundleDetail, error)
}

// BundleHandler exposes marriage packet tracking endpoints.
type BundleHandler struct {
	service bundleService
}

// NewBundleHandler constructs the handler.
func NewBundleHandler(service bundleService) *BundleHandler {
	return &BundleHandler{service: service}
}

// List godoc
// @Summary List marriage form packets
// @Tags Bundles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bundles [get]
func (h *BundleHandler) List(c *gin.Context) {
	bundles, err := h.service.ListBundles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundles, nil)
}

// Get godoc
// @Summary Fetch one marriage form packet
// @Tags Bundles
// @Produce json
// @Param key path string true "Bundle key"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bundles/{key} [get]
func (h *BundleHandler) Get(c *gin.Context) {
	bundle, err := h.service.GetBundle(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle, nil)
}
