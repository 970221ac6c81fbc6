package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

type bundleServiceMock struct {
	listResp []dto.BundleSummary
	listErr  error
	getResp  *dto.BundleDetail
	getErr   error
	lastKey  string
}

func (m *bundleServiceMock) ListBundles(ctx context.Context) ([]dto.BundleSummary, error) {
	return m.listResp, m.listErr
}

func (m *bundleServiceMock) GetBundle(ctx context.Context, bundleKey string) (*dto.BundleDetail, error) {
	m.lastKey = bundleKey
	return m.getResp, m.getErr
}

func TestBundleHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &bundleServiceMock{listResp: []dto.BundleSummary{
		{BundleKey: "budi", Missing: []string{"N5", "N6"}},
	}}
	handler := NewBundleHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/bundles", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bundleKey":"budi"`)
	assert.Contains(t, w.Body.String(), `"missing":["N5","N6"]`)
}

func TestBundleHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &bundleServiceMock{getResp: &dto.BundleDetail{BundleKey: "budi"}}
	handler := NewBundleHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/bundles/budi", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "key", Value: "budi"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "budi", mockSvc.lastKey)
}

func TestBundleHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBundleHandler(&bundleServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "bundle not found")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/bundles/tidak-ada", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "key", Value: "tidak-ada"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
