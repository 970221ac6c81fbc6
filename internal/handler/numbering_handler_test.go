package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

type numberingServiceMock struct {
	reserveResp   *dto.ReservedNumber
	reserveErr    error
	confirmErr    error
	cancelErr     error
	listResp      []models.LetterSequence
	listErr       error
	lastReserve   dto.ReserveNumberRequest
	lastConfirmID string
	lastCancelID  string
	lastFilter    models.SequenceFilter
}

func (m *numberingServiceMock) Reserve(ctx context.Context, req dto.ReserveNumberRequest) (*dto.ReservedNumber, error) {
	m.lastReserve = req
	return m.reserveResp, m.reserveErr
}

func (m *numberingServiceMock) Confirm(ctx context.Context, id string) error {
	m.lastConfirmID = id
	return m.confirmErr
}

func (m *numberingServiceMock) Cancel(ctx context.Context, id string) error {
	m.lastCancelID = id
	return m.cancelErr
}

func (m *numberingServiceMock) List(ctx context.Context, filter models.SequenceFilter) ([]models.LetterSequence, error) {
	m.lastFilter = filter
	return m.listResp, m.listErr
}

func TestNumberingHandlerReserve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &numberingServiceMock{
		reserveResp: &dto.ReservedNumber{ID: "seq-1", Number: "145/0007/03/2025", SequenceNumber: 7},
	}
	handler := NewNumberingHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/letter-numbers/reserve", bytes.NewBufferString(`{"documentTypeId":"umum"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reserve(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "umum", mockSvc.lastReserve.DocumentTypeID)
	assert.Contains(t, w.Body.String(), "145/0007/03/2025")
}

func TestNumberingHandlerReserveInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewNumberingHandler(&numberingServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/letter-numbers/reserve", bytes.NewBufferString(`{"documentTypeId":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reserve(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNumberingHandlerReserveConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &numberingServiceMock{reserveErr: appErrors.ErrDuplicateSequence}
	handler := NewNumberingHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/letter-numbers/reserve", bytes.NewBufferString(`{"documentTypeId":"umum","manualSequence":7}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reserve(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_SEQUENCE")
}

func TestNumberingHandlerConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &numberingServiceMock{}
	handler := NewNumberingHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/letter-numbers/seq-1/confirm", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "seq-1"}}

	handler.Confirm(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "seq-1", mockSvc.lastConfirmID)
}

func TestNumberingHandlerConfirmNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewNumberingHandler(&numberingServiceMock{confirmErr: appErrors.ErrReservationNotFound})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/letter-numbers/gone/confirm", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "gone"}}

	handler.Confirm(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RESERVATION_NOT_FOUND")
}

func TestNumberingHandlerCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &numberingServiceMock{}
	handler := NewNumberingHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/letter-numbers/seq-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "seq-1"}}

	handler.Cancel(c)
	// Gin defers the status write until the body is written or the engine
	// flushes; invoke the flush manually since the handler is called directly.
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "seq-1", mockSvc.lastCancelID)
}

func TestNumberingHandlerListFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &numberingServiceMock{listResp: []models.LetterSequence{{ID: "seq-1"}}}
	handler := NewNumberingHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/letter-numbers?prefix=145&year=2025&status=Reserved", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "145", mockSvc.lastFilter.Prefix)
	assert.Equal(t, 2025, mockSvc.lastFilter.Year)
	assert.Equal(t, models.SequenceStatusReserved, mockSvc.lastFilter.Status)
}

func TestNumberingHandlerListBadYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewNumberingHandler(&numberingServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/letter-numbers?year=abc", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
