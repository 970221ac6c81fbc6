package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
)

type letterServiceMock struct {
	saveResp   *models.LetterEntry
	updateResp *models.LetterEntry
	getResp    *models.LetterEntry
	getErr     error
	deleteErr  error
	listResp   []models.LetterEntry
	listErr    error
	lastSave   dto.SaveLetterRequest
	lastQuery  dto.LetterQuery
}

func (m *letterServiceMock) Save(ctx context.Context, req dto.SaveLetterRequest) *models.LetterEntry {
	m.lastSave = req
	return m.saveResp
}

func (m *letterServiceMock) UpdateEntry(ctx context.Context, id string, req dto.SaveLetterRequest) *models.LetterEntry {
	return m.updateResp
}

func (m *letterServiceMock) Get(ctx context.Context, id string) (*models.LetterEntry, error) {
	return m.getResp, m.getErr
}

func (m *letterServiceMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *letterServiceMock) List(ctx context.Context, query dto.LetterQuery) ([]models.LetterEntry, *models.Pagination, error) {
	m.lastQuery = query
	return m.listResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.listResp)}, m.listErr
}

type bundleInvalidatorMock struct {
	called bool
}

func (m *bundleInvalidatorMock) Invalidate(ctx context.Context) { m.called = true }

type exporterMock struct {
	payload []byte
	err     error
}

func (m *exporterMock) RegisterCSV(ctx context.Context, filter models.LetterFilter) ([]byte, error) {
	return m.payload, m.err
}

func TestLetterHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	key := "budi"
	mockSvc := &letterServiceMock{saveResp: &models.LetterEntry{ID: "entry-1", DocumentTypeID: "N1", BundleKey: &key}}
	bundles := &bundleInvalidatorMock{}
	handler := NewLetterHandler(mockSvc, bundles, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"slug":"surat-pengantar-nikah","title":"Pengantar Nikah","data":{"nama_lengkap":"Budi"}}`
	req, _ := http.NewRequest(http.MethodPost, "/letter-entries", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "surat-pengantar-nikah", mockSvc.lastSave.Slug)
	assert.True(t, bundles.called)
}

func TestLetterHandlerCreateNotRecorded(t *testing.T) {
	// An unregistered slug is accepted but not reconciled; the caller still
	// gets a success class status.
	gin.SetMode(gin.TestMode)
	handler := NewLetterHandler(&letterServiceMock{saveResp: nil}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"slug":"surat-misterius","title":"X","data":{}}`
	req, _ := http.NewRequest(http.MethodPost, "/letter-entries", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"recorded":false`)
}

func TestLetterHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewLetterHandler(&letterServiceMock{}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/letter-entries", bytes.NewBufferString(`{"slug":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLetterHandlerUpdateNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewLetterHandler(&letterServiceMock{updateResp: nil}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"slug":"surat-keterangan-umum","title":"X","data":{}}`
	req, _ := http.NewRequest(http.MethodPut, "/letter-entries/gone", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "gone"}}

	handler.Update(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLetterHandlerGetRendersFormDataAsObject(t *testing.T) {
	// Stored JSONB must come back as a JSON object, not a base64 string.
	gin.SetMode(gin.TestMode)
	entry := &models.LetterEntry{
		ID:       "entry-1",
		Slug:     "surat-pengantar-nikah",
		FormData: json.RawMessage(`{"nama_lengkap":"Budi Santoso"}`),
	}
	handler := NewLetterHandler(&letterServiceMock{getResp: entry}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/letter-entries/entry-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "entry-1"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"formData":{"nama_lengkap":"Budi Santoso"}`)
}

func TestLetterHandlerListBindsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &letterServiceMock{listResp: []models.LetterEntry{{ID: "entry-1"}}}
	handler := NewLetterHandler(mockSvc, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/letter-entries?category=nikah&documentTypeId=N1&page=2&limit=10", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nikah", mockSvc.lastQuery.Category)
	assert.Equal(t, "N1", mockSvc.lastQuery.DocumentTypeID)
	assert.Equal(t, 2, mockSvc.lastQuery.Page)
}

func TestLetterHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewLetterHandler(&letterServiceMock{}, nil, &exporterMock{payload: []byte("nomor_surat,tanggal\n")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/letter-entries/export", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "buku-agenda-surat.csv")
}

func TestLetterHandlerExportDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewLetterHandler(&letterServiceMock{}, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/letter-entries/export", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
