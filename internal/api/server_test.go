// internal/api/server_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowyourcompany/internal/common/errors"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/models"
)

type stubService struct {
	insight *models.Insight
	err     error

	lastReq models.CheckRequest
	lastKey string
}

func (s *stubService) GetInsight(ctx context.Context, req models.CheckRequest) (*models.Insight, error) {
	s.lastReq = req
	return s.insight, s.err
}

func (s *stubService) GetByKey(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	s.lastKey = canonicalKey
	return s.insight, s.err
}

func (s *stubService) RefreshInsight(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	s.lastKey = canonicalKey
	return s.insight, s.err
}

func newTestServer(t *testing.T, svc *stubService) http.Handler {
	t.Helper()
	return NewServer(svc, logger.NewTestLogger(t)).Handler()
}

func sampleInsight() *models.Insight {
	return &models.Insight{
		Name:              "Acme Corp",
		CanonicalKey:      "acme corp",
		AuthenticityScore: 72.5,
		RiskTier:          models.RiskMedium,
		Flags:             []string{models.FlagNoGlassdoorPresence},
		Signals:           []models.Signal{},
		ComputedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) CheckCompanyResponse {
	t.Helper()
	var env CheckCompanyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCheckCompany(t *testing.T) {
	svc := &stubService{insight: sampleInsight()}
	handler := newTestServer(t, svc)

	body := `{"name": "Acme Corp", "website": "https://acme.example"}`
	req := httptest.NewRequest(http.MethodPost, "/api/check-company", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, "acme corp", env.Data.CanonicalKey)
	assert.Equal(t, models.RiskMedium, env.Data.RiskTier)

	assert.Equal(t, "Acme Corp", svc.lastReq.Name)
	assert.Equal(t, "https://acme.example", svc.lastReq.Website)
}

func TestCheckCompanyInvalidBody(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"missing name", `{"website": "https://acme.example"}`},
		{"empty name", `{"name": ""}`},
		{"unknown field", `{"name": "Acme", "nope": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/check-company", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestCheckCompanyWhitespaceNameRejected(t *testing.T) {
	svc := &stubService{err: errors.NewInvalidInputError("company name is empty or whitespace-only")}
	handler := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/check-company", strings.NewReader(`{"name": "   "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckCompanyServiceFailure(t *testing.T) {
	svc := &stubService{err: errors.NewPersistenceDegradedError("store", context.DeadlineExceeded)}
	handler := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/check-company", strings.NewReader(`{"name": "Acme"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestGetCompany(t *testing.T) {
	svc := &stubService{insight: sampleInsight()}
	handler := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/company/acme-corp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "acme-corp", svc.lastKey)
}

func TestGetCompanyNotFound(t *testing.T) {
	svc := &stubService{err: errors.NewNotFoundError("nobody")}
	handler := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/company/nobody", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestRefreshCompany(t *testing.T) {
	svc := &stubService{insight: sampleInsight()}
	handler := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/company/acme-corp/refresh", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "acme-corp", svc.lastKey)
}

func TestRefreshCompanyNotFound(t *testing.T) {
	svc := &stubService{err: errors.NewNotFoundError("nobody")}
	handler := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/company/nobody/refresh", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status["status"])
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}
