package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/bryanwahyu/hemolab/internal/application/analysis"
	"github.com/bryanwahyu/hemolab/internal/application/crew"
	domain "github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

type memRepo struct {
	requests []*domain.Request
	results  []*domain.Result
}

func (m *memRepo) SaveRequest(ctx context.Context, r *domain.Request) error {
	m.requests = append(m.requests, r)
	return nil
}

func (m *memRepo) SaveResult(ctx context.Context, res *domain.Result) error {
	m.results = append(m.results, res)
	return nil
}

func (m *memRepo) Get(ctx context.Context, id domain.RequestID) (*domain.Record, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return &domain.Record{Request: *r}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) ListByUser(ctx context.Context, userUUID string, limit int) ([]*domain.Record, error) {
	var out []*domain.Record
	for _, r := range m.requests {
		if r.UserUUID == userUUID {
			out = append(out, &domain.Record{Request: *r})
		}
	}
	return out, nil
}

type stubLoader struct{ text string }

func (s stubLoader) Load(path string) (string, error) { return s.text, nil }

type stubCrew struct {
	out  string
	err  error
	last crew.Input
}

func (s *stubCrew) Kickoff(ctx context.Context, in crew.Input) (string, error) {
	s.last = in
	return s.out, s.err
}

type frozenClock struct{}

func (frozenClock) Now() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func newTestServer(t *testing.T, repo *memRepo, cr *stubCrew) (http.Handler, string) {
	t.Helper()
	uploadDir := t.TempDir()
	svc := &appanalysis.Service{
		Repo:   repo,
		Loader: stubLoader{text: "Hemoglobin 14.2 g/dL"},
		Crew:   cr,
		Clock:  frozenClock{},
	}
	return NewRouter(svc, uploadDir, nil), uploadDir
}

func multipartBody(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 fake report"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestRootEndpoint(t *testing.T) {
	h, _ := newTestServer(t, &memRepo{}, &stubCrew{out: "ok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Blood Test Report Analyser API is running", got["message"])
	assert.Equal(t, "healthy", got["status"])
}

func TestAnalyzeSuccess(t *testing.T) {
	repo := &memRepo{}
	cr := &stubCrew{out: "all markers within range"}
	h, uploadDir := newTestServer(t, repo, cr)

	body, ctype := multipartBody(t, "report.pdf", map[string]string{
		"query":         "Summarise my blood test",
		"analysis_type": "medical",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "all markers within range", got["result"])
	assert.Equal(t, "report.pdf", got["file_processed"])
	assert.NotEmpty(t, got["user_uuid"])
	assert.NotEmpty(t, got["request_id"])

	assert.Equal(t, "Hemoglobin 14.2 g/dL", cr.last.DocumentText)
	require.Len(t, repo.requests, 1)
	require.Len(t, repo.results, 1)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload dir should be empty after the request")
}

func TestAnalyzeDefaultsToComprehensive(t *testing.T) {
	repo := &memRepo{}
	cr := &stubCrew{out: "ok"}
	h, _ := newTestServer(t, repo, cr)

	body, ctype := multipartBody(t, "report.pdf", map[string]string{
		"query": "What do my results mean?",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TypeComprehensive, cr.last.AnalysisType)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	repo := &memRepo{}
	h, _ := newTestServer(t, repo, &stubCrew{out: "ok"})

	cases := []struct {
		name     string
		filename string
		fields   map[string]string
	}{
		{"missing file", "", map[string]string{"query": "q"}},
		{"non pdf extension", "report.txt", map[string]string{"query": "q"}},
		{"empty query", "report.pdf", map[string]string{"query": "   "}},
		{"unknown analysis type", "report.pdf", map[string]string{"query": "q", "analysis_type": "surgical"}},
		{"malformed user uuid", "report.pdf", map[string]string{"query": "q", "user_uuid": "not-a-uuid"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ctype := multipartBody(t, tc.filename, tc.fields)
			req := httptest.NewRequest(http.MethodPost, "/analyze", body)
			req.Header.Set("Content-Type", ctype)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, repo.requests, "rejected requests must not be persisted")
}

func TestAnalyzeOrchestrationFailure(t *testing.T) {
	cr := &stubCrew{err: &domain.OrchestrationError{Task: "medical_analysis", Err: io.ErrUnexpectedEOF}}
	h, _ := newTestServer(t, &memRepo{}, cr)

	body, ctype := multipartBody(t, "report.pdf", map[string]string{"query": "q", "analysis_type": "medical"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "unexpected EOF", "internal causes are not echoed")
}

func TestGetAnalysis(t *testing.T) {
	repo := &memRepo{}
	h, _ := newTestServer(t, repo, &stubCrew{out: "findings"})

	body, ctype := multipartBody(t, "report.pdf", map[string]string{"query": "q", "analysis_type": "medical"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["request_id"].(string)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses/"+id, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHistory(t *testing.T) {
	repo := &memRepo{}
	h, _ := newTestServer(t, repo, &stubCrew{out: "findings"})
	userUUID := "6f1e0f33-8b6e-4d05-8f2e-cf2a87a3a111"

	for i := 0; i < 2; i++ {
		body, ctype := multipartBody(t, "report.pdf", map[string]string{
			"query": "q", "analysis_type": "medical", "user_uuid": userUUID,
		})
		req := httptest.NewRequest(http.MethodPost, "/analyze", body)
		req.Header.Set("Content-Type", ctype)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+userUUID+"/analyses", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Status   string            `json:"status"`
		UserUUID string            `json:"user_uuid"`
		Analyses []json.RawMessage `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, userUUID, got.UserUUID)
	assert.Len(t, got.Analyses, 2)
}
