package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	appanalysis "github.com/bryanwahyu/hemolab/internal/application/analysis"
	domai "github.com/bryanwahyu/hemolab/internal/domain/ai"
	domain "github.com/bryanwahyu/hemolab/internal/domain/analysis"
	"github.com/bryanwahyu/hemolab/internal/middleware"
)

const maxUploadBytes = 32 << 20

type Router struct {
	svc       *appanalysis.Service
	uploadDir string
}

func NewRouter(svc *appanalysis.Service, uploadDir string, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc, uploadDir: uploadDir}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	mux.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Blood Test Report Analyser API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.Get("/analyses/{id}", r.wrap(r.handleGet))
	mux.Get("/users/{uuid}/analyses", r.wrap(r.handleHistory))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain error kinds to HTTP statuses. Internal causes are logged,
// never echoed to the caller.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var verr *domain.ValidationError
		var derr *domain.DocumentError
		var oerr *domain.OrchestrationError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Error(), http.StatusBadRequest)
		case errors.As(err, &derr):
			http.Error(w, derr.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, domai.ErrQuotaExceeded):
			http.Error(w, "llm quota exceeded", http.StatusTooManyRequests)
		case errors.As(err, &oerr):
			log.Printf("orchestration error path=%s err=%v", req.URL.Path, err)
			http.Error(w, "analysis failed, please try again later", http.StatusInternalServerError)
		default:
			log.Printf("internal error path=%s err=%v", req.URL.Path, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// POST /analyze (multipart: file, query, analysis_type, user_uuid)
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "expected multipart form data"}
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return &domain.ValidationError{Field: "file", Reason: "file is required"}
	}
	defer file.Close()

	if err := middleware.ValidateUploadFilename(header.Filename); err != nil {
		return &domain.ValidationError{Field: "file", Reason: err.Error()}
	}

	query := middleware.SanitizeString(req.FormValue("query"))
	if err := middleware.ValidateQuery(query); err != nil {
		return &domain.ValidationError{Field: "query", Reason: err.Error()}
	}

	analysisType, err := domain.ParseType(strings.TrimSpace(req.FormValue("analysis_type")))
	if err != nil {
		return err
	}

	userUUID := strings.TrimSpace(req.FormValue("user_uuid"))
	if err := middleware.ValidateUserUUID(userUUID); err != nil {
		return &domain.ValidationError{Field: "user_uuid", Reason: err.Error()}
	}

	// persist the upload under a unique name to avoid collisions
	tmpPath, size, err := r.saveUpload(file)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath) // backstop; the service removes or archives it

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	res, err := r.svc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		UserUUID:     userUUID,
		Query:        query,
		AnalysisType: analysisType,
		FilePath:     tmpPath,
		Filename:     header.Filename,
		FileSize:     size,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	if res.Degraded {
		middleware.IncrementAnalysesDegraded()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "success",
		"query":              query,
		"analysis_type":      analysisType,
		"result":             res.Result,
		"file_processed":     header.Filename,
		"user_uuid":          res.UserUUID,
		"request_id":         res.RequestID,
		"processing_time_ms": res.ProcessingMS,
		"degraded":           res.Degraded,
	})
	return nil
}

// GET /analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	rec, err := r.svc.Get(req.Context(), domain.RequestID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rec)
	return nil
}

// GET /users/{uuid}/analyses?limit=10
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	userUUID := chi.URLParam(req, "uuid")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.History(req.Context(), userUUID, limit)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"user_uuid": userUUID,
		"analyses":  list,
	})
	return nil
}

func (r *Router) saveUpload(file io.Reader) (string, int64, error) {
	if err := os.MkdirAll(r.uploadDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating upload dir: %w", err)
	}
	path := filepath.Join(r.uploadDir, fmt.Sprintf("blood_test_report_%s.pdf", uuid.New()))
	out, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, file)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("writing temp file: %w", err)
	}
	return path, n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
