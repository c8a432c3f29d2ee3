package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/hemolab/internal/application"
	"github.com/bryanwahyu/hemolab/internal/application/crew"
	domain "github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

// Orchestrator port satisfied by crew.Crew.
type Orchestrator interface {
	Kickoff(ctx context.Context, in crew.Input) (string, error)
}

// Archive port satisfied by storage.Store. Optional.
type Archive interface {
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}

// Service implements the analyze use case.
// Safe for concurrent use; each request owns its temp file and orchestration.
type Service struct {
	Repo    domain.Repository
	Loader  domain.Loader
	Crew    Orchestrator
	Archive Archive // nil disables report archiving
	Clock   application.Clock
	Timeout time.Duration // wall-clock ceiling for one orchestration
}

// AnalyzeCommand describes one accepted upload. FilePath points at the temp
// file the handler already wrote; the service removes it on every exit path.
type AnalyzeCommand struct {
	UserUUID     string
	Query        string
	AnalysisType domain.Type
	FilePath     string
	Filename     string
	FileSize     int64
}

type AnalyzeResult struct {
	RequestID    string `json:"request_id"`
	UserUUID     string `json:"user_uuid"`
	Result       string `json:"result"`
	Degraded     bool   `json:"degraded,omitempty"`
	ProcessingMS int64  `json:"processing_time_ms"`
}

// Analyze runs load → persist request → orchestrate → persist result.
// A persistence failure on the result write is logged, not returned: the LLM
// work is done and the caller still gets it.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error) {
	archived := false
	defer func() {
		if !archived {
			if err := os.Remove(cmd.FilePath); err != nil && !os.IsNotExist(err) {
				log.Printf("temp file cleanup failed path=%s err=%v", cmd.FilePath, err)
			}
		}
	}()

	userUUID := cmd.UserUUID
	if userUUID == "" {
		// anonymous upload: mint an identity the client can reuse
		userUUID = uuid.New().String()
	}

	docText, err := s.Loader.Load(cmd.FilePath)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	req := &domain.Request{
		ID:           domain.RequestID(uuid.New().String()),
		UserUUID:     userUUID,
		Query:        cmd.Query,
		AnalysisType: cmd.AnalysisType,
		Filename:     cmd.Filename,
		FileSize:     cmd.FileSize,
		CreatedAt:    now,
	}
	if err := s.Repo.SaveRequest(ctx, req); err != nil {
		return nil, &domain.PersistenceError{Op: "save request", Err: err}
	}

	octx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	out, err := s.Crew.Kickoff(octx, crew.Input{
		DocumentText: docText,
		Query:        cmd.Query,
		AnalysisType: cmd.AnalysisType,
	})
	degraded := false
	if err != nil {
		if out == "" {
			var oerr *domain.OrchestrationError
			if errors.As(err, &oerr) {
				return nil, err
			}
			return nil, &domain.OrchestrationError{Task: string(cmd.AnalysisType), Err: err}
		}
		// a later task tripped its bounds; serve what completed
		degraded = true
		log.Printf("degraded analysis request=%s type=%s err=%v", req.ID, cmd.AnalysisType, err)
	}
	durationMS := s.Clock.Now().Sub(now).Milliseconds()

	archiveURL := ""
	if s.Archive != nil {
		key := fmt.Sprintf("%s/%s.pdf", userUUID, req.ID)
		url, aerr := s.Archive.UploadAndCleanup(ctx, cmd.FilePath, key)
		if aerr != nil {
			log.Printf("report archive failed request=%s err=%v", req.ID, aerr)
		} else {
			archiveURL = url
			archived = true
		}
	}

	res := &domain.Result{
		RequestID:  req.ID,
		RawText:    out,
		ArchiveURL: archiveURL,
		DurationMS: durationMS,
		CreatedAt:  s.Clock.Now(),
	}
	if err := s.Repo.SaveResult(ctx, res); err != nil {
		log.Printf("result persistence failed request=%s err=%v", req.ID, err)
	}

	return &AnalyzeResult{
		RequestID:    string(req.ID),
		UserUUID:     userUUID,
		Result:       out,
		Degraded:     degraded,
		ProcessingMS: durationMS,
	}, nil
}

// Get returns one stored request with its result.
func (s *Service) Get(ctx context.Context, id domain.RequestID) (*domain.Record, error) {
	return s.Repo.Get(ctx, id)
}

// History returns a user's stored analyses, newest first.
func (s *Service) History(ctx context.Context, userUUID string, limit int) ([]*domain.Record, error) {
	return s.Repo.ListByUser(ctx, userUUID, limit)
}
