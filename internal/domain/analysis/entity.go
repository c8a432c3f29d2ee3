package analysis

import (
	"time"
)

// RequestID tipe untuk AnalysisRequest
type RequestID string

// Type enum: which task chain runs for a request
type Type string

const (
	TypeComprehensive Type = "comprehensive"
	TypeMedical       Type = "medical"
	TypeNutrition     Type = "nutrition"
	TypeExercise      Type = "exercise"
	TypeVerification  Type = "verification"
)

// ValidTypes lists every accepted analysis type, in response-documentation order.
func ValidTypes() []Type {
	return []Type{TypeComprehensive, TypeMedical, TypeNutrition, TypeExercise, TypeVerification}
}

// ParseType validates a raw form value. Empty defaults to comprehensive.
func ParseType(raw string) (Type, error) {
	if raw == "" {
		return TypeComprehensive, nil
	}
	t := Type(raw)
	for _, v := range ValidTypes() {
		if t == v {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "analysis_type", Reason: "unknown analysis type: " + raw}
}

// Aggregate Root: Request. Immutable once created.
type Request struct {
	ID           RequestID `json:"id"`
	UserUUID     string    `json:"user_uuid"`
	Query        string    `json:"query"`
	AnalysisType Type      `json:"analysis_type"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
}

// Result is written once by the orchestrator after the chain completes.
// Exactly one Result per Request.
type Result struct {
	RequestID  RequestID `json:"request_id"`
	RawText    string    `json:"raw_text"`
	ArchiveURL string    `json:"archive_url,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Record pairs a request with its result for retrieval endpoints.
type Record struct {
	Request Request `json:"request"`
	Result  *Result `json:"result,omitempty"`
}
