package ai

import "errors"

// ErrQuotaExceeded indicates the LLM provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("llm quota exceeded")

// ErrRateLimited indicates the local per-agent request budget ran out before the provider was called.
var ErrRateLimited = errors.New("agent rate limit exhausted")
