package ports

import "errors"

// Error kinds shared by all sources, encoders and the orchestrator.
// Concrete failures wrap one of these so callers can branch with errors.Is.
var (
	ErrNotFound     = errors.New("device not found")
	ErrOpen         = errors.New("open failed")
	ErrFrame        = errors.New("frame capture failed")
	ErrRead         = errors.New("read failed")
	ErrWrite        = errors.New("write failed")
	ErrFinalize     = errors.New("finalize failed")
	ErrOrchestrator = errors.New("recording control failed")
)
