package ingestion

import "errors"

var (
	ErrJobNotFound          = errors.New("intake job not found")
	ErrJobAlreadyProcessing = errors.New("intake job is already processing")
	ErrJobStatusConflict    = errors.New("intake job status does not allow this transition")
	ErrJobLocked            = errors.New("intake job is locked by another run")
	ErrIntegrationNotFound  = errors.New("pos integration not found")
	ErrInvalidJobID         = errors.New("invalid intake job id")
	// ErrParentNotFound marks a create whose parent reference does not resolve. Never skipped per record.
	ErrParentNotFound = errors.New("parent reference not found")
)
