package pipeline

import "errors"

var (
	// ErrUnknownPipeline indicates no pipeline is configured for the kind.
	ErrUnknownPipeline = errors.New("unknown pipeline")
	// ErrUnknownPhase indicates the phase is not part of the pipeline.
	ErrUnknownPhase = errors.New("unknown phase")
	// ErrInvalidPhases indicates a phase list that cannot be installed.
	ErrInvalidPhases = errors.New("invalid phase list")
)
