package board

import "errors"

var (
	// ErrEmptyPrompt indicates a generation request without a description.
	ErrEmptyPrompt = errors.New("prompt is required")
	// ErrGenerationFailed indicates the generator failed or proposed an
	// unusable phase list. The board is left unchanged.
	ErrGenerationFailed = errors.New("pipeline generation failed")
)
