package mcp

import (
	"errors"
	"fmt"

	"github.com/okfy/leadboard/internal/board"
	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/domain/preference"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var errorCodes = []struct {
	target error
	code   string
	hint   string
}{
	{lead.ErrLeadNotFound, "LEAD_NOT_FOUND", "Check the id with get_board"},
	{pipeline.ErrUnknownPhase, "UNKNOWN_PHASE", "Use a phase listed by list_pipelines"},
	{pipeline.ErrUnknownPipeline, "UNKNOWN_PIPELINE", "Use commercial or legal"},
	{lead.ErrInvalidTaxID, "INVALID_CPF", "Send the 11 CPF digits"},
	{lead.ErrInvalidEmail, "INVALID_EMAIL", ""},
	{lead.ErrImmutableField, "IMMUTABLE_FIELD", ""},
	{lead.ErrHistoryRewrite, "HISTORY_REWRITE", ""},
	{lead.ErrTagNotFound, "TAG_NOT_FOUND", "Read the lead to get current tag ids"},
	{lead.ErrChecklistItemNotFound, "CHECKLIST_ITEM_NOT_FOUND", "Read the lead to get current item ids"},
	{assignee.ErrUnknownAssignee, "UNKNOWN_ASSIGNEE", "Use an id from list_assignees"},
	{preference.ErrInvalidTheme, "INVALID_THEME", "Use light or dark"},
	{board.ErrEmptyPrompt, "EMPTY_PROMPT", "Describe the process to model"},
	{board.ErrGenerationFailed, "GENERATION_FAILED", "The board was not changed; try again or rephrase"},
	{lead.ErrInvalidInput, "INVALID_INPUT", ""},
	{pipeline.ErrInvalidPhases, "INVALID_PHASES", ""},
}

// MapError maps domain errors to MCP error codes. Unrecognized errors
// return nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.target) {
			return &APIError{Code: c.code, Message: err.Error(), RecoveryHint: c.hint}
		}
	}
	return nil
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
