package lead

import "errors"

var (
	// ErrLeadNotFound indicates the lead doesn't exist.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrInvalidInput indicates invalid input for lead operations.
	ErrInvalidInput = errors.New("invalid lead input")
	// ErrInvalidTaxID indicates a CPF that fails validation.
	ErrInvalidTaxID = errors.New("invalid CPF")
	// ErrInvalidEmail indicates a malformed e-mail address.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrImmutableField indicates an update touched id, pipeline or createdAt.
	ErrImmutableField = errors.New("immutable lead field changed")
	// ErrHistoryRewrite indicates an update that alters recorded history.
	ErrHistoryRewrite = errors.New("phase history is append-only")
	// ErrTagNotFound indicates the tag doesn't exist on the lead.
	ErrTagNotFound = errors.New("tag not found")
	// ErrChecklistItemNotFound indicates the checklist item doesn't exist.
	ErrChecklistItemNotFound = errors.New("checklist item not found")
)
