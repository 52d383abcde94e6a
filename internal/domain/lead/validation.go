package lead

import (
	"fmt"
	"strings"
	"time"

	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/format"
)

// ValidateCreateInput validates fields required to create a lead.
func ValidateCreateInput(req CreateRequest) error {
	if !req.Pipeline.Valid() {
		return fmt.Errorf("%w: unknown pipeline %q", ErrInvalidInput, req.Pipeline)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Data != nil {
		return ValidatePayload(req.Data, req.Pipeline)
	}
	return nil
}

// ValidatePayload checks that p is the variant for kind and that its contact
// fields are well formed. Empty CPF and e-mail are accepted.
func ValidatePayload(p Payload, kind pipeline.Kind) error {
	p = normalizePayload(p)
	if p == nil {
		return fmt.Errorf("%w: missing payload", ErrInvalidInput)
	}
	if p.Kind() != kind {
		return fmt.Errorf("%w: %s payload on %s lead", ErrInvalidInput, p.Kind(), kind)
	}

	var email string
	switch d := p.(type) {
	case CommercialData:
		email = d.Email
		if d.ContactAttempts < 0 || d.ContactAttempts > MaxContactAttempts {
			return fmt.Errorf("%w: contact attempts must be between 0 and %d", ErrInvalidInput, MaxContactAttempts)
		}
	case LegalData:
		email = d.Email
	}

	if cpf := p.TaxID(); cpf != "" && !format.ValidateCPF(cpf) {
		return ErrInvalidTaxID
	}
	if email != "" && !format.ValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

// validateReplacement enforces the invariants a full-record update must keep
// relative to the stored lead.
func validateReplacement(current, next Lead, p pipeline.Pipeline, now time.Time) error {
	if next.ID != current.ID || next.Pipeline != current.Pipeline || !next.CreatedAt.Equal(current.CreatedAt) {
		return ErrImmutableField
	}
	if strings.TrimSpace(next.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := ValidatePayload(next.Data, next.Pipeline); err != nil {
		return err
	}
	if !p.Has(next.PhaseName) {
		return fmt.Errorf("%w: %q", pipeline.ErrUnknownPhase, next.PhaseName)
	}
	if next.PhaseUpdatedAt.After(now) {
		return fmt.Errorf("%w: phase timestamp is in the future", ErrInvalidInput)
	}
	if next.PhaseUpdatedAt.Before(current.PhaseUpdatedAt) {
		return fmt.Errorf("%w: phase timestamp moved backwards", ErrInvalidInput)
	}

	if len(next.History) < len(current.History) {
		return ErrHistoryRewrite
	}
	for i := range current.History {
		if !sameEntry(current.History[i], next.History[i]) {
			return ErrHistoryRewrite
		}
	}
	appended := next.History[len(current.History):]

	// Staying put keeps the open visit untouched.
	if next.PhaseName == current.PhaseName {
		if !next.PhaseUpdatedAt.Equal(current.PhaseUpdatedAt) {
			return fmt.Errorf("%w: phase timestamp changed without a phase change", ErrInvalidInput)
		}
		if len(appended) > 0 {
			return fmt.Errorf("%w: history appended without a phase change", ErrInvalidInput)
		}
		return nil
	}

	// A phase change closes exactly the visit that was open.
	if len(appended) != 1 {
		return fmt.Errorf("%w: phase change must close %q with one history entry", ErrInvalidInput, current.PhaseName)
	}
	closed := appended[0]
	if closed.PhaseName != current.PhaseName ||
		!closed.Timestamp.Equal(current.PhaseUpdatedAt) ||
		closed.Duration != next.PhaseUpdatedAt.Sub(current.PhaseUpdatedAt) {
		return fmt.Errorf("%w: history entry does not match the visit to %q", ErrInvalidInput, current.PhaseName)
	}
	return nil
}

func sameEntry(a, b HistoryEntry) bool {
	return a.PhaseName == b.PhaseName &&
		a.Duration == b.Duration &&
		a.Color == b.Color &&
		a.Timestamp.Equal(b.Timestamp)
}

// normalizePayload turns pointer variants into values so type switches only
// need to handle one form.
func normalizePayload(p Payload) Payload {
	switch d := p.(type) {
	case *CommercialData:
		if d == nil {
			return nil
		}
		return *d
	case *LegalData:
		if d == nil {
			return nil
		}
		return *d
	}
	return p
}

// normalizeContact reformats CPF and phone for display.
func normalizeContact(p Payload) Payload {
	switch d := normalizePayload(p).(type) {
	case CommercialData:
		d.CPF = format.FormatCPF(d.CPF)
		d.Phone = format.FormatPhone(d.Phone)
		return d
	case LegalData:
		d.CPF = format.FormatCPF(d.CPF)
		d.Phone = format.FormatPhone(d.Phone)
		return d
	}
	return p
}
