package pipeline

import (
	"fmt"
	"strings"
)

// ValidatePhases checks that a phase list can be installed as a pipeline:
// non-empty, every name present and unique, every color present and SLA
// targets non-negative.
func ValidatePhases(phases []Phase) error {
	if len(phases) == 0 {
		return fmt.Errorf("%w: no phases", ErrInvalidPhases)
	}
	seen := make(map[string]struct{}, len(phases))
	for i, ph := range phases {
		if strings.TrimSpace(ph.Name) == "" {
			return fmt.Errorf("%w: phase %d has no name", ErrInvalidPhases, i)
		}
		if _, dup := seen[ph.Name]; dup {
			return fmt.Errorf("%w: duplicate phase %q", ErrInvalidPhases, ph.Name)
		}
		seen[ph.Name] = struct{}{}
		if strings.TrimSpace(ph.Color) == "" {
			return fmt.Errorf("%w: phase %q has no color", ErrInvalidPhases, ph.Name)
		}
		if ph.SLADays != nil && *ph.SLADays < 0 {
			return fmt.Errorf("%w: phase %q has a negative SLA", ErrInvalidPhases, ph.Name)
		}
	}
	return nil
}
