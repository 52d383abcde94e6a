package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okfy/leadboard/internal/domain/pipeline"
)

// ParseProposal decodes a model response. Markdown code fences around the
// JSON are tolerated. Phase names and colors are trimmed; whether the list
// can actually be installed is decided by pipeline.ValidatePhases.
func ParseProposal(text string) (pipeline.Proposal, error) {
	body := stripFence(strings.TrimSpace(text))
	if body == "" {
		return pipeline.Proposal{}, ErrEmptyResponse
	}

	var proposal pipeline.Proposal
	if err := json.Unmarshal([]byte(body), &proposal); err != nil {
		return pipeline.Proposal{}, fmt.Errorf("decoding generator response: %w", err)
	}
	if len(proposal.Phases) == 0 {
		return pipeline.Proposal{}, ErrNoPhases
	}

	proposal.Name = strings.TrimSpace(proposal.Name)
	for i := range proposal.Phases {
		proposal.Phases[i].Name = strings.TrimSpace(proposal.Phases[i].Name)
		proposal.Phases[i].Color = strings.TrimSpace(proposal.Phases[i].Color)
	}
	return proposal, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
