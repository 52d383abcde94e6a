package pipeline

import (
	"slices"
	"time"
)

// Kind tags which pipeline, and therefore which phase list and payload
// shape, a lead belongs to.
type Kind string

const (
	KindCommercial Kind = "commercial"
	KindLegal      Kind = "legal"
)

// Valid reports whether k is a known pipeline kind.
func (k Kind) Valid() bool {
	return k == KindCommercial || k == KindLegal
}

// Phase is a named stage of a pipeline. The name is the key leads refer to.
type Phase struct {
	Name    string   `json:"name" yaml:"name"`
	Color   string   `json:"color" yaml:"color"`
	SLADays *float64 `json:"slaDays,omitempty" yaml:"sla_days,omitempty"`
}

// SLA returns the advisory target duration for the phase, if one is set.
func (p Phase) SLA() (time.Duration, bool) {
	if p.SLADays == nil {
		return 0, false
	}
	return time.Duration(*p.SLADays * float64(24*time.Hour)), true
}

// Pipeline is an ordered phase list plus the kind of lead it governs.
type Pipeline struct {
	Kind   Kind    `json:"kind"`
	Name   string  `json:"name"`
	Phases []Phase `json:"phases"`
}

// Proposal is a phase list suggested by a generator, not yet installed.
type Proposal struct {
	Name   string  `json:"name,omitempty"`
	Phases []Phase `json:"phases"`
}

// Index returns the position of the named phase, or -1.
func (p Pipeline) Index(name string) int {
	return slices.IndexFunc(p.Phases, func(ph Phase) bool { return ph.Name == name })
}

// Has reports whether the named phase belongs to the pipeline.
func (p Pipeline) Has(name string) bool {
	return p.Index(name) >= 0
}

// Phase looks up a phase by name.
func (p Pipeline) Phase(name string) (Phase, bool) {
	i := p.Index(name)
	if i < 0 {
		return Phase{}, false
	}
	return p.Phases[i], true
}

// First returns the entry phase of the pipeline.
func (p Pipeline) First() (Phase, bool) {
	if len(p.Phases) == 0 {
		return Phase{}, false
	}
	return p.Phases[0], true
}

// Next returns the phase following name. It reports false when name is the
// last phase or is not part of the pipeline.
func (p Pipeline) Next(name string) (Phase, bool) {
	i := p.Index(name)
	if i < 0 || i+1 >= len(p.Phases) {
		return Phase{}, false
	}
	return p.Phases[i+1], true
}

// Progress is the 1-based position of name divided by the phase count, the
// fill ratio of a card's progress bar. Unknown phases yield 0.
func (p Pipeline) Progress(name string) float64 {
	i := p.Index(name)
	if i < 0 {
		return 0
	}
	return float64(i+1) / float64(len(p.Phases))
}

// Clone returns a copy that shares no memory with p.
func (p Pipeline) Clone() Pipeline {
	out := p
	out.Phases = make([]Phase, len(p.Phases))
	for i, ph := range p.Phases {
		if ph.SLADays != nil {
			days := *ph.SLADays
			ph.SLADays = &days
		}
		out.Phases[i] = ph
	}
	return out
}
