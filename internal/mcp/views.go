package mcp

import (
	"context"
	"time"

	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/format"
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func pipelineView(p pipeline.Pipeline) PipelineView {
	phases := make([]PhaseView, 0, len(p.Phases))
	for _, ph := range p.Phases {
		phases = append(phases, PhaseView{Name: ph.Name, Color: ph.Color, SLADays: ph.SLADays})
	}
	return PipelineView{Kind: string(p.Kind), Name: p.Name, Phases: phases}
}

func (h *handler) leadView(ctx context.Context, l lead.Lead, p pipeline.Pipeline, now time.Time) LeadView {
	inPhase := lead.TimeInCurrentPhase(l, now)
	color := lead.FallbackPhaseColor
	if ph, ok := p.Phase(l.PhaseName); ok {
		color = ph.Color
	}

	view := LeadView{
		ID:             l.ID,
		Title:          l.Title,
		Pipeline:       string(l.Pipeline),
		Phase:          l.PhaseName,
		PhaseColor:     color,
		Progress:       p.Progress(l.PhaseName),
		CreatedAt:      timestamp(l.CreatedAt),
		PhaseUpdatedAt: timestamp(l.PhaseUpdatedAt),
		TimeInPhase:    format.Duration(inPhase),
		TimeInPhaseMs:  inPhase.Milliseconds(),
		OverSLA:        lead.OverSLA(l, p, now),
		Archived:       l.Archived,
		Data:           dataView(l.Data),
		Tags:           make([]TagView, 0, len(l.Tags)),
		Checklist:      make([]ChecklistView, 0, len(l.Checklist)),
		Notes:          make([]NoteView, 0, len(l.Notes)),
		History:        make([]HistoryView, 0, len(l.History)),
	}
	if person, ok := h.board.Leads.Assignee(ctx, l); ok {
		view.Assignee = &AssigneeView{ID: person.ID, Name: person.Name, Email: person.Email, Role: string(person.Role)}
	}
	for _, t := range l.Tags {
		view.Tags = append(view.Tags, TagView{ID: t.ID, Text: t.Text, Color: t.Color})
	}
	for _, c := range l.Checklist {
		view.Checklist = append(view.Checklist, ChecklistView{ID: c.ID, Text: c.Text, Completed: c.Completed})
	}
	for _, n := range lead.NotesNewestFirst(l) {
		view.Notes = append(view.Notes, NoteView{Author: n.Author, Text: n.Text, Timestamp: timestamp(n.Timestamp), Type: string(n.Kind)})
	}
	for _, e := range lead.HistoryNewestFirst(l) {
		view.History = append(view.History, HistoryView{
			Phase:      e.PhaseName,
			Color:      e.Color,
			EnteredAt:  timestamp(e.Timestamp),
			DurationMs: e.Duration.Milliseconds(),
			Duration:   format.Duration(e.Duration),
		})
	}
	return view
}

func (h *handler) cardView(ctx context.Context, l lead.Lead, p pipeline.Pipeline, now time.Time) CardView {
	inPhase := lead.TimeInCurrentPhase(l, now)
	card := CardView{
		ID:            l.ID,
		Title:         l.Title,
		TaxID:         l.TaxID(),
		TimeInPhase:   format.Duration(inPhase),
		TimeInPhaseMs: inPhase.Milliseconds(),
		OverSLA:       lead.OverSLA(l, p, now),
		Progress:      p.Progress(l.PhaseName),
		Tags:          make([]string, 0, len(l.Tags)),
	}
	if d, ok := l.Data.(lead.CommercialData); ok {
		card.BankSummary = d.BankSummary()
	}
	for _, t := range l.Tags {
		card.Tags = append(card.Tags, t.Text)
	}
	if person, ok := h.board.Leads.Assignee(ctx, l); ok {
		card.Assignee = person.Name
	}
	return card
}

func dataView(p lead.Payload) LeadDataView {
	switch d := p.(type) {
	case lead.CommercialData:
		view := LeadDataView{
			CPF:             d.CPF,
			Email:           d.Email,
			Phone:           d.Phone,
			Source:          d.Source,
			MarketTime:      d.MarketTime,
			HasCertificate:  d.HasCertificate,
			BankSummary:     d.BankSummary(),
			ContactAttempts: d.ContactAttempts,
			ContactSuccess:  d.ContactSuccess,
			TopProducts:     d.TopProducts,
		}
		if d.Jusbrasil != nil {
			view.Jusbrasil = string(*d.Jusbrasil)
		}
		if d.SaleType != nil {
			view.SaleType = string(*d.SaleType)
		}
		if b := d.Banks; b.Pan != nil || b.Daycoval != nil || b.C6 != nil {
			view.Banks = &BanksView{Pan: bankValue(b.Pan), Daycoval: bankValue(b.Daycoval), C6: bankValue(b.C6)}
		}
		return view
	case lead.LegalData:
		return LeadDataView{
			CPF:                d.CPF,
			Email:              d.Email,
			Phone:              d.Phone,
			Source:             d.Source,
			BrokerName:         d.BrokerName,
			TargetBank:         d.TargetBank,
			ProcessDescription: d.ProcessDescription,
		}
	}
	return LeadDataView{}
}

func bankValue(c *lead.BankCheck) string {
	if c == nil {
		return ""
	}
	return string(*c)
}
