package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/okfy/leadboard/internal/board"
	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/domain/preference"
	"github.com/okfy/leadboard/internal/format"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// handler implements the tools on top of a board.
type handler struct {
	board     *board.Board
	assignees assignee.Directory
}

func parseKind(v string) (pipeline.Kind, error) {
	kind := pipeline.Kind(strings.ToLower(strings.TrimSpace(v)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", pipeline.ErrUnknownPipeline, v)
	}
	return kind, nil
}

// leadResult renders a lead returned by a mutation. The lead service
// reports a vanished lead as (nil, nil); callers of a tool still need to
// hear about it.
func (h *handler) leadResult(ctx context.Context, l *lead.Lead, err error) (*sdkmcp.CallToolResult, LeadResult, error) {
	if err != nil {
		return nil, LeadResult{}, toolError(err)
	}
	if l == nil {
		return nil, LeadResult{}, toolError(lead.ErrLeadNotFound)
	}
	p, err := h.board.Pipelines.Get(ctx, l.Pipeline)
	if err != nil {
		return nil, LeadResult{}, toolError(err)
	}
	return nil, LeadResult{Lead: h.leadView(ctx, *l, *p, h.board.Leads.Now())}, nil
}

func (h *handler) listPipelines(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, PipelinesResult, error) {
	pipelines, err := h.board.Pipelines.List(ctx)
	if err != nil {
		return nil, PipelinesResult{}, toolError(err)
	}
	out := PipelinesResult{Pipelines: make([]PipelineView, 0, len(pipelines))}
	for _, p := range pipelines {
		out.Pipelines = append(out.Pipelines, pipelineView(p))
	}
	return nil, out, nil
}

func (h *handler) getBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetBoardParams) (*sdkmcp.CallToolResult, BoardView, error) {
	kind, err := parseKind(in.Pipeline)
	if err != nil {
		return nil, BoardView{}, toolError(err)
	}
	p, err := h.board.Pipelines.Get(ctx, kind)
	if err != nil {
		return nil, BoardView{}, toolError(err)
	}
	leads, err := h.board.Leads.ActiveView(ctx, kind, in.Query)
	if err != nil {
		return nil, BoardView{}, toolError(err)
	}

	now := h.board.Leads.Now()
	view := BoardView{
		Pipeline:   string(kind),
		Name:       p.Name,
		Theme:      string(h.board.Preferences.Theme()),
		Generating: h.board.Generating(),
		Columns:    make([]ColumnView, 0, len(p.Phases)),
	}
	for _, ph := range p.Phases {
		col := ColumnView{Phase: ph.Name, Color: ph.Color, Leads: []CardView{}}
		for _, l := range leads {
			if l.PhaseName == ph.Name {
				col.Leads = append(col.Leads, h.cardView(ctx, l, *p, now))
			}
		}
		col.Count = len(col.Leads)
		view.Columns = append(view.Columns, col)
	}
	return nil, view, nil
}

func (h *handler) getLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in LeadIDParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.Get(ctx, in.ID)
	return h.leadResult(ctx, l, err)
}

func (h *handler) createLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateLeadParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	kind, err := parseKind(in.Pipeline)
	if err != nil {
		return nil, LeadResult{}, toolError(err)
	}
	data, err := applyInput(lead.NewPayload(kind), in.Data)
	if err != nil {
		return nil, LeadResult{}, toolError(err)
	}
	req := lead.CreateRequest{Pipeline: kind, Title: in.Title, Data: data}
	if in.Assignee != "" {
		req.Assignee = &in.Assignee
	}
	l, err := h.board.Leads.Create(ctx, req)
	return h.leadResult(ctx, l, err)
}

func (h *handler) updateLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateLeadParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	req := lead.UpdateFieldsRequest{
		ID:       in.ID,
		Title:    in.Title,
		Assignee: in.Assignee,
		Log:      in.Log,
		Author:   in.Author,
	}
	if req.Author == "" {
		req.Author = getOperator(ctx)
	}
	if in.Data != nil {
		current, err := h.board.Leads.Get(ctx, in.ID)
		if err != nil {
			return nil, LeadResult{}, toolError(err)
		}
		if req.Data, err = applyInput(current.Data, in.Data); err != nil {
			return nil, LeadResult{}, toolError(err)
		}
	}
	l, err := h.board.Leads.UpdateFields(ctx, req)
	return h.leadResult(ctx, l, err)
}

func (h *handler) moveLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveLeadParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.MoveCard(ctx, in.ID, in.Phase)
	return h.leadResult(ctx, l, err)
}

func (h *handler) advanceLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in LeadIDParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.Advance(ctx, in.ID)
	return h.leadResult(ctx, l, err)
}

func (h *handler) archiveLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in LeadIDParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.Archive(ctx, in.ID)
	return h.leadResult(ctx, l, err)
}

func (h *handler) deleteLead(ctx context.Context, _ *sdkmcp.CallToolRequest, in LeadIDParams) (*sdkmcp.CallToolResult, DeleteResult, error) {
	if err := h.board.Leads.Delete(ctx, in.ID); err != nil {
		return nil, DeleteResult{}, toolError(err)
	}
	return nil, DeleteResult{ID: in.ID, Deleted: true}, nil
}

func (h *handler) addNote(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddNoteParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	author := in.Author
	if author == "" {
		author = getOperator(ctx)
	}
	l, err := h.board.Leads.AddNote(ctx, in.ID, author, in.Text)
	return h.leadResult(ctx, l, err)
}

func (h *handler) addTag(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTagParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.AddTag(ctx, in.ID, in.Text, in.Color)
	return h.leadResult(ctx, l, err)
}

func (h *handler) removeTag(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveTagParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.RemoveTag(ctx, in.ID, in.TagID)
	return h.leadResult(ctx, l, err)
}

func (h *handler) addChecklistItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddChecklistItemParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.AddChecklistItem(ctx, in.ID, in.Text)
	return h.leadResult(ctx, l, err)
}

func (h *handler) toggleChecklistItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in ChecklistItemParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.ToggleChecklistItem(ctx, in.ID, in.ItemID)
	return h.leadResult(ctx, l, err)
}

func (h *handler) removeChecklistItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in ChecklistItemParams) (*sdkmcp.CallToolResult, LeadResult, error) {
	l, err := h.board.Leads.RemoveChecklistItem(ctx, in.ID, in.ItemID)
	return h.leadResult(ctx, l, err)
}

func (h *handler) timeInPhase(ctx context.Context, _ *sdkmcp.CallToolRequest, in TimeInPhaseParams) (*sdkmcp.CallToolResult, TimeInPhaseResult, error) {
	d, err := h.board.Leads.TimeInPhase(ctx, in.ID, in.Phase)
	if err != nil {
		return nil, TimeInPhaseResult{}, toolError(err)
	}
	return nil, TimeInPhaseResult{ID: in.ID, Phase: in.Phase, DurationMs: d.Milliseconds(), Duration: format.Duration(d)}, nil
}

func (h *handler) generatePipeline(ctx context.Context, _ *sdkmcp.CallToolRequest, in GeneratePipelineParams) (*sdkmcp.CallToolResult, GeneratePipelineResult, error) {
	kind, err := parseKind(in.Pipeline)
	if err != nil {
		return nil, GeneratePipelineResult{}, toolError(err)
	}
	gen, err := h.board.GeneratePipeline(ctx, kind, in.Prompt)
	if err != nil {
		return nil, GeneratePipelineResult{}, toolError(err)
	}
	out := GeneratePipelineResult{Pipeline: pipelineView(gen.Pipeline), Rehomed: make([]string, 0, len(gen.Rehomed))}
	for _, l := range gen.Rehomed {
		out.Rehomed = append(out.Rehomed, l.ID)
	}
	return nil, out, nil
}

func (h *handler) getTheme(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ThemeResult, error) {
	return nil, ThemeResult{Theme: string(h.board.Preferences.Theme())}, nil
}

func (h *handler) setTheme(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetThemeParams) (*sdkmcp.CallToolResult, ThemeResult, error) {
	theme, err := h.board.Preferences.Set(ctx, preference.Theme(strings.ToLower(strings.TrimSpace(in.Theme))))
	if err != nil {
		return nil, ThemeResult{}, toolError(err)
	}
	return nil, ThemeResult{Theme: string(theme)}, nil
}

func (h *handler) toggleTheme(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ThemeResult, error) {
	theme, err := h.board.Preferences.Toggle(ctx)
	if err != nil {
		return nil, ThemeResult{}, toolError(err)
	}
	return nil, ThemeResult{Theme: string(theme)}, nil
}

func (h *handler) listAssignees(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, AssigneesResult, error) {
	out := AssigneesResult{Assignees: []AssigneeView{}}
	if h.assignees == nil {
		return nil, out, nil
	}
	people, err := h.assignees.List(ctx)
	if err != nil {
		return nil, AssigneesResult{}, toolError(err)
	}
	for _, p := range people {
		out.Assignees = append(out.Assignees, AssigneeView{ID: p.ID, Name: p.Name, Email: p.Email, Role: string(p.Role)})
	}
	return nil, out, nil
}

func (h *handler) formatContact(_ context.Context, _ *sdkmcp.CallToolRequest, in FormatContactParams) (*sdkmcp.CallToolResult, FormatContactResult, error) {
	return nil, FormatContactResult{
		CPF:      format.FormatCPF(in.CPF),
		CPFValid: format.ValidateCPF(in.CPF),
		Phone:    format.FormatPhone(in.Phone),
	}, nil
}
