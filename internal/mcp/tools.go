package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func boolPtr(v bool) *bool { return &v }

var (
	readOnly    = &sdkmcp.ToolAnnotations{ReadOnlyHint: true}
	idempotent  = &sdkmcp.ToolAnnotations{IdempotentHint: true}
	destructive = &sdkmcp.ToolAnnotations{DestructiveHint: boolPtr(true)}
)

// registerTools adds every board tool to server.
func registerTools(server *sdkmcp.Server, h *handler) {
	// Orientation
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_pipelines",
		Description: "List the pipelines (commercial, legal) with their ordered phases, colors and SLA targets",
		Annotations: readOnly,
	}, h.listPipelines)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get the active (non-archived) leads of a pipeline grouped by phase, optionally filtered by a search query",
		Annotations: readOnly,
	}, h.getBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_lead",
		Description: "Get a lead with its data, tags, checklist, notes and phase history (newest first)",
		Annotations: readOnly,
	}, h.getLead)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "time_in_phase",
		Description: "Total time a lead has spent in a phase across all visits, including the current one",
		Annotations: readOnly,
	}, h.timeInPhase)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_assignees",
		Description: "List the people leads can be assigned to",
		Annotations: readOnly,
	}, h.listAssignees)

	// Lead lifecycle
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_lead",
		Description: "Create a lead in the first phase of a pipeline. CPF and phone are formatted on save",
	}, h.createLead)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_lead",
		Description: "Change a lead's title, data or assignee. Phase changes go through move_lead",
	}, h.updateLead)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_lead",
		Description: "Move a lead to another phase of its pipeline, recording the time spent in the phase it leaves. Moving to the current phase changes nothing",
		Annotations: idempotent,
	}, h.moveLead)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "advance_lead",
		Description: "Move a lead to the next phase of its pipeline; nothing happens at the last phase",
	}, h.advanceLead)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "archive_lead",
		Description: "Hide a lead from the board without deleting it",
		Annotations: idempotent,
	}, h.archiveLead)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_lead",
		Description: "Delete a lead permanently",
		Annotations: destructive,
	}, h.deleteLead)

	// Lead details
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_note",
		Description: "Add a note to a lead's log",
	}, h.addNote)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_tag",
		Description: "Attach a colored label to a lead",
	}, h.addTag)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_tag",
		Description: "Remove a label from a lead",
	}, h.removeTag)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_checklist_item",
		Description: "Add an unchecked item to a lead's checklist",
	}, h.addChecklistItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_checklist_item",
		Description: "Check or uncheck a checklist item",
	}, h.toggleChecklistItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_checklist_item",
		Description: "Remove an item from a lead's checklist",
	}, h.removeChecklistItem)

	// Pipeline design
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_pipeline",
		Description: "Replace a pipeline's phases with ones generated from a description. Leads in removed phases move to the new first phase. On failure nothing changes",
		Annotations: destructive,
	}, h.generatePipeline)

	// Preferences and utilities
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_theme",
		Description: "Get the board color theme",
		Annotations: readOnly,
	}, h.getTheme)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_theme",
		Description: "Set the board color theme (light or dark)",
		Annotations: idempotent,
	}, h.setTheme)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_theme",
		Description: "Switch between the light and dark theme",
	}, h.toggleTheme)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "format_contact",
		Description: "Validate and format a CPF and a phone number without touching any lead",
		Annotations: readOnly,
	}, h.formatContact)
}
