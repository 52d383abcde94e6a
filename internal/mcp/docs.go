package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `leadboard runs a kanban board of leads for a credit-brokerage team.

Core concepts:
- Pipeline: commercial or legal. Each has an ordered list of phases (name, color, optional SLA in days).
- Lead: a card in exactly one phase of its pipeline, with pipeline-specific data (CPF, contact, bank checks...).
- Phase history: every move closes the visit to the phase being left, recording how long the lead stayed there. History is append-only.

Default workflow:
1) Orient: list_pipelines, then get_board for the pipeline you care about.
2) Read: get_lead for notes (newest first), checklist and history.
3) Act: move_lead / advance_lead to change phase; update_lead for data; add_note, add_tag, add_checklist_item for detail.
4) Measure: time_in_phase for cumulative time spent in a phase.

Notes:
- Moving a lead to the phase it is already in is a no-op, not an error.
- generate_pipeline replaces a whole phase list; leads in removed phases move to the new first phase.
- Set _meta.operator (stdio) or the X-Leadboard-Operator header (HTTP) to sign notes.

Docs:
- leadboard://docs/concepts
- leadboard://docs/commercial-data
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "leadboard://docs/concepts",
		Name:        "docs_concepts",
		Title:       "leadboard concepts",
		Description: "Phases, transitions, history and how time in phase is computed.",
		Content: `# leadboard: Concepts

## Phases and transitions

A lead always sits in one phase of its pipeline. ` + "`move_lead`" + ` to a different phase:

1. appends a history entry for the phase being left: its name, its color, when the visit began and how long it lasted;
2. sets the new phase and the time it was entered;
3. appends a system note "Lead movido de X para Y".

Moving to the current phase does nothing. Moving to a phase that is not in the pipeline fails with UNKNOWN_PHASE.

## Time in phase

` + "`time_in_phase`" + ` adds every closed visit to the phase plus, if the lead is there now, the time since it arrived. Summed over all phases it equals the lead's age.

Durations render as "2d 3h", "4h 12m" or "37m".

## SLA

A phase may carry an advisory SLA in days. Cards whose current visit is longer report over_sla=true. Nothing is enforced.

## Archive vs delete

Archived leads keep their data but leave the board and search. Deleted leads are gone.
`,
	},
	{
		URI:         "leadboard://docs/commercial-data",
		Name:        "docs_commercial_data",
		Title:       "Commercial lead data",
		Description: "Fields of commercial and legal leads and the values they accept.",
		Content: `# Lead data

## Commercial

- cpf: 11 digits, checked with the mod-11 check digits, stored as XXX.XXX.XXX-XX
- phone: stored as (XX) XXXXX-XXXX
- email, source, market_time, top_products: free text
- jusbrasil: "nada encontrado", "OK!" or "Problemas"
- has_certificate: true or false
- banks.pan / banks.daycoval / banks.c6: "Bloqueio Interno" or "Sem bloqueio"
- contact_attempts: 0 to 3; contact_success: true or false
- sale_type: "Loja" or "Home Office"

bank_summary is derived: "Bloqueio" if Daycoval or C6 blocked, "Em Análise" if no bank answered yet, otherwise "Liberado".

Send an empty string to clear a status field.

## Legal

cpf, email, phone, source, broker_name, target_bank, process_description.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
