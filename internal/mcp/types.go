package mcp

// Tool inputs. Fields without omitempty are required by the generated schema.

type GetBoardParams struct {
	Pipeline string `json:"pipeline" jsonschema:"pipeline kind: commercial or legal"`
	Query    string `json:"query,omitempty" jsonschema:"case-insensitive match on title, CPF or id"`
}

type LeadIDParams struct {
	ID string `json:"id" jsonschema:"lead id"`
}

type CreateLeadParams struct {
	Pipeline string     `json:"pipeline" jsonschema:"pipeline kind: commercial or legal"`
	Title    string     `json:"title" jsonschema:"lead display name"`
	Data     *LeadInput `json:"data,omitempty"`
	Assignee string     `json:"assignee,omitempty" jsonschema:"assignee id from list_assignees"`
}

type UpdateLeadParams struct {
	ID       string     `json:"id"`
	Title    *string    `json:"title,omitempty"`
	Data     *LeadInput `json:"data,omitempty" jsonschema:"fields to change; omitted fields keep their value"`
	Assignee *string    `json:"assignee,omitempty"`
	Log      bool       `json:"log,omitempty" jsonschema:"record a system note describing the change"`
	Author   string     `json:"author,omitempty"`
}

// LeadInput carries payload fields for either pipeline. Fields that do not
// belong to the lead's pipeline are ignored.
type LeadInput struct {
	CPF                *string     `json:"cpf,omitempty"`
	Email              *string     `json:"email,omitempty"`
	Phone              *string     `json:"phone,omitempty"`
	Source             *string     `json:"source,omitempty"`
	MarketTime         *string     `json:"market_time,omitempty"`
	Jusbrasil          *string     `json:"jusbrasil,omitempty" jsonschema:"nada encontrado, OK! or Problemas"`
	HasCertificate     *bool       `json:"has_certificate,omitempty"`
	Banks              *BanksInput `json:"banks,omitempty"`
	ContactAttempts    *int        `json:"contact_attempts,omitempty" jsonschema:"0 to 3"`
	ContactSuccess     *bool       `json:"contact_success,omitempty"`
	SaleType           *string     `json:"sale_type,omitempty" jsonschema:"Loja or Home Office"`
	TopProducts        *string     `json:"top_products,omitempty"`
	BrokerName         *string     `json:"broker_name,omitempty"`
	TargetBank         *string     `json:"target_bank,omitempty"`
	ProcessDescription *string     `json:"process_description,omitempty"`
}

type BanksInput struct {
	Pan      *string `json:"pan,omitempty" jsonschema:"Bloqueio Interno or Sem bloqueio"`
	Daycoval *string `json:"daycoval,omitempty" jsonschema:"Bloqueio Interno or Sem bloqueio"`
	C6       *string `json:"c6,omitempty" jsonschema:"Bloqueio Interno or Sem bloqueio"`
}

type MoveLeadParams struct {
	ID    string `json:"id"`
	Phase string `json:"phase" jsonschema:"target phase name"`
}

type AddNoteParams struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

type AddTagParams struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

type RemoveTagParams struct {
	ID    string `json:"id"`
	TagID string `json:"tag_id"`
}

type AddChecklistItemParams struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ChecklistItemParams struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
}

type TimeInPhaseParams struct {
	ID    string `json:"id"`
	Phase string `json:"phase"`
}

type GeneratePipelineParams struct {
	Pipeline string `json:"pipeline" jsonschema:"pipeline kind whose phases are replaced"`
	Prompt   string `json:"prompt" jsonschema:"free-text description of the process"`
}

type EmptyParams struct{}

type SetThemeParams struct {
	Theme string `json:"theme" jsonschema:"light or dark"`
}

type FormatContactParams struct {
	CPF   string `json:"cpf,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Tool outputs. Timestamps are RFC 3339 strings and durations carry both
// milliseconds and a display form.

type PipelinesResult struct {
	Pipelines []PipelineView `json:"pipelines"`
}

type PipelineView struct {
	Kind   string      `json:"kind"`
	Name   string      `json:"name"`
	Phases []PhaseView `json:"phases"`
}

type PhaseView struct {
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	SLADays *float64 `json:"sla_days,omitempty"`
}

type BoardView struct {
	Pipeline   string       `json:"pipeline"`
	Name       string       `json:"name"`
	Theme      string       `json:"theme"`
	Generating bool         `json:"generating"`
	Columns    []ColumnView `json:"columns"`
}

type ColumnView struct {
	Phase string     `json:"phase"`
	Color string     `json:"color"`
	Count int        `json:"count"`
	Leads []CardView `json:"leads"`
}

// CardView is the condensed lead shown inside a board column.
type CardView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	TaxID         string   `json:"tax_id,omitempty"`
	TimeInPhase   string   `json:"time_in_phase"`
	TimeInPhaseMs int64    `json:"time_in_phase_ms"`
	OverSLA       bool     `json:"over_sla"`
	Progress      float64  `json:"progress"`
	BankSummary   string   `json:"bank_summary,omitempty"`
	Tags          []string `json:"tags"`
	Assignee      string   `json:"assignee,omitempty"`
}

type LeadResult struct {
	Lead LeadView `json:"lead"`
}

type LeadView struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Pipeline       string          `json:"pipeline"`
	Phase          string          `json:"phase"`
	PhaseColor     string          `json:"phase_color"`
	Progress       float64         `json:"progress"`
	CreatedAt      string          `json:"created_at"`
	PhaseUpdatedAt string          `json:"phase_updated_at"`
	TimeInPhase    string          `json:"time_in_phase"`
	TimeInPhaseMs  int64           `json:"time_in_phase_ms"`
	OverSLA        bool            `json:"over_sla"`
	Archived       bool            `json:"archived"`
	Assignee       *AssigneeView   `json:"assignee,omitempty"`
	Data           LeadDataView    `json:"data"`
	Tags           []TagView       `json:"tags"`
	Checklist      []ChecklistView `json:"checklist"`
	Notes          []NoteView      `json:"notes" jsonschema:"newest first"`
	History        []HistoryView   `json:"history" jsonschema:"newest first"`
}

type AssigneeView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type LeadDataView struct {
	CPF                string     `json:"cpf,omitempty"`
	Email              string     `json:"email,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Source             string     `json:"source,omitempty"`
	MarketTime         string     `json:"market_time,omitempty"`
	Jusbrasil          string     `json:"jusbrasil,omitempty"`
	HasCertificate     *bool      `json:"has_certificate,omitempty"`
	Banks              *BanksView `json:"banks,omitempty"`
	BankSummary        string     `json:"bank_summary,omitempty"`
	ContactAttempts    int        `json:"contact_attempts,omitempty"`
	ContactSuccess     bool       `json:"contact_success,omitempty"`
	SaleType           string     `json:"sale_type,omitempty"`
	TopProducts        string     `json:"top_products,omitempty"`
	BrokerName         string     `json:"broker_name,omitempty"`
	TargetBank         string     `json:"target_bank,omitempty"`
	ProcessDescription string     `json:"process_description,omitempty"`
}

type BanksView struct {
	Pan      string `json:"pan,omitempty"`
	Daycoval string `json:"daycoval,omitempty"`
	C6       string `json:"c6,omitempty"`
}

type TagView struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type ChecklistView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type NoteView struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

type HistoryView struct {
	Phase      string `json:"phase"`
	Color      string `json:"color"`
	EnteredAt  string `json:"entered_at"`
	DurationMs int64  `json:"duration_ms"`
	Duration   string `json:"duration"`
}

type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type TimeInPhaseResult struct {
	ID         string `json:"id"`
	Phase      string `json:"phase"`
	DurationMs int64  `json:"duration_ms"`
	Duration   string `json:"duration"`
}

type GeneratePipelineResult struct {
	Pipeline PipelineView `json:"pipeline"`
	Rehomed  []string     `json:"rehomed" jsonschema:"ids of leads moved to the first phase"`
}

type ThemeResult struct {
	Theme string `json:"theme"`
}

type AssigneesResult struct {
	Assignees []AssigneeView `json:"assignees"`
}

type FormatContactResult struct {
	CPF      string `json:"cpf,omitempty"`
	CPFValid bool   `json:"cpf_valid"`
	Phone    string `json:"phone,omitempty"`
}
