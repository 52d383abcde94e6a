package lead

import "github.com/okfy/leadboard/internal/domain/pipeline"

// Payload is the pipeline-specific part of a lead. Each pipeline kind has
// exactly one variant.
type Payload interface {
	Kind() pipeline.Kind
	TaxID() string
	clonePayload() Payload
}

// JusbrasilStatus is the outcome of a lawsuit lookup.
type JusbrasilStatus string

const (
	JusbrasilNothingFound JusbrasilStatus = "nada encontrado"
	JusbrasilOK           JusbrasilStatus = "OK!"
	JusbrasilProblems     JusbrasilStatus = "Problemas"
)

// BankCheck is the answer a partner bank gave for the lead.
type BankCheck string

const (
	BankBlocked BankCheck = "Bloqueio Interno"
	BankClear   BankCheck = "Sem bloqueio"
)

// SaleType is where the lead intends to sell.
type SaleType string

const (
	SaleStore      SaleType = "Loja"
	SaleHomeOffice SaleType = "Home Office"
)

// MaxContactAttempts bounds CommercialData.ContactAttempts.
const MaxContactAttempts = 3

// Bank summaries shown on commercial cards.
const (
	BankSummaryPending = "Em Análise"
	BankSummaryBlocked = "Bloqueio"
	BankSummaryClear   = "Liberado"
)

// BankChecks holds one answer per partner bank. Nil means not yet checked.
type BankChecks struct {
	Pan      *BankCheck
	Daycoval *BankCheck
	C6       *BankCheck
}

// CommercialData is the payload of leads in the commercial pipeline.
// Pointer fields are nil until checked, which is distinct from a negative
// answer.
type CommercialData struct {
	CPF             string
	Email           string
	Phone           string
	Source          string
	MarketTime      string
	Jusbrasil       *JusbrasilStatus
	HasCertificate  *bool
	Banks           BankChecks
	ContactAttempts int
	ContactSuccess  bool
	SaleType        *SaleType
	TopProducts     string
}

func (CommercialData) Kind() pipeline.Kind { return pipeline.KindCommercial }

func (d CommercialData) TaxID() string { return d.CPF }

// BankSummary condenses the bank answers: any block from Daycoval or C6
// wins, nothing answered is pending, everything else is clear.
func (d CommercialData) BankSummary() string {
	b := d.Banks
	if isBlocked(b.Daycoval) || isBlocked(b.C6) {
		return BankSummaryBlocked
	}
	if b.Pan == nil && b.Daycoval == nil && b.C6 == nil {
		return BankSummaryPending
	}
	return BankSummaryClear
}

func isBlocked(c *BankCheck) bool {
	return c != nil && *c == BankBlocked
}

func (d CommercialData) clonePayload() Payload {
	out := d
	out.Jusbrasil = clonePtr(d.Jusbrasil)
	out.HasCertificate = clonePtr(d.HasCertificate)
	out.SaleType = clonePtr(d.SaleType)
	out.Banks = BankChecks{
		Pan:      clonePtr(d.Banks.Pan),
		Daycoval: clonePtr(d.Banks.Daycoval),
		C6:       clonePtr(d.Banks.C6),
	}
	return out
}

// LegalData is the payload of leads in the legal pipeline.
type LegalData struct {
	CPF                string
	Email              string
	Phone              string
	Source             string
	BrokerName         string
	TargetBank         string
	ProcessDescription string
}

func (LegalData) Kind() pipeline.Kind { return pipeline.KindLegal }

func (d LegalData) TaxID() string { return d.CPF }

func (d LegalData) clonePayload() Payload { return d }

// NewPayload returns the empty payload for kind, or nil for unknown kinds.
func NewPayload(kind pipeline.Kind) Payload {
	switch kind {
	case pipeline.KindCommercial:
		return CommercialData{}
	case pipeline.KindLegal:
		return LegalData{}
	default:
		return nil
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
