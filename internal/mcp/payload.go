package mcp

import (
	"fmt"
	"slices"

	"github.com/okfy/leadboard/internal/domain/lead"
)

var (
	jusbrasilValues = []lead.JusbrasilStatus{lead.JusbrasilNothingFound, lead.JusbrasilOK, lead.JusbrasilProblems}
	bankValues      = []lead.BankCheck{lead.BankBlocked, lead.BankClear}
	saleTypeValues  = []lead.SaleType{lead.SaleStore, lead.SaleHomeOffice}
)

// applyInput overlays in onto base. Omitted fields keep their value and an
// empty string clears an optional status.
func applyInput(base lead.Payload, in *LeadInput) (lead.Payload, error) {
	if in == nil {
		return base, nil
	}

	switch d := base.(type) {
	case lead.CommercialData:
		setString(&d.CPF, in.CPF)
		setString(&d.Email, in.Email)
		setString(&d.Phone, in.Phone)
		setString(&d.Source, in.Source)
		setString(&d.MarketTime, in.MarketTime)
		setString(&d.TopProducts, in.TopProducts)
		if in.HasCertificate != nil {
			v := *in.HasCertificate
			d.HasCertificate = &v
		}
		if in.ContactAttempts != nil {
			d.ContactAttempts = *in.ContactAttempts
		}
		if in.ContactSuccess != nil {
			d.ContactSuccess = *in.ContactSuccess
		}

		var err error
		if d.Jusbrasil, err = setEnum(d.Jusbrasil, in.Jusbrasil, jusbrasilValues, "jusbrasil"); err != nil {
			return nil, err
		}
		if d.SaleType, err = setEnum(d.SaleType, in.SaleType, saleTypeValues, "sale_type"); err != nil {
			return nil, err
		}
		if b := in.Banks; b != nil {
			if d.Banks.Pan, err = setEnum(d.Banks.Pan, b.Pan, bankValues, "banks.pan"); err != nil {
				return nil, err
			}
			if d.Banks.Daycoval, err = setEnum(d.Banks.Daycoval, b.Daycoval, bankValues, "banks.daycoval"); err != nil {
				return nil, err
			}
			if d.Banks.C6, err = setEnum(d.Banks.C6, b.C6, bankValues, "banks.c6"); err != nil {
				return nil, err
			}
		}
		return d, nil

	case lead.LegalData:
		setString(&d.CPF, in.CPF)
		setString(&d.Email, in.Email)
		setString(&d.Phone, in.Phone)
		setString(&d.Source, in.Source)
		setString(&d.BrokerName, in.BrokerName)
		setString(&d.TargetBank, in.TargetBank)
		setString(&d.ProcessDescription, in.ProcessDescription)
		return d, nil
	}
	return nil, fmt.Errorf("%w: unsupported payload", lead.ErrInvalidInput)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setEnum[T ~string](current *T, v *string, allowed []T, field string) (*T, error) {
	if v == nil {
		return current, nil
	}
	if *v == "" {
		return nil, nil
	}
	value := T(*v)
	if !slices.Contains(allowed, value) {
		return nil, fmt.Errorf("%w: %s must be one of %v", lead.ErrInvalidInput, field, allowed)
	}
	return &value, nil
}
