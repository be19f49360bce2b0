package domain

import "time"

// Project groups tasks under a customer. ContractID is optional: projects
// without a contract still report hours but carry no billing rate.
type Project struct {
	ID         string
	CustomerID string
	ContractID *string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Project) HasContract() bool {
	return p.ContractID != nil && *p.ContractID != ""
}
