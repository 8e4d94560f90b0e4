package models

import "time"

// CreditOperation names the three credit adjustment endpoints
type CreditOperation string

const (
	CreditAssign CreditOperation = "assign"
	CreditAdd    CreditOperation = "add"
	CreditRemove CreditOperation = "remove"
)

func (o CreditOperation) Valid() bool {
	switch o {
	case CreditAssign, CreditAdd, CreditRemove:
		return true
	}
	return false
}

// CreditBalance is the current credit state of a company.
// Remaining is total minus used.
type CreditBalance struct {
	TotalCredits     int `json:"total_credits"`
	UsedCredits      int `json:"used_credits"`
	RemainingCredits int `json:"remaining_credits"`
}

// CreditAdjustmentRequest is the body of assign/add/remove
type CreditAdjustmentRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// CreditLedgerEntry is one append-only history row
type CreditLedgerEntry struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Operation        CreditOperation `json:"operation"`
	Delta            int             `json:"delta"`
	Reason           string          `json:"reason"`
	AdminName        string          `json:"admin_name,omitempty"`
	TotalCredits     int             `json:"total_credits"`
	UsedCredits      int             `json:"used_credits"`
	RemainingCredits int             `json:"remaining_credits"`
	CreatedAt        time.Time       `json:"created_at"`
}
