package forms

import (
	"fmt"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

// CreditAdjustment is the assign/add/remove credits form
type CreditAdjustment struct {
	Operation models.CreditOperation `validate:"required,oneof=assign add remove"`
	Amount    int                    `validate:"gt=0"`
	Reason    string                 `validate:"required"`
}

func (f *CreditAdjustment) Validate() error {
	return join(check(f))
}

// ValidateAgainst also rejects removing more than the remaining balance
func (f *CreditAdjustment) ValidateAgainst(balance models.CreditBalance) error {
	errs := check(f)
	if f.Operation == models.CreditRemove && f.Amount > balance.RemainingCredits {
		errs = append(errs, ValidationError{
			Field:   "Amount",
			Message: fmt.Sprintf("cannot remove %d credits, only %d remaining", f.Amount, balance.RemainingCredits),
		})
	}
	return join(errs)
}

func (f *CreditAdjustment) Request() models.CreditAdjustmentRequest {
	return models.CreditAdjustmentRequest{Amount: f.Amount, Reason: f.Reason}
}
