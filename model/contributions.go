package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is one member's payment toward an expense. There is at most one
// row per (expense, member); recording again replaces the value.
type Contribution struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ExpenseID     uint            `json:"expenseId" gorm:"not null;uniqueIndex:idx_contribution_member"`
	GroupMemberID uint            `json:"groupMemberId" gorm:"not null;uniqueIndex:idx_contribution_member;index"`
	Value         decimal.Decimal `json:"value" gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ContributionView struct {
	Contribution
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
}

type RecordContribution struct {
	ExpenseID uint            `json:"expenseId" validate:"required"`
	Value     decimal.Decimal `json:"value"`
}

// Balance is the part of the expense value not yet covered by contributions.
func Balance(value decimal.Decimal, contributions []decimal.Decimal) decimal.Decimal {
	return value.Sub(Sum(contributions))
}

func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// maxAmount is the smallest value a decimal(12,2) column cannot hold.
var maxAmount = decimal.New(1, 10)

// CheckAmount rejects money values the storage cannot hold exactly: they must
// be positive, below 10^10 and have at most two decimal places.
func CheckAmount(field string, v decimal.Decimal) error {
	switch {
	case !v.IsPositive():
		return Validationf("%s must be greater than zero", field)
	case !v.Equal(v.Round(2)):
		return Validationf("%s must have at most two decimal places", field)
	case v.GreaterThanOrEqual(maxAmount):
		return Validationf("%s must be less than %s", field, maxAmount.String())
	}
	return nil
}
