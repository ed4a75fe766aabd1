package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyRON Currency = "RON"
	CurrencyGBP Currency = "GBP"
)

var currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyRON, CurrencyGBP}

// ParseCurrency accepts a currency code in any letter case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range currencies {
		if c == known {
			return c, nil
		}
	}
	return "", Validationf("unknown currency %q", s)
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "NONE"
	RecurrenceWeekly  Recurrence = "WEEKLY"
	RecurrenceMonthly Recurrence = "MONTHLY"
	RecurrenceYearly  Recurrence = "YEARLY"
)

var recurrences = []Recurrence{RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly}

func ParseRecurrence(s string) (Recurrence, error) {
	r := Recurrence(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range recurrences {
		if r == known {
			return r, nil
		}
	}
	return "", Validationf("unknown recurrence interval %q", s)
}

type Expense struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	GroupID            uint            `json:"groupId" gorm:"not null;index"`
	Title              string          `json:"title" gorm:"size:128;not null"`
	Description        string          `json:"description,omitempty" gorm:"size:1024"`
	Value              decimal.Decimal `json:"value" gorm:"type:decimal(12,2);not null"`
	Currency           Currency        `json:"currency" gorm:"size:3;not null"`
	IsRecurring        bool            `json:"isRecurring" gorm:"not null"`
	RecurrenceInterval Recurrence      `json:"recurrenceInterval" gorm:"size:16;not null"`
	Due                *time.Time      `json:"due,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ExpenseSummary is an Expense together with its derived totals.
type ExpenseSummary struct {
	Expense
	Contributed decimal.Decimal `json:"contributed"`
	Balance     decimal.Decimal `json:"balance"`
}

type CreateExpense struct {
	GroupID            uint            `json:"groupId" validate:"required"`
	Title              string          `json:"title" validate:"required,max=128"`
	Description        string          `json:"description,omitempty" validate:"max=1024"`
	Value              decimal.Decimal `json:"value"`
	Currency           string          `json:"currency,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurrenceInterval string          `json:"recurrenceInterval,omitempty"`
	Due                *time.Time      `json:"due,omitempty"`
}

// UpdateExpense is a partial patch: nil fields are left untouched.
type UpdateExpense struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,max=128"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=1024"`
	Value              *decimal.Decimal `json:"value,omitempty"`
	Currency           *string          `json:"currency,omitempty"`
	IsRecurring        *bool            `json:"isRecurring,omitempty"`
	RecurrenceInterval *string          `json:"recurrenceInterval,omitempty"`
	Due                *time.Time       `json:"due,omitempty"`
}
