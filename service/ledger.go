package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/model"
	"github.com/shopspring/decimal"
)

// Ledger keeps a group's expenses and the contributions members record
// against them.
type Ledger struct {
	store  contract.Store
	policy Policy
}

func NewLedger(store contract.Store, policy Policy) *Ledger {
	return &Ledger{store: store, policy: policy}
}

func (l *Ledger) CreateExpense(ctx context.Context, userID uint, in model.CreateExpense) (*model.ExpenseSummary, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, model.Validationf("title is required")
	}
	if err := model.CheckAmount("value", in.Value); err != nil {
		return nil, err
	}

	// absent enums take their default, unknown ones are rejected
	currency := model.CurrencyUSD
	if in.Currency != "" {
		var err error
		if currency, err = model.ParseCurrency(in.Currency); err != nil {
			return nil, err
		}
	}
	recurrence := model.RecurrenceNone
	if in.RecurrenceInterval != "" {
		var err error
		if recurrence, err = model.ParseRecurrence(in.RecurrenceInterval); err != nil {
			return nil, err
		}
	}

	if _, err := l.store.Groups().FindByID(ctx, in.GroupID); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, l.store, userID, in.GroupID); err != nil {
		return nil, err
	}

	expense := &model.Expense{
		GroupID:            in.GroupID,
		Title:              title,
		Description:        in.Description,
		Value:              in.Value,
		Currency:           currency,
		IsRecurring:        in.IsRecurring,
		RecurrenceInterval: recurrence,
		Due:                in.Due,
	}
	if err := l.store.Expenses().Create(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", expense.GroupID, "user_id", userID)
	return summarize(expense, decimal.Zero), nil
}

func (l *Ledger) GetExpense(ctx context.Context, userID, expenseID uint) (*model.ExpenseSummary, error) {
	expense, err := l.store.Expenses().FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, l.store, userID, expense.GroupID); err != nil {
		return nil, err
	}

	totals, err := l.store.Contributions().Totals(ctx, []uint{expense.ID})
	if err != nil {
		return nil, err
	}
	return summarize(expense, totals[expense.ID]), nil
}

func (l *Ledger) ListExpenses(ctx context.Context, userID, groupID uint, start, count int) ([]model.ExpenseSummary, error) {
	if _, err := l.store.Groups().FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, l.store, userID, groupID); err != nil {
		return nil, err
	}

	expenses, err := l.store.Expenses().FindByGroup(ctx, groupID, start, count)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.ID)
	}
	totals, err := l.store.Contributions().Totals(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ExpenseSummary, 0, len(expenses))
	for i := range expenses {
		summaries = append(summaries, *summarize(&expenses[i], totals[expenses[i].ID]))
	}
	return summaries, nil
}

// UpdateExpense applies the non-nil fields of patch. A patch without any
// field is rejected.
func (l *Ledger) UpdateExpense(ctx context.Context, userID, expenseID uint, patch model.UpdateExpense) (*model.ExpenseSummary, error) {
	var updated *model.ExpenseSummary
	err := l.store.Transaction(ctx, func(tx contract.Store) error {
		expense, err := tx.Expenses().FindByIDForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		if _, err := requireMember(ctx, tx, userID, expense.GroupID); err != nil {
			return err
		}

		fields, err := applyExpensePatch(expense, patch)
		if err != nil {
			return err
		}
		if err := tx.Expenses().Update(ctx, expense, fields); err != nil {
			return err
		}

		totals, err := tx.Contributions().Totals(ctx, []uint{expense.ID})
		if err != nil {
			return err
		}
		updated = summarize(expense, totals[expense.ID])
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expenseID, "user_id", userID)
	return updated, nil
}

func applyExpensePatch(expense *model.Expense, patch model.UpdateExpense) ([]string, error) {
	var fields []string
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, model.Validationf("title must not be empty")
		}
		expense.Title = title
		fields = append(fields, "Title")
	}
	if patch.Description != nil {
		expense.Description = *patch.Description
		fields = append(fields, "Description")
	}
	if patch.Value != nil {
		if err := model.CheckAmount("value", *patch.Value); err != nil {
			return nil, err
		}
		expense.Value = *patch.Value
		fields = append(fields, "Value")
	}
	if patch.Currency != nil {
		currency, err := model.ParseCurrency(*patch.Currency)
		if err != nil {
			return nil, err
		}
		expense.Currency = currency
		fields = append(fields, "Currency")
	}
	if patch.IsRecurring != nil {
		expense.IsRecurring = *patch.IsRecurring
		fields = append(fields, "IsRecurring")
	}
	if patch.RecurrenceInterval != nil {
		recurrence, err := model.ParseRecurrence(*patch.RecurrenceInterval)
		if err != nil {
			return nil, err
		}
		expense.RecurrenceInterval = recurrence
		fields = append(fields, "RecurrenceInterval")
	}
	if patch.Due != nil {
		expense.Due = patch.Due
		fields = append(fields, "Due")
	}
	if len(fields) == 0 {
		return nil, model.Validationf("nothing to update")
	}
	return fields, nil
}

// DeleteExpense removes the expense together with its contributions.
func (l *Ledger) DeleteExpense(ctx context.Context, userID, expenseID uint) error {
	err := l.store.Transaction(ctx, func(tx contract.Store) error {
		expense, err := tx.Expenses().FindByIDForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		if _, err := requireMember(ctx, tx, userID, expense.GroupID); err != nil {
			return err
		}
		return tx.Expenses().Delete(ctx, expense.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}

// RecordContribution sets the caller's contribution to the expense. A member
// holds at most one contribution per expense; recording again replaces its
// value.
func (l *Ledger) RecordContribution(ctx context.Context, userID, expenseID uint, value decimal.Decimal) (*model.ContributionView, error) {
	if err := model.CheckAmount("contribution value", value); err != nil {
		return nil, err
	}

	var (
		view     *model.ContributionView
		replaced bool
	)
	err := l.store.Transaction(ctx, func(tx contract.Store) error {
		expense, err := tx.Expenses().FindByIDForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		member, err := requireMember(ctx, tx, userID, expense.GroupID)
		if err != nil {
			return err
		}

		existing, err := tx.Contributions().FindByExpense(ctx, expense.ID)
		if err != nil {
			return err
		}
		others := make([]decimal.Decimal, 0, len(existing))
		for _, c := range existing {
			if c.GroupMemberID == member.ID {
				replaced = true
				continue
			}
			others = append(others, c.Value)
		}
		if l.policy.RejectOverContribution && model.Balance(expense.Value, others).LessThan(value) {
			return model.Conflictf("contribution exceeds the outstanding balance")
		}

		contribution := &model.Contribution{
			ExpenseID:     expense.ID,
			GroupMemberID: member.ID,
			Value:         value,
		}
		if err := tx.Contributions().Upsert(ctx, contribution); err != nil {
			return err
		}

		user, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		view = &model.ContributionView{
			Contribution: *contribution,
			UserID:       user.ID,
			Username:     user.Username,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := "created"
	if replaced {
		outcome = "replaced"
	}
	contributionsRecorded.WithLabelValues(outcome).Inc()
	slog.Info("Contribution recorded",
		"expense_id", expenseID,
		"member_id", view.GroupMemberID,
		"value", value.String(),
		"outcome", outcome,
	)
	return view, nil
}

// ListContributions returns the expense's contributions, oldest first.
func (l *Ledger) ListContributions(ctx context.Context, userID, expenseID uint) ([]model.ContributionView, error) {
	expense, err := l.store.Expenses().FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, l.store, userID, expense.GroupID); err != nil {
		return nil, err
	}
	return l.store.Contributions().FindByExpense(ctx, expense.ID)
}

func summarize(expense *model.Expense, contributed decimal.Decimal) *model.ExpenseSummary {
	return &model.ExpenseSummary{
		Expense:     *expense,
		Contributed: contributed,
		Balance:     model.Balance(expense.Value, []decimal.Decimal{contributed}),
	}
}
