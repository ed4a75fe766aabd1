package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContributionRepoGorm struct {
	db *gorm.DB
}

func (c *ContributionRepoGorm) Upsert(ctx context.Context, contribution *model.Contribution) error {
	db := c.db.WithContext(ctx)
	err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "expense_id"}, {Name: "group_member_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(contribution).
		Error
	if err != nil {
		return translate(err, "contribution")
	}

	// the id reported after an upsert differs between drivers, read it back
	var saved model.Contribution
	err = db.
		Where("expense_id = ? AND group_member_id = ?", contribution.ExpenseID, contribution.GroupMemberID).
		First(&saved).
		Error
	if err != nil {
		return translate(err, "contribution")
	}
	*contribution = saved
	return nil
}

// FindByExpense keeps contributions of removed members; their user fields are zero.
func (c *ContributionRepoGorm) FindByExpense(ctx context.Context, expenseID uint) ([]model.ContributionView, error) {
	views := []model.ContributionView{}
	err := c.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Select(
			"contributions.*, " +
				"COALESCE(group_members.user_id, 0) AS user_id, " +
				"COALESCE(users.username, '') AS username",
		).
		Joins("LEFT JOIN group_members ON group_members.id = contributions.group_member_id").
		Joins("LEFT JOIN users ON users.id = group_members.user_id").
		Where("contributions.expense_id = ?", expenseID).
		Order("contributions.created_at asc, contributions.id asc").
		Scan(&views).
		Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Totals sums contributions per expense. Expenses without contributions are absent.
func (c *ContributionRepoGorm) Totals(ctx context.Context, expenseIDs []uint) (map[uint]decimal.Decimal, error) {
	totals := map[uint]decimal.Decimal{}
	if len(expenseIDs) == 0 {
		return totals, nil
	}

	rows := []model.Contribution{}
	err := c.db.WithContext(ctx).
		Select("expense_id", "value").
		Where("expense_id IN ?", expenseIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.ExpenseID] = totals[row.ExpenseID].Add(row.Value)
	}
	return totals, nil
}

func (c *ContributionRepoGorm) CountByMember(ctx context.Context, memberID uint) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("group_member_id = ?", memberID).
		Count(&n).
		Error
	return n, err
}
