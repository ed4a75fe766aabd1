package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExpenseRepoGorm struct {
	db *gorm.DB
}

func (e *ExpenseRepoGorm) Create(ctx context.Context, expense *model.Expense) error {
	return translate(e.db.WithContext(ctx).Create(expense).Error, "expense")
}

func (e *ExpenseRepoGorm) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	var expense model.Expense
	if err := e.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, translate(err, "expense")
	}
	return &expense, nil
}

func (e *ExpenseRepoGorm) FindByIDForUpdate(ctx context.Context, id uint) (*model.Expense, error) {
	var expense model.Expense
	err := e.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&expense, id).
		Error
	if err != nil {
		return nil, translate(err, "expense")
	}
	return &expense, nil
}

func (e *ExpenseRepoGorm) FindByGroup(ctx context.Context, groupID uint, start, count int) ([]model.Expense, error) {
	expenses := []model.Expense{}
	err := e.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id asc").
		Offset(start).
		Limit(count).
		Find(&expenses).
		Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// Update writes only the named struct fields of expense.
func (e *ExpenseRepoGorm) Update(ctx context.Context, expense *model.Expense, fields []string) error {
	err := e.db.WithContext(ctx).
		Model(expense).
		Select(fields).
		Updates(expense).
		Error
	return translate(err, "expense")
}

func (e *ExpenseRepoGorm) Delete(ctx context.Context, id uint) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("expense_id = ?", id).
			Delete(&model.Contribution{}).
			Error
		if err != nil {
			return err
		}

		res := tx.Delete(&model.Expense{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.NotFoundf("expense not found")
		}
		return nil
	})
}
