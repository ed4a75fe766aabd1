package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/gorm"
)

type GroupRepoGorm struct {
	db *gorm.DB
}

func (g *GroupRepoGorm) Create(ctx context.Context, group *model.Group) error {
	err := g.db.WithContext(ctx).Create(group).Error
	if isDuplicate(err) {
		return &model.Error{Kind: model.KindConflict, Message: "group name already taken", Err: err}
	}
	return translate(err, "group")
}

func (g *GroupRepoGorm) FindByID(ctx context.Context, id uint) (*model.Group, error) {
	var group model.Group
	if err := g.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, "group")
	}
	return &group, nil
}

// FindByUser lists the groups userID belongs to, oldest first.
func (g *GroupRepoGorm) FindByUser(ctx context.Context, userID uint, start, count int) ([]model.Group, error) {
	db := g.db.WithContext(ctx)
	memberOf := db.
		Model(&model.GroupMember{}).
		Select("group_id").
		Where("user_id = ?", userID)

	groups := []model.Group{}
	err := db.
		Where("id IN (?)", memberOf).
		Order("id asc").
		Offset(start).
		Limit(count).
		Find(&groups).
		Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (g *GroupRepoGorm) Update(ctx context.Context, group *model.Group, fields []string) error {
	err := g.db.WithContext(ctx).
		Model(group).
		Select(fields).
		Updates(group).
		Error
	if isDuplicate(err) {
		return &model.Error{Kind: model.KindConflict, Message: "group name already taken", Err: err}
	}
	return translate(err, "group")
}

func (g *GroupRepoGorm) Delete(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expenses := tx.
			Model(&model.Expense{}).
			Select("id").
			Where("group_id = ?", id)

		err := tx.
			Where("expense_id IN (?)", expenses).
			Delete(&model.Contribution{}).
			Error
		if err != nil {
			return err
		}

		for _, owned := range []interface{}{&model.Expense{}, &model.Task{}, &model.GroupMember{}} {
			if err := tx.Where("group_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&model.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.NotFoundf("group not found")
		}
		return nil
	})
}
