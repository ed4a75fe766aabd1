package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepoGorm struct {
	db *gorm.DB
}

func (t *TaskRepoGorm) Create(ctx context.Context, task *model.Task) error {
	return translate(t.db.WithContext(ctx).Create(task).Error, "task")
}

func (t *TaskRepoGorm) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := t.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err, "task")
	}
	return &task, nil
}

func (t *TaskRepoGorm) FindByIDForUpdate(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&task, id).
		Error
	if err != nil {
		return nil, translate(err, "task")
	}
	return &task, nil
}

// FindByGroup lists the group's tasks. An empty stage matches every stage.
func (t *TaskRepoGorm) FindByGroup(ctx context.Context, groupID uint, stage model.Stage, start, count int) ([]model.Task, error) {
	query := t.db.WithContext(ctx).Where("group_id = ?", groupID)
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}

	tasks := []model.Task{}
	err := query.
		Order("id asc").
		Offset(start).
		Limit(count).
		Find(&tasks).
		Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *TaskRepoGorm) Update(ctx context.Context, task *model.Task, fields []string) error {
	err := t.db.WithContext(ctx).
		Model(task).
		Select(fields).
		Updates(task).
		Error
	return translate(err, "task")
}

// SetAssignee claims the task for memberID, or clears the claim when memberID is nil.
func (t *TaskRepoGorm) SetAssignee(ctx context.Context, id uint, memberID *uint) error {
	var value interface{}
	if memberID != nil {
		value = *memberID
	}
	return t.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Update("group_member_id", value).
		Error
}

func (t *TaskRepoGorm) SetStage(ctx context.Context, id uint, stage model.Stage) error {
	return t.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Update("stage", stage).
		Error
}

func (t *TaskRepoGorm) Delete(ctx context.Context, id uint) error {
	res := t.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.NotFoundf("task not found")
	}
	return nil
}

// UnclaimByMember releases every task claimed by memberID and reports how many.
func (t *TaskRepoGorm) UnclaimByMember(ctx context.Context, memberID uint) (int64, error) {
	res := t.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("group_member_id = ?", memberID).
		Update("group_member_id", nil)
	return res.RowsAffected, res.Error
}

func (t *TaskRepoGorm) CountByMember(ctx context.Context, memberID uint) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("group_member_id = ?", memberID).
		Count(&n).
		Error
	return n, err
}
