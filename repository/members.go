package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepoGorm struct {
	db *gorm.DB
}

// Add relies on the (user_id, group_id) unique index, so two concurrent adds
// of the same user produce one row and one conflict.
func (m *MemberRepoGorm) Add(ctx context.Context, member *model.GroupMember) error {
	err := m.db.WithContext(ctx).Create(member).Error
	if isDuplicate(err) {
		return &model.Error{Kind: model.KindConflict, Message: "user is already a member of this group", Err: err}
	}
	return err
}

func (m *MemberRepoGorm) FindByID(ctx context.Context, id uint) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := m.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, translate(err, "group member")
	}
	return &member, nil
}

func (m *MemberRepoGorm) FindByIDForUpdate(ctx context.Context, id uint) (*model.GroupMember, error) {
	var member model.GroupMember
	err := m.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&member, id).
		Error
	if err != nil {
		return nil, translate(err, "group member")
	}
	return &member, nil
}

func (m *MemberRepoGorm) FindByUserAndGroup(ctx context.Context, userID, groupID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&member).
		Error
	if err != nil {
		return nil, translate(err, "group member")
	}
	return &member, nil
}

func (m *MemberRepoGorm) FindByGroup(ctx context.Context, groupID uint) ([]model.MemberView, error) {
	members := []model.MemberView{}
	err := m.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Select("group_members.*, users.username").
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.id asc").
		Scan(&members).
		Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// LockAdmins takes the locks in id order so concurrent role changes in one
// group queue up instead of deadlocking.
func (m *MemberRepoGorm) LockAdmins(ctx context.Context, groupID uint) ([]model.GroupMember, error) {
	admins := []model.GroupMember{}
	err := m.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("group_id = ? AND is_admin = ?", groupID, true).
		Order("id asc").
		Find(&admins).
		Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (m *MemberRepoGorm) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	return m.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin).
		Error
}

func (m *MemberRepoGorm) Remove(ctx context.Context, id uint) error {
	res := m.db.WithContext(ctx).Delete(&model.GroupMember{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.NotFoundf("group member not found")
	}
	return nil
}
