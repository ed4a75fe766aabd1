package repository

import (
	"context"

	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/gorm"
)

type UserRepoGorm struct {
	db *gorm.DB
}

func (u *UserRepoGorm) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (u *UserRepoGorm) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := u.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).
		Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (u *UserRepoGorm) Create(ctx context.Context, user *model.User) error {
	return translate(u.db.WithContext(ctx).Create(user).Error, "username")
}

func (u *UserRepoGorm) SharesGroup(ctx context.Context, userID, otherID uint) (bool, error) {
	var n int64
	err := u.db.WithContext(ctx).
		Table("group_members AS mine").
		Joins("JOIN group_members AS theirs ON theirs.group_id = mine.group_id").
		Where("mine.user_id = ? AND theirs.user_id = ?", userID, otherID).
		Count(&n).
		Error
	return n > 0, err
}
