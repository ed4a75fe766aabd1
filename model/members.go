package model

import "time"

// GroupMember joins a User to a Group. A user belongs to a group at most once.
type GroupMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_member_user_group"`
	GroupID   uint      `json:"groupId" gorm:"not null;uniqueIndex:idx_member_user_group;index"`
	IsAdmin   bool      `json:"isAdmin" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

type MemberView struct {
	GroupMember
	Username string `json:"username"`
}

type AddMember struct {
	GroupID  uint   `json:"groupId" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=32"`
}
