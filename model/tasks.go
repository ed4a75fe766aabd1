package model

import (
	"strings"
	"time"
)

type Stage string

const (
	StageToDo       Stage = "TO_DO"
	StageInProgress Stage = "IN_PROGRESS"
	StageDone       Stage = "DONE"
)

var stages = []Stage{StageToDo, StageInProgress, StageDone}

func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range stages {
		if st == known {
			return st, nil
		}
	}
	return "", Validationf("unknown stage %q", s)
}

// Task is a chore on the group board. GroupMemberID is nil while unclaimed.
type Task struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	GroupID       uint       `json:"groupId" gorm:"not null;index"`
	Name          string     `json:"name" gorm:"size:128;not null"`
	Description   string     `json:"description,omitempty" gorm:"size:1024"`
	Due           *time.Time `json:"due,omitempty"`
	Stage         Stage      `json:"stage" gorm:"size:16;not null;index"`
	GroupMemberID *uint      `json:"groupMemberId" gorm:"index"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type CreateTask struct {
	GroupID     uint       `json:"groupId" validate:"required"`
	Name        string     `json:"name" validate:"required,max=128"`
	Description string     `json:"description,omitempty" validate:"max=1024"`
	Due         *time.Time `json:"due,omitempty"`
}

// UpdateTask is a partial patch: nil fields are left untouched.
type UpdateTask struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=128"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=1024"`
	Due         *time.Time `json:"due,omitempty"`
}

type ChangeStage struct {
	Stage string `json:"stage" validate:"required"`
}
