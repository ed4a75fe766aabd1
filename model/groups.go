package model

import "time"

type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:64;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"size:512"`
	WhatsappURL string    `json:"whatsappUrl,omitempty" gorm:"size:256"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateGroup struct {
	Name        string `json:"name" validate:"required,min=1,max=64"`
	Description string `json:"description,omitempty" validate:"max=512"`
	WhatsappURL string `json:"whatsappUrl,omitempty" validate:"omitempty,url,max=256"`
}

// UpdateGroup is a partial patch: nil fields are left untouched.
type UpdateGroup struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
	WhatsappURL *string `json:"whatsappUrl,omitempty" validate:"omitempty,url,max=256"`
}
