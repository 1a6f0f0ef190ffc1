package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"size:100;not null" json:"-"`
	Role            UserRole  `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	Language        string    `gorm:"size:10;default:'en'" json:"language"`
	Association     string    `gorm:"size:255" json:"association"`
	RefereeLevel    string    `gorm:"size:50" json:"refereeLevel"`
	ProfileComplete bool      `gorm:"default:false" json:"profileComplete"`
	Disabled        bool      `gorm:"default:false" json:"disabled"`
	LastLogin       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
