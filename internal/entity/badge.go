package entity

import "time"

type Badge struct {
	Base

	Name        string `gorm:"unique"`
	Description string
	IconType    string
}

type UserBadge struct {
	UserID  string `gorm:"primaryKey"`
	BadgeID string `gorm:"primaryKey"`

	EarnedAt time.Time
}
