package entity

import "time"

type Profile struct {
	UserID              string `gorm:"primaryKey"`
	DisplayName         string
	SustainabilityScore int

	CreatedAt time.Time
	UpdatedAt time.Time
}
