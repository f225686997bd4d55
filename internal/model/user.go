package model

import "time"

// User owns tasks. A single-user deployment bootstraps one default user.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Name      string
	CreatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
