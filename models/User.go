package models

import "time"

// User represents an account that can author entries and review other entries.
// The first user ever registered becomes a super user; supers administrate
// contests, users and entries.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Super     bool      `gorm:"not null;default:false" json:"super"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []*Entry  `gorm:"foreignKey:UserID" json:"entries,omitempty"`
	Reviews   []*Review `gorm:"foreignKey:UserID" json:"-"`
}
