package models

import "time"

// Review is one reviewer's score for one entry, 0 to 5 points. The composite
// unique index makes re-submission an upsert: a reviewer never produces two
// rows for the same entry.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EntryID   uint      `gorm:"not null;index;uniqueIndex:idx_reviews_entry_reviewer;column:entry_id" json:"entry_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_reviews_entry_reviewer;column:user_id" json:"user_id"`
	Points    int       `gorm:"not null" json:"points"`
	Comment   string    `gorm:"type:varchar(1000)" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Entry     *Entry    `gorm:"foreignKey:EntryID" json:"-"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
}
