package models

import "time"

// Entry is one author's text submitted to one contest. The composite unique
// index enforces at most one entry per (contest, author) pair; concurrent
// duplicate submissions are resolved by the constraint, not by lookups.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ContestID uint      `gorm:"not null;index;uniqueIndex:idx_entries_contest_author;column:contest_id" json:"contest_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_entries_contest_author;column:user_id" json:"user_id"`
	Text      string    `gorm:"type:varchar(5000);not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Contest   *Contest  `gorm:"foreignKey:ContestID" json:"-"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reviews   []*Review `gorm:"foreignKey:EntryID" json:"-"`
}
