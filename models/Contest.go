package models

import "time"

// Contest is a time-bounded writing competition. Authors submit entries while
// today is within the collection window, reviewers score every entry during
// the review window, and aggregate results become publishable afterwards.
//
// There is no stored phase column: the current phase is always derived from
// CollectionEnd and ReviewEnd by the phase package.
type Contest struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"type:varchar(100);not null" json:"title"`
	ClassID          uint      `gorm:"not null;index;column:class_id" json:"class_id"`
	ShortDescription string    `gorm:"type:varchar(255)" json:"short_description"`
	LongDescription  string    `gorm:"type:varchar(2000)" json:"long_description"`
	Anonymity        bool      `gorm:"not null;default:false" json:"anonymity"`
	PublicReviews    bool      `gorm:"not null;default:false" json:"public_reviews"`
	PublicResults    bool      `gorm:"not null;default:false" json:"public_results"`
	CollectionEnd    time.Time `gorm:"type:date;not null;column:collection_end" json:"collection_end"`
	ReviewEnd        time.Time `gorm:"type:date;not null;column:review_end" json:"review_end"`
	PrivateKey       string    `gorm:"type:varchar(255);uniqueIndex;not null;column:private_key" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	Class            *Class    `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Entries          []*Entry  `gorm:"foreignKey:ContestID" json:"entries,omitempty"`
}
