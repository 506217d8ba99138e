package models

// Class is a genre tag attached to contests (e.g. prose, poetry).
// Classes are seeded at startup and curated by super users only.
type Class struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"type:varchar(100);unique;not null" json:"name"`
	Value    string     `gorm:"type:varchar(100);not null" json:"value"`
	Contests []*Contest `gorm:"foreignKey:ClassID" json:"-"`
}
