package models

// Email is a captured subscriber address.
type Email struct {
	ID    uint64 `gorm:"primaryKey"                    json:"_id"`
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`
}
