package models

// Settings is the settings document shown to visitors. One row is seeded
// for the admin on first start; rows are looked up by UserEmail.
type Settings struct {
	ID         uint64 `gorm:"primaryKey"     json:"_id"`
	LogoURL    string `gorm:"size:2048"      json:"logoUrl"`
	ButtonText string `gorm:"size:255"       json:"buttonText"`
	UserEmail  string `gorm:"size:255;index" json:"userEmail"`
}
