// Package setting implements the settings store: seeding, listing and the
// admin only update of the settings document.
package setting

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/db/models"
)

const (
	// AdminEmail is the only user allowed to update settings.
	AdminEmail = "admin@gmail.com"

	// DefaultLogoURL is the logo of the seeded settings record.
	DefaultLogoURL = "https://example.com/logo.png"

	// DefaultButtonText is the button label of the seeded settings record.
	DefaultButtonText = "Click me!"

	userEmailQueryPattern = "user_email = ?"
)

var (
	// ErrSettingNotFound is returned when no settings row matches the user email.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrPermissionDenied is returned when someone other than AdminEmail tries an update.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// UpdateRequest is the body of a settings update.
// Empty LogoURL or ButtonText keep the stored value.
type UpdateRequest struct {
	LogoURL    string `json:"logoUrl"`
	ButtonText string `json:"buttonText"`
	UserEmail  string `json:"userEmail"`
}

// Initialize inserts the default admin settings when the table is empty.
// It reports whether a record was created.
func Initialize(db *gorm.DB) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return false, pkgerrors.Wrap(err, "failed to count settings")
	}

	if count > 0 {
		return false, nil
	}

	seed := models.Settings{
		LogoURL:    DefaultLogoURL,
		ButtonText: DefaultButtonText,
		UserEmail:  AdminEmail,
	}
	if err := db.Create(&seed).Error; err != nil {
		return false, pkgerrors.Wrap(err, "failed to create default settings")
	}

	return true, nil
}

// GetAll retrieves all settings from the database.
func GetAll(db *gorm.DB) ([]models.Settings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	settings := []models.Settings{}
	if err := db.Find(&settings).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list settings")
	}

	return settings, nil
}

// GetByUserEmail retrieves the first settings row owned by userEmail.
func GetByUserEmail(db *gorm.DB, userEmail string) (*models.Settings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var setting models.Settings
	result := db.Where(userEmailQueryPattern, userEmail).Order("id").First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, pkgerrors.Wrap(result.Error, "failed to get settings")
	}

	return &setting, nil
}

// Update merges req into the settings row of req.UserEmail.
// Only AdminEmail may update; the user email itself is never changed.
func Update(db *gorm.DB, req UpdateRequest) (*models.Settings, error) {
	if req.UserEmail != AdminEmail {
		return nil, ErrPermissionDenied
	}

	setting, err := GetByUserEmail(db, req.UserEmail)
	if err != nil {
		return nil, err
	}

	if req.LogoURL != "" {
		setting.LogoURL = req.LogoURL
	}

	if req.ButtonText != "" {
		setting.ButtonText = req.ButtonText
	}

	if err = db.Save(setting).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save settings")
	}

	return setting, nil
}
