// Package email implements the registry of captured subscriber emails.
package email

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/db/models"
)

const (
	emailQueryPattern = "email = ?"
)

var (
	// ErrEmailNotFound is returned when an email is not registered.
	ErrEmailNotFound = errors.New("email not found")
	// ErrEmailAlreadyExists is returned when attempting to register an email twice.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateRequest is the body of an email registration.
type CreateRequest struct {
	Email string `json:"email" validate:"required"`
}

// Get retrieves a registered email by its exact value.
func Get(db *gorm.DB, address string) (*models.Email, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var record models.Email
	result := db.Where(emailQueryPattern, address).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}

		return nil, pkgerrors.Wrap(result.Error, "failed to get email")
	}

	return &record, nil
}

// GetAll retrieves all registered emails in store order.
func GetAll(db *gorm.DB) ([]models.Email, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	emails := []models.Email{}
	if err := db.Find(&emails).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list emails")
	}

	return emails, nil
}

// Create registers address unless it is already known.
func Create(db *gorm.DB, address string) (*models.Email, error) {
	_, err := Get(db, address)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}

	if !errors.Is(err, ErrEmailNotFound) {
		return nil, err
	}

	record := &models.Email{Email: address}

	if err = db.Create(record).Error; err != nil {
		// lost a race against a concurrent insert of the same address
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, pkgerrors.Wrap(err, "failed to create email")
	}

	return record, nil
}
