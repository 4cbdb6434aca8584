package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/db/controller/setting"
)

// seed creates the default settings when the table is empty.
// Failures are logged only; the service starts with whatever is stored.
func seed(db *gorm.DB) {
	created, err := setting.Initialize(db)
	if err != nil {
		log.Error().Err(err).Msg("error initializing data")
		return
	}

	if created {
		log.Info().Str("userEmail", setting.AdminEmail).Msg("default settings created")
	}
}
