package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/ndewijer/Show-Ledger-Backend/internal/database"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db               *sql.DB
	auditScheduleSet bool
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, auditSchedule string) *SystemService {
	return &SystemService{
		db:               db,
		auditScheduleSet: auditSchedule != "",
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// GetVersionInfo reports the application version, the applied schema
// migration and the optional features that are switched on.
func (s *SystemService) GetVersionInfo() (model.VersionInfo, error) {
	dbVersion, err := database.Version(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features: map[string]bool{
			"correction_history":  true,
			"scheduled_audit":     s.auditScheduleSet,
			"paid_from_cash_lots": true,
		},
	}, nil
}
