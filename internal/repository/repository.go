package repository

import (
	"context"
	"database/sql"
	"time"

	"irrigator/internal/logger"
	"irrigator/internal/models"

	"github.com/spf13/afero"
)

// CredentialStore persists the three network settings, one flat record per
// field. Load never fails; Save reports whether the value reached storage.
type CredentialStore interface {
	Load(field models.Field) string
	Save(field models.Field, value string) bool
}

type ZoneRepo interface {
	Save(ctx context.Context, z models.ZoneState) error
	List(ctx context.Context) ([]models.ZoneState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.DeviceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error)
}

type Repository struct {
	Credentials CredentialStore
	Zones       ZoneRepo
	Events      EventRepo
}

// NewRepository wires the sqlite-backed repos and the credential files kept
// under storageDir on fs.
func NewRepository(db *sql.DB, fs afero.Fs, storageDir string, log *logger.Logger) *Repository {
	return &Repository{
		Credentials: NewCredentialFiles(fs, storageDir, log),
		Zones:       NewZoneSQLite(db),
		Events:      NewJournalSQLite(db),
	}
}
