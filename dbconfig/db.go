package dbconfig

import (
	"github.com/pkg/errors"

	_ "github.com/lib/pq"
)

var (
	ErrDatabaseConnect   = errors.New("failed to connect to database")
	ErrInvalidPresetName = errors.New("invalid preset name")
)

// DBConfig loads submission endpoints and fee presets from postgres. Presets
// are read rarely (startup, operator reload), so each call opens its own
// short-lived connection instead of holding a pool.
type DBConfig struct {
	dbConnStr string
}

// NewDBConfig creates a new DBConfig instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *DBConfig: a pointer to the newly created DBConfig instance.
// - error: an error if the creation of the DBConfig instance fails.
func NewDBConfig(connStr string) (*DBConfig, error) {
	return &DBConfig{
		dbConnStr: connStr,
	}, nil
}
