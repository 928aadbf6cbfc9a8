package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Backend types.
const (
	TypeYAML     = "yaml"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// NewStore creates the config store for storageType. SQL types use db,
// which must already be connected and migrated.
func NewStore(storageType, configsDir string, db *gorm.DB, log *slog.Logger) (Store, error) {
	switch storageType {
	case TypeYAML, "":
		return NewYAMLStore(configsDir, log)
	case TypeSQLite, TypePostgres:
		if db == nil {
			return nil, fmt.Errorf("storage: %s store needs a database connection", storageType)
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
