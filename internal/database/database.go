// Package database opens the SQL store used for vehicle configs and session
// statistics: Postgres when configured, SQLite otherwise.
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dynfpv/extension/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and addresses the database.
type Config struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// Manager handles database connections and operations.
type Manager struct {
	DB      *gorm.DB
	SqlDB   *sql.DB
	IsValid bool
	// Fallback is set when Postgres was configured but SQLite is in use.
	Fallback bool
	Logger   zerolog.Logger

	cfg Config
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger, cfg Config) *Manager {
	return &Manager{
		Logger: log,
		cfg:    cfg,
	}
}

// Connect opens the configured database. A Postgres failure falls back to
// the SQLite file.
func (m *Manager) Connect() error {
	var err error

	switch m.cfg.Driver {
	case DriverPostgres:
		m.DB, err = OpenPostgres(m.cfg.DSN())
		if err == nil {
			err = ping(m.DB)
		}
		if err != nil {
			m.Logger.Error().Err(err).Str("host", m.cfg.Host).Msg("Failed to connect to Postgres DB, trying SQLite")
			m.Fallback = true
			m.DB, err = m.openSQLite()
		}
	case DriverSQLite, "":
		m.DB, err = m.openSQLite()
	default:
		return fmt.Errorf("database: unknown driver %q", m.cfg.Driver)
	}
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("database: connect: %w", err)
	}

	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("database: sql interface: %w", err)
	}
	if m.DB.Dialector.Name() == DriverPostgres {
		m.SqlDB.SetMaxOpenConns(4)
	} else {
		m.SqlDB.SetMaxOpenConns(1)
	}

	m.IsValid = true
	m.Logger.Info().Str("driver", m.DB.Dialector.Name()).Msg("Connected to database")
	return nil
}

func (m *Manager) openSQLite() (*gorm.DB, error) {
	if m.cfg.SQLitePath == "" {
		return nil, errors.New("sqlite path not set")
	}
	db, err := OpenSQLite(m.cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	m.Logger.Info().Str("path", m.cfg.SQLitePath).Msg("Using local SQLite DB")
	return db, nil
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// OpenPostgres returns a connection to a Postgres database.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

// OpenSQLite returns a connection to a SQLite database file.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 2000;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	return db, nil
}

// Setup migrates the schema.
func (m *Manager) Setup() error {
	if m.DB == nil {
		return errors.New("database: not connected")
	}
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		m.IsValid = false
		return fmt.Errorf("database: migrate schema: %w", err)
	}
	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// RecordStats appends a session statistics row.
func (m *Manager) RecordStats(s *model.SessionStats) error {
	if !m.IsValid {
		return errors.New("database: not connected")
	}
	if err := m.DB.Create(s).Error; err != nil {
		return fmt.Errorf("database: record stats: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	m.IsValid = false
	return m.SqlDB.Close()
}
