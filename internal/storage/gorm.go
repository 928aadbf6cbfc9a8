package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dynfpv/extension/internal/model"
	"gorm.io/gorm"
)

// GormStore keeps configs in the vehicle_configs table (SQLite or Postgres).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a connected, migrated database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// LoadAll returns the configs in their saved order.
func (s *GormStore) LoadAll(ctx context.Context) ([]model.VehicleConfig, error) {
	var rows []model.VehicleConfigRecord
	if err := s.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: query configs: %w", err)
	}
	out := make([]model.VehicleConfig, len(rows))
	for i, r := range rows {
		out[i] = r.ToConfig()
	}
	return out, nil
}

// Save upserts cfg by name. A new config goes to the end of the list.
func (s *GormStore) Save(ctx context.Context, cfg model.VehicleConfig) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := s.positionFor(tx, cfg.Name)
		if err != nil {
			return err
		}
		return upsert(tx, ForSave(cfg), position)
	})
}

// SaveAll upserts every config with its list index as position.
func (s *GormStore) SaveAll(ctx context.Context, configs []model.VehicleConfig) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, c := range configs {
			if err := upsert(tx, ForSave(c), i); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the named config.
func (s *GormStore) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Unscoped().Where("name = ?", name).Delete(&model.VehicleConfigRecord{})
	if res.Error != nil {
		return fmt.Errorf("storage: delete %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Close leaves the connection to its owner.
func (s *GormStore) Close() error {
	return nil
}

func (s *GormStore) positionFor(tx *gorm.DB, name string) (int, error) {
	var existing model.VehicleConfigRecord
	err := tx.Where("name = ?", name).Take(&existing).Error
	if err == nil {
		return existing.Position, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("storage: find %s: %w", name, err)
	}

	var count int64
	if err := tx.Model(&model.VehicleConfigRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("storage: count configs: %w", err)
	}
	return int(count), nil
}

func upsert(tx *gorm.DB, cfg model.VehicleConfig, position int) error {
	row := model.ToRecord(cfg, position)

	var existing model.VehicleConfigRecord
	err := tx.Where("name = ?", cfg.Name).Take(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("storage: update %s: %w", cfg.Name, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("storage: insert %s: %w", cfg.Name, err)
		}
	default:
		return fmt.Errorf("storage: find %s: %w", cfg.Name, err)
	}
	return nil
}
