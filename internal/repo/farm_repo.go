// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Farm model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Schema validation runs in the model's
// BeforeSave hook and surfaces as *domain.ValidationError.
//
// Error semantics:
//   - When a farm is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/farmstand/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateFarm inserts f, assigning a UUID when f.ID is empty and UTC
// timestamps. A nil product sequence is stored as empty.
func CreateFarm(ctx context.Context, db *gorm.DB, f *domain.Farm) (*domain.Farm, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// ListFarms returns every farm in insertion order.
func ListFarms(ctx context.Context, db *gorm.DB) ([]domain.Farm, error) {
	var out []domain.Farm
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// GetFarm fetches a single farm by ID, or ErrNotFound.
func GetFarm(ctx context.Context, db *gorm.DB, id string) (*domain.Farm, error) {
	var f domain.Farm
	if err := db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// SaveFarm persists every column of f, including the product sequence.
func SaveFarm(ctx context.Context, db *gorm.DB, f *domain.Farm) error {
	f.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Save(f).Error
}

// DeleteFarm removes the farm with the given id and returns the record as it
// was just before deletion, or ErrNotFound when no such farm exists.
func DeleteFarm(ctx context.Context, db *gorm.DB, id string) (*domain.Farm, error) {
	var deleted domain.Farm
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&deleted).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Farm{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}
