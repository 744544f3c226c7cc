// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Product model.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/farmstand/internal/domain"
)

// CreateProduct inserts p with a fresh UUID (when unset) and UTC timestamps.
func CreateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns products in insertion order. A non-empty category
// filters by exact, case-sensitive equality.
func ListProducts(ctx context.Context, db *gorm.DB, category string) ([]domain.Product, error) {
	var out []domain.Product
	q := db.WithContext(ctx).Order("created_at asc, id asc")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&out).Error
	return out, err
}

// GetProduct fetches a product by ID, or ErrNotFound.
func GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var p domain.Product
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductsByIDs returns the products whose ids appear in ids, ordered as
// in ids. Ids with no matching row are skipped.
func GetProductsByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	var rows []domain.Product
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return OrderByIDs(rows, ids), nil
}

// SaveProduct persists every column of p.
func SaveProduct(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Save(p).Error
}

// DeleteProduct removes a product and returns the deleted record, or
// ErrNotFound. Farms referencing the product are left untouched.
func DeleteProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var deleted domain.Product
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&deleted).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

// DeleteProductsByIDs removes every product whose id is in ids and returns the
// number of rows deleted.
func DeleteProductsByIDs(ctx context.Context, db *gorm.DB, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Product{})
	return res.RowsAffected, res.Error
}

// OrderByIDs arranges rows to follow ids, dropping ids without a row and
// keeping duplicates in ids only once. The document store shares it.
func OrderByIDs(rows []domain.Product, ids []string) []domain.Product {
	byID := make(map[string]domain.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	out := make([]domain.Product, 0, len(rows))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		if p, ok := byID[id]; ok {
			out = append(out, p)
			seen[id] = struct{}{}
		}
	}
	return out
}
