// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/farmstand/internal/domain"
)

// ProductsStats returns aggregate metadata for the product list: the number
// of rows and the maximum UpdatedAt among them. A non-empty category scopes
// both to that category. When there are no rows, the count is 0 and
// maxUpdatedAt is nil.
func ProductsStats(ctx context.Context, db *gorm.DB, category string) (count int64, maxUpdatedAt *time.Time, err error) {
	scope := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&domain.Product{})
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q
	}

	if err = scope().Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = scope().Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
