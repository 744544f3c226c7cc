package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/farmstand/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestProductsStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	_, _, err := ProductsStats(context.Background(), db, "")
	if err == nil {
		t.Fatalf("expected error due to missing products table")
	}
}

func TestProductsStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, &domain.Product{})
	count, maxAt, err := ProductsStats(context.Background(), db, "fruit")
	if err != nil {
		t.Fatalf("ProductsStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestProductsStats_Success_FilterAndMax(t *testing.T) {
	db := newTestDB(t, &domain.Product{})

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max for fruit
	t3 := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)   // max overall (dairy)

	seed := []*domain.Product{
		{ID: "p1", Name: "Melon", Price: 4.99, Category: "fruit", CreatedAt: t1, UpdatedAt: t1},
		{ID: "p2", Name: "Watermelon", Price: 4.99, Category: "fruit", CreatedAt: t2, UpdatedAt: t2},
		{ID: "p3", Name: "Chocolate Milk", Price: 2.69, Category: "dairy", CreatedAt: t3, UpdatedAt: t3},
	}
	for _, p := range seed {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}

	count, maxAt, err := ProductsStats(context.Background(), db, "fruit")
	if err != nil {
		t.Fatalf("ProductsStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected max UpdatedAt %v, got %v", t2, maxAt)
	}

	count, maxAt, err = ProductsStats(context.Background(), db, "")
	if err != nil {
		t.Fatalf("ProductsStats (all) error: %v", err)
	}
	if count != 3 || maxAt == nil || !maxAt.Equal(t3) {
		t.Fatalf("expected (3, %v), got (%d, %v)", t3, count, maxAt)
	}
}
