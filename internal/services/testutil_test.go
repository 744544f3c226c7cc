package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/repo"
)

// newTestStore opens a fresh in-memory SQLite database per test and wraps it
// in a repo.Store.
func newTestStore(t *testing.T) *repo.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, repo.AutoMigrate(db))
	return repo.NewStore(db)
}

var errBoom = errors.New("boom")

// flakyStore fails selected writes while delegating everything else.
type flakyStore struct {
	*repo.Store
	failCreateProduct bool
	failSaveFarm      bool
	failCascade       bool
}

func (s *flakyStore) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if s.failCreateProduct {
		return nil, errBoom
	}
	return s.Store.CreateProduct(ctx, p)
}

func (s *flakyStore) SaveFarm(ctx context.Context, f *domain.Farm) error {
	if s.failSaveFarm {
		return errBoom
	}
	return s.Store.SaveFarm(ctx, f)
}

func (s *flakyStore) DeleteProductsByIDs(ctx context.Context, ids []string) (int64, error) {
	if s.failCascade {
		return 0, errBoom
	}
	return s.Store.DeleteProductsByIDs(ctx, ids)
}

func countProducts(t *testing.T, s *repo.Store) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.Model(&domain.Product{}).Count(&n).Error)
	return n
}
