// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file exposes Store, which binds the repository free
// functions to a *gorm.DB so services can depend on narrow interfaces
// instead of the concrete GORM handle.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/farmstand/internal/domain"
)

// Store proxies the package functions over a fixed *gorm.DB.
type Store struct {
	DB *gorm.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

// ListFarms proxies ListFarms.
func (s *Store) ListFarms(ctx context.Context) ([]domain.Farm, error) {
	return ListFarms(ctx, s.DB)
}

// CreateFarm proxies CreateFarm.
func (s *Store) CreateFarm(ctx context.Context, f *domain.Farm) (*domain.Farm, error) {
	return CreateFarm(ctx, s.DB, f)
}

// GetFarm proxies GetFarm.
func (s *Store) GetFarm(ctx context.Context, id string) (*domain.Farm, error) {
	return GetFarm(ctx, s.DB, id)
}

// SaveFarm proxies SaveFarm.
func (s *Store) SaveFarm(ctx context.Context, f *domain.Farm) error {
	return SaveFarm(ctx, s.DB, f)
}

// DeleteFarm proxies DeleteFarm.
func (s *Store) DeleteFarm(ctx context.Context, id string) (*domain.Farm, error) {
	return DeleteFarm(ctx, s.DB, id)
}

// ListProducts proxies ListProducts.
func (s *Store) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	return ListProducts(ctx, s.DB, category)
}

// CreateProduct proxies CreateProduct.
func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	return CreateProduct(ctx, s.DB, p)
}

// GetProduct proxies GetProduct.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return GetProduct(ctx, s.DB, id)
}

// GetProductsByIDs proxies GetProductsByIDs.
func (s *Store) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	return GetProductsByIDs(ctx, s.DB, ids)
}

// SaveProduct proxies SaveProduct.
func (s *Store) SaveProduct(ctx context.Context, p *domain.Product) error {
	return SaveProduct(ctx, s.DB, p)
}

// DeleteProduct proxies DeleteProduct.
func (s *Store) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	return DeleteProduct(ctx, s.DB, id)
}

// DeleteProductsByIDs proxies DeleteProductsByIDs.
func (s *Store) DeleteProductsByIDs(ctx context.Context, ids []string) (int64, error) {
	return DeleteProductsByIDs(ctx, s.DB, ids)
}

// ProductsStats proxies ProductsStats.
func (s *Store) ProductsStats(ctx context.Context, category string) (int64, *time.Time, error) {
	return ProductsStats(ctx, s.DB, category)
}

// GetIdempotency proxies GetIdempotency.
func (s *Store) GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return GetIdempotency(ctx, s.DB, scope, key, now)
}

// CreateIdempotency proxies CreateIdempotency.
func (s *Store) CreateIdempotency(ctx context.Context, scope, key, location string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	return CreateIdempotency(ctx, s.DB, scope, key, location, status, ttl)
}
