package services

import (
	"context"
	"time"

	"github.com/tbourn/farmstand/internal/domain"
)

// FarmStore is the persistence contract FarmService needs. repo.Store and
// docstore.Store both implement it. Missing records surface as
// repo.ErrNotFound.
type FarmStore interface {
	// ListFarms returns every farm in insertion order.
	ListFarms(ctx context.Context) ([]domain.Farm, error)
	// CreateFarm validates and inserts a farm.
	CreateFarm(ctx context.Context, f *domain.Farm) (*domain.Farm, error)
	// GetFarm fetches a farm by id.
	GetFarm(ctx context.Context, id string) (*domain.Farm, error)
	// SaveFarm validates and persists every field of f.
	SaveFarm(ctx context.Context, f *domain.Farm) error
	// DeleteFarm removes a farm and returns the record as it was.
	DeleteFarm(ctx context.Context, id string) (*domain.Farm, error)
}

// ProductStore is the persistence contract ProductService needs.
type ProductStore interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	// GetProductsByIDs resolves ids in order, skipping ids with no record.
	GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	SaveProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)
	DeleteProductsByIDs(ctx context.Context, ids []string) (int64, error)
	// ProductsStats returns count and newest updated_at, optionally per category.
	ProductsStats(ctx context.Context, category string) (int64, *time.Time, error)
}
