package handlers

import (
	"context"
	"time"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/services"
)

//
// Service contracts (context-aware)
//

// FarmService defines the farm operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FarmService interface {
	// List returns every farm in insertion order.
	List(ctx context.Context) ([]domain.Farm, error)
	// Create persists a farm; store validation failures are *domain.ValidationError.
	Create(ctx context.Context, f *domain.Farm) (*domain.Farm, error)
	// GetWithProducts resolves the farm's products; a missing farm is (nil, nil).
	GetWithProducts(ctx context.Context, id string) (*domain.Farm, error)
	// Get returns the bare farm or services.ErrFarmNotFound.
	Get(ctx context.Context, id string) (*domain.Farm, error)
	// Delete removes the farm and cascades to its products.
	Delete(ctx context.Context, id string) error
	// AppendProduct creates a product owned by the farm.
	AppendProduct(ctx context.Context, farmID string, in domain.ProductInput) (*services.AppendResult, error)
}

// ProductService defines the product operations consumed by HTTP handlers.
type ProductService interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	Stats(ctx context.Context, category string) (int64, *time.Time, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetWithFarm(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

//
// Handler wiring
//

// Handlers groups the farm and product pages.
type Handlers struct {
	farms    FarmService
	products ProductService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(farms FarmService, products ProductService) *Handlers {
	return &Handlers{farms: farms, products: products}
}
