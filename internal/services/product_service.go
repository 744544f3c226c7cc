// Package services – ProductService
//
// This file implements ProductService: category listing, standalone creation,
// lookup with the owning farm resolved, update and delete. Product deletion
// does not touch farms; a farm keeps the dangling id, which resolution skips.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/repo"
)

// AllCategories is the list label used when no category filter applies.
const AllCategories = "All"

// CategoryLabel returns the display label for a category filter.
func CategoryLabel(category string) string {
	if category == "" {
		return AllCategories
	}
	return category
}

// ProductService provides product-level operations.
type ProductService struct {
	Store ProductStore
	Farms FarmStore
}

// NewProductService constructs a ProductService.
func NewProductService(store ProductStore, farms FarmStore) *ProductService {
	return &ProductService{Store: store, Farms: farms}
}

func (s *ProductService) tracer() trace.Tracer { return otel.Tracer("services/ProductService") }

// List returns products in insertion order; a non-empty category restricts
// the result to exact matches.
func (s *ProductService) List(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := s.tracer().Start(ctx, "List",
		trace.WithAttributes(attribute.String("product.category", category)),
	)
	defer span.End()

	items, err := s.Store.ListProducts(ctx, category)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return items, nil
}

// Stats returns the product count and newest update time for category.
func (s *ProductService) Stats(ctx context.Context, category string) (int64, *time.Time, error) {
	return s.Store.ProductsStats(ctx, category)
}

// Create persists a standalone product with no farm link.
func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	ctx, span := s.tracer().Start(ctx, "Create")
	defer span.End()

	p := &domain.Product{}
	in.Apply(p)
	out, err := s.Store.CreateProduct(ctx, p)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("product.id", out.ID))
	return out, nil
}

// Get returns the raw product or ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Store.GetProduct(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// GetWithFarm returns the product with its owning farm resolved. A back
// reference to a farm that no longer exists resolves to no farm.
func (s *ProductService) GetWithFarm(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer().Start(ctx, "GetWithFarm",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.FarmID == nil || *p.FarmID == "" {
		return p, nil
	}
	farm, err := s.Farms.GetFarm(ctx, *p.FarmID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
	case err != nil:
		span.RecordError(err)
		return nil, err
	default:
		p.Farm = farm
	}
	return p, nil
}

// Update overwrites name, price and category of an existing product. The
// store re-validates the result before writing.
func (s *ProductService) Update(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	ctx, span := s.tracer().Start(ctx, "Update",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(p)
	if err := s.Store.SaveProduct(ctx, p); err != nil {
		span.RecordError(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a product. Deleting a missing product is a no-op.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer().Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	if _, err := s.Store.DeleteProduct(ctx, id); err != nil && !errors.Is(err, repo.ErrNotFound) {
		span.RecordError(err)
		return err
	}
	return nil
}

// ReplaceAll deletes every existing product and inserts items in order.
// It returns the number of products inserted.
func (s *ProductService) ReplaceAll(ctx context.Context, items []domain.Product) (int, error) {
	existing, err := s.Store.ListProducts(ctx, "")
	if err != nil {
		return 0, err
	}
	ids := make([]string, 0, len(existing))
	for _, p := range existing {
		ids = append(ids, p.ID)
	}
	if _, err := s.Store.DeleteProductsByIDs(ctx, ids); err != nil {
		return 0, err
	}
	for i := range items {
		p := items[i]
		if _, err := s.Store.CreateProduct(ctx, &p); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
