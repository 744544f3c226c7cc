// Package services – FarmService
//
// This file implements FarmService, which owns the farm lifecycle: listing,
// creation, resolution of a farm's ordered product sequence, deletion with
// post-delete hooks, and creation of products nested under a farm.
//
// Deletion cascades through an explicit hook list rather than store-level
// triggers. NewFarmService registers the product cascade; callers may append
// further hooks with OnDelete.
//
// Observability: public methods are OpenTelemetry-instrumented, cascade and
// partial-write outcomes are counted in Prometheus and logged.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/repo"
)

// FarmHook runs after a farm has been deleted, with the record as it was just
// before deletion.
type FarmHook func(ctx context.Context, deleted *domain.Farm) error

// FarmService coordinates farm persistence and the farm/product linkage.
type FarmService struct {
	Farms    FarmStore
	Products ProductStore

	afterDelete []FarmHook
}

// NewFarmService wires a FarmService with the product cascade registered as
// its first post-delete hook.
func NewFarmService(farms FarmStore, products ProductStore) *FarmService {
	s := &FarmService{Farms: farms, Products: products}
	s.OnDelete(s.cascadeProducts)
	return s
}

// OnDelete appends h to the post-delete hooks. Hooks run in registration order.
func (s *FarmService) OnDelete(h FarmHook) {
	s.afterDelete = append(s.afterDelete, h)
}

// AppendResult describes what a nested product creation persisted.
type AppendResult struct {
	Farm         *domain.Farm
	Product      *domain.Product
	FarmSaved    bool
	ProductSaved bool
}

func (s *FarmService) tracer() trace.Tracer { return otel.Tracer("services/FarmService") }

// List returns all farms in insertion order.
func (s *FarmService) List(ctx context.Context) ([]domain.Farm, error) {
	ctx, span := s.tracer().Start(ctx, "List")
	defer span.End()

	farms, err := s.Farms.ListFarms(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("farms.count", len(farms)))
	return farms, nil
}

// Create persists a farm. The store validates it and reports schema
// violations as *domain.ValidationError.
func (s *FarmService) Create(ctx context.Context, f *domain.Farm) (*domain.Farm, error) {
	ctx, span := s.tracer().Start(ctx, "Create")
	defer span.End()

	if f.ProductIDs == nil {
		f.ProductIDs = []string{}
	}
	out, err := s.Farms.CreateFarm(ctx, f)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("farm.id", out.ID))
	return out, nil
}

// GetWithProducts returns the farm with Products resolved in sequence order.
// Ids without a product are skipped. A missing farm yields (nil, nil).
func (s *FarmService) GetWithProducts(ctx context.Context, id string) (*domain.Farm, error) {
	ctx, span := s.tracer().Start(ctx, "GetWithProducts",
		trace.WithAttributes(attribute.String("farm.id", id)),
	)
	defer span.End()

	farm, err := s.Farms.GetFarm(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	products, err := s.Products.GetProductsByIDs(ctx, farm.ProductIDs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	farm.Products = products
	return farm, nil
}

// Get returns the farm without resolving products, or ErrFarmNotFound.
func (s *FarmService) Get(ctx context.Context, id string) (*domain.Farm, error) {
	farm, err := s.Farms.GetFarm(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrFarmNotFound
	}
	return farm, err
}

// Delete removes the farm and then runs every post-delete hook with the
// deleted record. Deleting a missing farm is a no-op.
func (s *FarmService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer().Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("farm.id", id)),
	)
	defer span.End()

	deleted, err := s.Farms.DeleteFarm(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		span.RecordError(err)
		return err
	}
	for _, h := range s.afterDelete {
		if err := h(ctx, deleted); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "post-delete hook failed")
			return fmt.Errorf("farm %s post-delete: %w", id, err)
		}
	}
	return nil
}

// cascadeProducts deletes the products in the deleted farm's sequence.
// Products of other farms and standalone products are untouched.
func (s *FarmService) cascadeProducts(ctx context.Context, deleted *domain.Farm) error {
	if len(deleted.ProductIDs) == 0 {
		return nil
	}
	n, err := s.Products.DeleteProductsByIDs(ctx, deleted.ProductIDs)
	if err != nil {
		return fmt.Errorf("cascade products: %w", err)
	}
	cascadeDeleted.Add(float64(n))
	loggerFrom(ctx).Info().
		Str("farm_id", deleted.ID).
		Int("linked", len(deleted.ProductIDs)).
		Int64("deleted", n).
		Msg("farm products cascaded")
	return nil
}

// AppendProduct creates a product under a farm: the product id is appended
// to the farm's sequence and the product points back to the farm. The farm is
// saved first and the product second. The product is validated before either
// write, so a schema violation leaves both untouched. A failure between the
// two writes returns the partial result alongside a *PartialWriteError.
func (s *FarmService) AppendProduct(ctx context.Context, farmID string, in domain.ProductInput) (*AppendResult, error) {
	ctx, span := s.tracer().Start(ctx, "AppendProduct",
		trace.WithAttributes(attribute.String("farm.id", farmID)),
	)
	defer span.End()

	farm, err := s.Farms.GetFarm(ctx, farmID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrFarmNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	product := &domain.Product{ID: uuid.NewString()}
	in.Apply(product)
	product.FarmID = &farm.ID
	if err := product.Validate(); err != nil {
		return nil, err
	}

	res := &AppendResult{Farm: farm, Product: product}
	farm.AddProduct(product.ID)
	if err := s.Farms.SaveFarm(ctx, farm); err != nil {
		span.RecordError(err)
		return nil, err
	}
	res.FarmSaved = true

	if _, err := s.Products.CreateProduct(ctx, product); err != nil {
		partialWrites.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "partial write")
		loggerFrom(ctx).Error().Err(err).
			Str("farm_id", farm.ID).
			Str("product_id", product.ID).
			Msg("product write failed after farm write")
		return res, &PartialWriteError{
			FarmID:    farm.ID,
			ProductID: product.ID,
			FarmSaved: true,
			Err:       err,
		}
	}
	res.ProductSaved = true
	span.SetAttributes(attribute.String("product.id", product.ID))
	return res, nil
}
