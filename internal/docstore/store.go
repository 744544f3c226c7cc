// Package docstore implements the farm and product stores on MongoDB.
//
// Documents share the domain types with the relational stores: a farm keeps
// its ordered product references in a "products" array and a product may
// point back to its farm through "farm". Schema validation runs before every
// write, so both backends reject the same documents with the same
// *domain.ValidationError.
//
// Error semantics mirror package repo: a missing document surfaces as
// repo.ErrNotFound and a unique-index violation on the idempotency
// collection as repo.ErrDuplicate.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/repo"
)

// Collection names.
const (
	FarmsCollection       = "farms"
	ProductsCollection    = "products"
	IdempotencyCollection = "idempotency"
)

// Store serves farms, products and idempotency records from one database.
type Store struct {
	db *mongo.Database
}

// New returns a Store over db.
func New(db *mongo.Database) *Store { return &Store{db: db} }

// Connect dials uri, verifies the primary is reachable and returns the
// client. The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the secondary indexes the queries rely on. Expired
// idempotency records are reaped by a TTL index on expires_at.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.db.Collection(ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("products indexes: %w", err)
	}
	if _, err := s.db.Collection(FarmsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	}); err != nil {
		return fmt.Errorf("farms indexes: %w", err)
	}
	if _, err := s.db.Collection(IdempotencyCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "scope", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("ux_scope_key"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}); err != nil {
		return fmt.Errorf("idempotency indexes: %w", err)
	}
	return nil
}

func (s *Store) farms() *mongo.Collection    { return s.db.Collection(FarmsCollection) }
func (s *Store) products() *mongo.Collection { return s.db.Collection(ProductsCollection) }

// notFound maps the driver's empty-result error to repo.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repo.ErrNotFound
	}
	return err
}

var insertionOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// ListFarms returns every farm in insertion order.
func (s *Store) ListFarms(ctx context.Context) ([]domain.Farm, error) {
	cur, err := s.farms().Find(ctx, bson.D{}, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, err
	}
	out := []domain.Farm{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFarm validates and inserts f, assigning an id and UTC timestamps.
func (s *Store) CreateFarm(ctx context.Context, f *domain.Farm) (*domain.Farm, error) {
	if f.ProductIDs == nil {
		f.ProductIDs = []string{}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	if _, err := s.farms().InsertOne(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFarm fetches a farm by id, or repo.ErrNotFound.
func (s *Store) GetFarm(ctx context.Context, id string) (*domain.Farm, error) {
	var f domain.Farm
	if err := s.farms().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&f); err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// SaveFarm validates f and replaces the stored document.
func (s *Store) SaveFarm(ctx context.Context, f *domain.Farm) error {
	if f.ProductIDs == nil {
		f.ProductIDs = []string{}
	}
	if err := f.Validate(); err != nil {
		return err
	}
	f.UpdatedAt = time.Now().UTC()
	res, err := s.farms().ReplaceOne(ctx, bson.D{{Key: "_id", Value: f.ID}}, f)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteFarm removes a farm and returns the document as it was just before
// deletion, or repo.ErrNotFound.
func (s *Store) DeleteFarm(ctx context.Context, id string) (*domain.Farm, error) {
	var deleted domain.Farm
	if err := s.farms().FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&deleted); err != nil {
		return nil, notFound(err)
	}
	return &deleted, nil
}

func categoryFilter(category string) bson.D {
	if category == "" {
		return bson.D{}
	}
	return bson.D{{Key: "category", Value: category}}
}

// ListProducts returns products in insertion order, optionally restricted to
// one category (exact match).
func (s *Store) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	cur, err := s.products().Find(ctx, categoryFilter(category), options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct validates and inserts p.
func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if _, err := s.products().InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct fetches a product by id, or repo.ErrNotFound.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := s.products().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetProductsByIDs resolves ids in order, skipping ids with no document.
func (s *Store) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	cur, err := s.products().Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, err
	}
	var rows []domain.Product
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return repo.OrderByIDs(rows, ids), nil
}

// SaveProduct validates p and replaces the stored document.
func (s *Store) SaveProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := s.products().ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product and returns it, or repo.ErrNotFound.
// Farms that reference the product keep the dangling id.
func (s *Store) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	var deleted domain.Product
	if err := s.products().FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&deleted); err != nil {
		return nil, notFound(err)
	}
	return &deleted, nil
}

// DeleteProductsByIDs removes every product in ids and reports how many
// documents went away.
func (s *Store) DeleteProductsByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.products().DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ProductsStats returns the number of products and the newest updated_at,
// optionally scoped to a category. With no documents maxUpdatedAt is nil.
func (s *Store) ProductsStats(ctx context.Context, category string) (int64, *time.Time, error) {
	filter := categoryFilter(category)
	count, err := s.products().CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}
	var row struct {
		UpdatedAt time.Time `bson:"updated_at"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetProjection(bson.D{{Key: "updated_at", Value: 1}})
	if err := s.products().FindOne(ctx, filter, opts).Decode(&row); err != nil {
		return 0, nil, notFound(err)
	}
	t := row.UpdatedAt.UTC()
	return count, &t, nil
}
