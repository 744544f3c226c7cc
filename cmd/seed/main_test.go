package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/farmstand/internal/config"
	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/storage"
)

func TestRun_ReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{Driver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "seed.db")}

	store, closeStore, err := storage.Open(ctx, cfg, false)
	require.NoError(t, err)
	_, err = store.CreateProduct(ctx, &domain.Product{Name: "Stale", Price: 9, Category: "dairy"})
	require.NoError(t, err)
	require.NoError(t, closeStore(ctx))

	for i := 0; i < 2; i++ {
		n, err := run(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, len(seedProducts), n)
	}

	store, closeStore, err = storage.Open(ctx, cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore(ctx) })

	items, err := store.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, len(seedProducts))
	names := make([]string, 0, len(items))
	for _, p := range items {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Fairy Eggplant", "Organic Goddess Melon", "Watermelon", "Celery", "Chocolate Milk"}, names)
}

func TestRun_ReportsStoreErrors(t *testing.T) {
	ctx := context.Background()

	_, err := run(ctx, config.StoreConfig{Driver: "cassandra"})
	assert.Error(t, err)

	_, err = run(ctx, config.StoreConfig{Driver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "missing", "seed.db")})
	assert.Error(t, err)
}
