// Command seed replaces the product catalog with a small development data set.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/farmstand/internal/config"
	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/services"
	"github.com/tbourn/farmstand/internal/storage"
	"github.com/tbourn/farmstand/internal/sysutil"
)

var seedProducts = []domain.Product{
	{Name: "Fairy Eggplant", Price: 1.00, Category: "vegetable"},
	{Name: "Organic Goddess Melon", Price: 4.99, Category: "fruit"},
	{Name: "Watermelon", Price: 4.99, Category: "fruit"},
	{Name: "Celery", Price: 1.50, Category: "vegetable"},
	{Name: "Chocolate Milk", Price: 2.69, Category: "dairy"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)

	n, err := run(context.Background(), cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Int("inserted", n).Msg("seed failed")
	}
	log.Info().Int("inserted", n).Str("driver", cfg.Store.Driver).Msg("products seeded")
}

// run opens the configured store, replaces the catalog and closes the store.
// It returns how many seed products were inserted.
func run(ctx context.Context, cfg config.StoreConfig) (int, error) {
	store, closeStore, err := storage.Open(ctx, cfg, false)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := closeStore(ctx); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()
	return services.NewProductService(store, store).ReplaceAll(ctx, seedProducts)
}
