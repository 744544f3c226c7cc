package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// cascadeDeleted counts products removed by the farm post-delete cascade.
	cascadeDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farmstand_cascade_deleted_products_total",
		Help: "Products deleted because their owning farm was deleted.",
	})

	// partialWrites counts nested product creations that stopped between the
	// farm write and the product write.
	partialWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farmstand_partial_writes_total",
		Help: "Nested product creations that persisted the farm but not the product.",
	})
)

func init() {
	prometheus.MustRegister(cascadeDeleted, partialWrites)
}

// loggerFrom returns the request-scoped logger carried by ctx, falling back
// to the global logger.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
