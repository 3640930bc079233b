package labapp

import (
	"context"

	"github.com/advdv/labhttp/catalog"
	"github.com/advdv/labhttp/loader"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewCatalogSource opens the source named by LABHTTP_CATALOG_SOURCE.
func NewCatalogSource(env Env, awsCfg AWSConfigFunc) (loader.Source, error) {
	return loader.Open(env.CatalogSource, loader.Deps{
		JSONPath:  env.CatalogJSONPath,
		AWSConfig: awsCfg,
	})
}

// loadCatalogHook fills the registry before the server starts listening. A source that fails
// to load aborts the start.
func loadCatalogHook(lc fx.Lifecycle, src loader.Source, reg *catalog.Registry, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			added, skipped, err := loader.Populate(ctx, src, reg)
			if err != nil {
				return err
			}

			for _, id := range skipped {
				logger.Warn("skipped duplicate equipment id", zap.String("id", id))
			}

			logger.Info("catalog loaded",
				zap.Stringer("source", src),
				zap.Int("added", added),
				zap.Int("skipped", len(skipped)))

			return nil
		},
	})
}
