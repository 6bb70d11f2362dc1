//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/catalog"
)

var CatalogSet = wire.NewSet(
	NewCatalogLoader,
	NewCatalogSource,
	wire.Bind(new(domain.CatalogSource), new(*catalog.FileSource)),
	NewCatalogWatcher,
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
)

var RelaySet = wire.NewSet(
	NewAssistant,
	NewIdentifier,
	NewAPIServer,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	CatalogSet,
	RelaySet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
