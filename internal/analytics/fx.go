package analytics

import (
	"github.com/reachway/reachway/internal/analytics/repository"
	"github.com/reachway/reachway/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
