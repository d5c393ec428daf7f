package campaign

import (
	"github.com/reachway/reachway/internal/campaign/repository"
	"github.com/reachway/reachway/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
