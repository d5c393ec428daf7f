package prospect

import (
	"github.com/reachway/reachway/internal/prospect/repository"
	"github.com/reachway/reachway/internal/prospect/service"
	"go.uber.org/fx"
)

var Module = fx.Module("prospect.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
