package company

import (
	"github.com/reachway/reachway/internal/company/repository"
	"github.com/reachway/reachway/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
