package message

import (
	"github.com/reachway/reachway/internal/message/repository"
	"github.com/reachway/reachway/internal/message/service"
	"go.uber.org/fx"
)

var Module = fx.Module("message.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
