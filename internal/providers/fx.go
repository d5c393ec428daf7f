package providers

import (
	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/providers/llm"
	"github.com/reachway/reachway/internal/providers/peopledata"
	"github.com/reachway/reachway/internal/providers/scraper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers",
	fx.Provide(
		func(cfg config.Config, log *zap.Logger) *peopledata.Client {
			return peopledata.NewClient(cfg.PeopleData, log)
		},
		func(cfg config.Config, log *zap.Logger) *llm.Client {
			return llm.NewClient(cfg.LLM, log)
		},
		func(cfg config.Config, log *zap.Logger) *scraper.Client {
			return scraper.NewClient(cfg.Scraper, log)
		},
	),
)
