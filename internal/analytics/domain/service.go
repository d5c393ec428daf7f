package domain

import (
	"context"

	"github.com/reachway/reachway/internal/actorctx"
)

type Service interface {
	// Report computes funnel statistics scoped by the actor's role.
	Report(ctx context.Context, actor actorctx.Actor) (Report, error)
	// Insights runs the LLM over the actor's report.
	Insights(ctx context.Context, actor actorctx.Actor) (Insights, error)
}
