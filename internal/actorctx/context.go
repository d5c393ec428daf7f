// Package actorctx carries the authenticated actor through request contexts.
package actorctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/permission"
)

// Actor identifies the authenticated user and their tenant scope.
type Actor struct {
	UserID    snowflake.ID
	CompanyID snowflake.ID
	Role      permission.Role
}

// CanViewAllProspects reports whether the actor sees company-wide rows.
func (a Actor) CanViewAllProspects() bool {
	return permission.Allowed(permission.ActionViewAllProspects, a.Role)
}

type actorKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// FromContext returns the actor from context, if set.
func FromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.UserID == 0 || actor.CompanyID == 0 {
		return Actor{}, false
	}
	return actor, true
}
