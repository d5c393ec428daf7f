package server

import (
	"github.com/gin-gonic/gin"
	"github.com/reachway/reachway/internal/actorctx"
	"github.com/reachway/reachway/internal/permission"
)

const contextActorKey = "actor"

// AuthRequired resolves the session cookie into the acting user and makes
// the actor available to handlers and downstream services.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		actor := actorctx.Actor{
			UserID:    user.ID,
			CompanyID: user.CompanyID,
			Role:      user.Role,
		}
		c.Set(contextActorKey, actor)
		c.Request = c.Request.WithContext(actorctx.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// RequirePermission gates a route on the static capability table. It must
// run after AuthRequired.
func (s *Server) RequirePermission(action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !permission.Allowed(action, actor.Role) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentActor(c *gin.Context) (actorctx.Actor, bool) {
	value, exists := c.Get(contextActorKey)
	if !exists {
		return actorctx.Actor{}, false
	}
	actor, ok := value.(actorctx.Actor)
	return actor, ok
}
