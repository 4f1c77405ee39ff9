package server

import (
	"github.com/gin-gonic/gin"
	"github.com/leadhub/leadhub/internal/actorctx"
	"github.com/leadhub/leadhub/internal/rbac"
)

const contextActorKey = "actor"

// AuthRequired resolves the session cookie to an actor and injects it
// into the request context. Every handler behind it can assume an actor
// is present.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, rbac.ErrUnauthenticated)
			return
		}

		actor, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := actorctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextActorKey, actor)
		c.Next()
	}
}

func currentActor(c *gin.Context) *rbac.Actor {
	value, ok := c.Get(contextActorKey)
	if !ok {
		return nil
	}
	actor, ok := value.(*rbac.Actor)
	if !ok {
		return nil
	}
	return actor
}
