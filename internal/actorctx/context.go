// Package actorctx carries the authenticated actor through request
// contexts. One explicit actor shape flows through every layer; no layer
// re-derives identity on its own.
package actorctx

import (
	"context"

	"github.com/leadhub/leadhub/internal/rbac"
)

type actorKey struct{}

// WithActor stores the actor snapshot in the context.
func WithActor(ctx context.Context, actor *rbac.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor from context, if set.
func ActorFromContext(ctx context.Context) (*rbac.Actor, bool) {
	if ctx == nil {
		return nil, false
	}
	actor, ok := ctx.Value(actorKey{}).(*rbac.Actor)
	if !ok || actor == nil {
		return nil, false
	}
	return actor, true
}
