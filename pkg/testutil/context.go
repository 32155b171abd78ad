package testutil

import (
	"net/http"
	"time"

	"careteam/pkg/requestcontext"
)

// WithActor adds an actor identity to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithActor(req *http.Request, actorID string) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actorID)
	return req.WithContext(ctx)
}

// WithRequestID adds a correlation id to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}

// WithTime pins the request clock for deterministic timestamps.
func WithTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}
