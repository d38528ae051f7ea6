package auth

import (
	"context"

	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

type ctxKey struct{}

// WithSession stores s in ctx for downstream handlers.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFrom returns the session stored by WithSession. The zero Session
// (Authenticated == false) is returned when none is present.
func SessionFrom(ctx context.Context) models.Session {
	s, _ := ctx.Value(ctxKey{}).(models.Session)
	return s
}
