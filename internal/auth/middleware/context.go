package auth

import (
	"context"

	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

type ctxKey string

const ctxKeySub ctxKey = "sub"

// WithPrincipal stores the caller's subject and role. The role is also made
// visible to rbac.
func WithPrincipal(ctx context.Context, sub, role string) context.Context {
	ctx = context.WithValue(ctx, ctxKeySub, sub)
	return rbac.WithRole(ctx, role)
}

func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeySub).(string)
	return s
}
