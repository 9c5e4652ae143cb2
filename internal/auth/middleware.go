package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// SecurityScheme is the name operations list under Security to require a token.
const SecurityScheme = "bearer"

// NewMiddleware authenticates operations that declare SecurityScheme and puts
// the token subject in the request context. Other operations pass through.
func NewMiddleware(api huma.API, secret string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresToken(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := ValidateToken(raw, secret)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		next(huma.WithContext(ctx, ContextWithOwnerID(ctx.Context(), claims.OwnerID)))
	}
}

func requiresToken(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}
