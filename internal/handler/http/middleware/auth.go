package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type authContextKey struct{}

// WithAuthContext returns a copy of ctx carrying actor.
func WithAuthContext(ctx context.Context, actor auth.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, actor)
}

// AuthContextFrom returns the caller identity injected by AuthRequired.
func AuthContextFrom(ctx context.Context) (auth.AuthContext, bool) {
	actor, ok := ctx.Value(authContextKey{}).(auth.AuthContext)
	return actor, ok
}

// AuthRequired rejects requests without a verified access token and injects
// the caller's AuthContext. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		actor, err := jwt.AuthContextFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAuthContext(r.Context(), actor)))
	}
	return http.HandlerFunc(hfn)
}
