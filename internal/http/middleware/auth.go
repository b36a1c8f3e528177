package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"internboard/internal/common"
	"internboard/internal/domain/identity"
	"internboard/internal/http/response"
	"internboard/internal/security"
)

type contextKey string

const ContextActorKey contextKey = "actor"

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate verifies the bearer credential and attaches the verified
// actor to the request context. It is the only place an actor is set;
// everything downstream reads it via ActorFromContext. Absent, expired, and
// otherwise invalid tokens all stop the request here, distinguished only by
// message.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "access token required", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "access token required", nil))
			return
		}
		claims, err := m.jwt.Parse(parts[1])
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				response.Error(w, common.NewError(common.CodeUnauthorized, "token expired", err))
				return
			}
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		subjectID, err := common.ParseUUID(claims.Sub)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		role := identity.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
		switch role {
		case identity.RoleAdmin, identity.RoleCompany, identity.RoleStudent:
		default:
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", nil))
			return
		}
		actor := identity.Actor{ID: subjectID, Role: role}
		ctx := context.WithValue(r.Context(), ContextActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to the listed roles. It is a pure predicate
// over the already-authenticated actor and never re-verifies the
// credential; a present actor with a role outside the set is forbidden,
// which is distinct from unauthenticated.
func RequireRole(allowed ...identity.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.Error(w, common.NewError(common.CodeUnauthorized, "access token required", nil))
				return
			}
			for _, role := range allowed {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		})
	}
}

func ActorFromContext(ctx context.Context) (identity.Actor, bool) {
	actor, ok := ctx.Value(ContextActorKey).(identity.Actor)
	return actor, ok
}
