package middleware

import (
	"context"
	"net/http"
	"strings"

	"jobbridge/internal/common"
	"jobbridge/internal/domain/actor"
	"jobbridge/internal/http/response"
)

type contextKey string

const (
	ContextUserIDKey contextKey = "user_id"
	ContextRoleKey   contextKey = "role"
)

// Identity arrives from the upstream auth gateway as trusted headers;
// session management itself lives outside this service.
const (
	userIDHeader = "X-User-ID"
	roleHeader   = "X-User-Role"
)

func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get(userIDHeader))
		if rawID == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing identity header", nil))
			return
		}
		userID, err := common.ParseUUID(rawID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		role := actor.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(roleHeader))))
		switch role {
		case actor.RoleSeeker, actor.RoleEmployer, actor.RoleAdmin:
		default:
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid role header", nil))
			return
		}
		ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
		ctx = context.WithValue(ctx, ContextRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(roles ...actor.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			activeRole, ok := r.Context().Value(ContextRoleKey).(actor.Role)
			if !ok || activeRole == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			for _, role := range roles {
				if activeRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (actor.Role, bool) {
	role, ok := ctx.Value(ContextRoleKey).(actor.Role)
	return role, ok
}

func ActorFromContext(ctx context.Context) (actor.Actor, bool) {
	id, okID := UserIDFromContext(ctx)
	role, okRole := RoleFromContext(ctx)
	if !okID || !okRole {
		return actor.Actor{}, false
	}
	return actor.Actor{ID: id, Role: role}, true
}
