package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/food-delivery/application/user"
	"github.com/muhammadheryan/food-delivery/constant"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the bearer token to a session and stores it in the request context.
// Public endpoints (/login, /health, /swagger/, /internal/) pass without a token.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			session, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Ctx(r.Context()).Debug("[AuthMiddleware] rejected token", zap.String("error", err.Error()))
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := utilsContext.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware lets through only sessions holding one of roles.
func RoleMiddleware(roles ...constant.Role) mux.MiddlewareFunc {
	allowed := make(map[constant.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := utilsContext.GetSession(r.Context())
			if !ok {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			if !allowed[session.Role] {
				writeError(w, errors.SetCustomError(constant.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	return path == constant.LoginRoute || path == "/health"
}
