package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/infrastructure/auth"
)

type contextKey string

const actorKey contextKey = "actor"

// Authenticate проверяет Bearer токен и кладет актора в контекст запроса.
// Ядро никогда не читает идентичность из глобального состояния - только отсюда.
func Authenticate(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			actor := entity.Actor{
				ID:    claims.UserID,
				Email: claims.Email,
				Name:  claims.Name,
				Role:  claims.Role,
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

// ActorFromContext достает актора, положенного Authenticate
func ActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(entity.Actor)
	return actor, ok
}
