package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tutorlane/booking-service/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "uid"

// ErrBadToken возвращается при невалидном или подделанном токене
var ErrBadToken = errors.New("invalid token")

// Claims полезная нагрузка access-токена
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// ParseToken разбирает и проверяет подпись access-токена
func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Защита от подмены алгоритма подписи
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return claims, nil
}

// Auth проверяет Bearer-токен и кладет ID пользователя в контекст запроса
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, "требуется авторизация")
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == "" {
				handlers.RespondUnauthorized(w, "требуется авторизация")
				return
			}

			claims, err := ParseToken(raw, secret)
			if err != nil {
				handlers.RespondUnauthorized(w, "недействительный токен")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
