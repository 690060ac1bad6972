package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

var (
	// ErrMissingToken заголовок Authorization отсутствует или не Bearer
	ErrMissingToken = errors.New("auth: missing bearer token")

	// ErrInvalidToken подпись, срок действия или claims токена некорректны
	ErrInvalidToken = errors.New("auth: invalid token")
)

type actorKey struct{}

// Claims полезная нагрузка токена
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// WithActor кладет аутентифицированного пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достает пользователя, положенного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// ParseToken проверяет HS256 подпись и возвращает актора с нормализованной ролью
func ParseToken(tokenString string, secret []byte) (domain.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return domain.Actor{}, fmt.Errorf("%w: user_id must be positive", ErrInvalidToken)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return domain.Actor{UserID: claims.UserID, Role: role}, nil
}

// Auth требует валидный Bearer токен и кладет актора в контекст запроса
func Auth(secret string, logger Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			actor, err := ParseToken(tokenString, key)
			if err != nil {
				logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
