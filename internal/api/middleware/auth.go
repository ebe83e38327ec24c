package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/auth"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgTokenExpired = "срок действия токена истек"
)

type callerKey struct{}

// TokenVerifier проверяет токен и возвращает данные вызывающего
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет заголовок "Authorization: Bearer <jwt>" и кладет domain.Caller в контекст
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("Auth: missing bearer token, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Auth: token rejected, path=%s, error=%v", r.URL.Path, err)
				if errors.Is(err, auth.ErrTokenExpired) {
					handlers.RespondUnauthorized(w, msgTokenExpired)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			caller := domain.Caller{UserID: claims.UserID, Role: domain.Role(strings.ToUpper(claims.Role))}
			if !caller.IsValid() {
				logger.Warn("Auth: unknown role %q for user=%d", claims.Role, claims.UserID)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			w.Header().Set("X-User-ID", strconv.FormatInt(caller.UserID, 10))
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// WithCaller кладет вызывающего в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller достает вызывающего из контекста (через middleware Auth)
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
