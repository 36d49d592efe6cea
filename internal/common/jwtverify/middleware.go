package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	commonhttp "github.com/AlibekovAA/microblog/internal/common/http"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/observability/metrics"
)

var (
	ErrMalformed    = errors.New("token is malformed")
	ErrBadSignature = errors.New("token signature is invalid")
	ErrExpired      = errors.New("token is expired")
)

type Claims struct {
	UserID   string
	Username string
}

// Verifier checks a raw bearer token. Errors are one of ErrMalformed,
// ErrBadSignature or ErrExpired.
type Verifier interface {
	Verify(token string) (Claims, error)
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

const bearerPrefix = "Bearer "

// Middleware rejects requests without a valid bearer token with the same
// 401 body whatever the cause, and stores the claims in the context otherwise.
func Middleware(verifier Verifier, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				reject(w, r, log, "missing_header", nil)
				return
			}

			metrics.JWTValidationsTotal.Inc()
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				reject(w, r, log, reason(err), err)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), claims)))
		})
	}
}

func NewContext(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	if !ok || claims.UserID == "" {
		return Claims{}, false
	}
	return claims, true
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}

func reject(w http.ResponseWriter, r *http.Request, log *logger.Logger, reason string, err error) {
	metrics.JWTValidationsFailed.WithLabelValues(reason).Inc()

	entry := log.WithFields(r.Context(), logger.Fields{
		"path":      r.URL.Path,
		"reason":    reason,
		"client_ip": commonhttp.GetClientIP(r),
		"action":    "jwt_auth_failed",
	})
	if err != nil {
		entry.Warnf("jwt auth failed: %v", err)
	} else {
		entry.Warn("jwt auth failed: missing or invalid authorization header")
	}

	commonhttp.WriteError(w, http.StatusUnauthorized, commonerrors.ErrUnauthorized.Message())
}
