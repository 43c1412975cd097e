package auth

import (
	"context"
	"errors"
	"fmt"
	"mcatalog/catalog/pkg/model"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SecretProvider defines a provider of secrets for token verification.
type SecretProvider func() []byte

// ErrInvalidToken is returned for missing, malformed or badly signed
// tokens.
var ErrInvalidToken = errors.New("invalid token")

type contextKey int

const userIdKey contextKey = iota

// Verifier validates bearer tokens issued by the credential service.
type Verifier struct {
	secretProvider SecretProvider
	logger         *zap.Logger
}

// NewVerifier creates a new token verifier.
func NewVerifier(secretProvider SecretProvider, logger *zap.Logger) *Verifier {
	return &Verifier{secretProvider: secretProvider, logger: logger}
}

// UserId extracts the authenticated user id from a token string.
func (v *Verifier) UserId(tokenString string) (model.UserId, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretProvider(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if v, ok := claims["username"]; ok {
		if username, ok := v.(string); ok && username != "" {
			return model.UserId(username), nil
		}
	}
	return "", ErrInvalidToken
}

// Middleware rejects requests without a valid bearer token and injects
// the user id into the request context.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		header := req.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		userId, err := v.UserId(tokenString)
		if err != nil {
			v.logger.Debug("Rejected token", zap.Error(err))
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, req.WithContext(WithUserId(req.Context(), userId)))
	})
}

// WithUserId returns a context carrying the authenticated user id.
func WithUserId(ctx context.Context, userId model.UserId) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

// UserIdFromContext returns the authenticated user id, if any.
func UserIdFromContext(ctx context.Context) (model.UserId, bool) {
	userId, ok := ctx.Value(userIdKey).(model.UserId)
	return userId, ok
}
