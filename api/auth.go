package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/models"
)

// Identity is the authenticated caller attached to the request context.
// Staff identities reference a user record; client identities carry only the
// case party email they verified against.
type Identity struct {
	ID    string
	Role  models.Role
	Email string
	Name  string
}

type contextKey string

const identityKey contextKey = "identity"

// TokenTTL is how long issued bearer tokens stay valid
const TokenTTL = 24 * time.Hour

// Auth validates bearer tokens and issues them after login
type Auth struct {
	Secret []byte
}

// IssueToken signs a JWT for the given identity
func (a Auth) IssueToken(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"id":    id.ID,
		"role":  string(id.Role),
		"email": id.Email,
		"name":  id.Name,
		"jti":   uuid.New().String(),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

// Middleware authenticates the request from the Authorization header or the
// token cookie. Missing token is a 401, invalid or expired is a 403.
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		raw := bearerToken(r)
		if raw == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg": "No token"}`))
			return
		}

		identity, err := a.parse(raw)
		if err != nil {
			zap.S().Debugw("token rejected", "url", r.URL, "error", err)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"msg": "Token invalid or expired"}`))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a Auth) parse(raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	identity := Identity{
		ID:    stringClaim(claims, "id"),
		Role:  models.Role(stringClaim(claims, "role")),
		Email: stringClaim(claims, "email"),
		Name:  stringClaim(claims, "name"),
	}
	if !identity.Role.Valid() {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// bearerToken extracts a token from the cookie or the Authorization header,
// cookie first, same as the legacy frontend expects.
func bearerToken(r *http.Request) string {
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// IdentityFromContext returns the authenticated identity, if any
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity attaches an identity to a context. Exposed for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
