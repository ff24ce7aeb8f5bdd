package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type contextKey string

const (
	userIDContextKey contextKey = "user_id"
	tokenContextKey  contextKey = "token"

	// Verified tokens are cached briefly so every request does not cost
	// a backend round trip. Short enough that a revoked token dies fast.
	verifiedTokenTTL = 5 * time.Minute
)

// TokenVerifier answers whether a bearer token is still live. A
// definitive rejection comes back as (false, nil).
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// SessionCache is the slice of the user state store the auth layer
// needs: the verified-token cache plus the teardown used when a token
// turns out to be dead.
type SessionCache interface {
	CacheVerifiedToken(ctx context.Context, token, userID string, ttl time.Duration) error
	LookupVerifiedToken(ctx context.Context, token string) (string, error)
	ClearSession(ctx context.Context, userID, token string) error
}

type AuthMiddleware struct {
	verifier TokenVerifier
	sessions SessionCache
	log      *logger.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, sessions SessionCache, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		sessions: sessions,
		log:      log,
	}
}

// Wrap authenticates the request. The token's claims are decoded
// without signature verification purely to extract the subject and
// reject the obviously expired; the backend remains the authority on
// token liveness. A dead token triggers the session teardown exactly
// once before the 401 goes out.
func (m *AuthMiddleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			response.WriteDomainError(w, domainErrors.ErrUnauthorized)
			return
		}

		userID, expired := decodeClaims(token)
		if userID == "" || expired {
			m.cascade(r.Context(), userID, token)
			response.WriteDomainError(w, domainErrors.ErrUnauthorized)
			return
		}

		cachedUserID, err := m.sessions.LookupVerifiedToken(r.Context(), token)
		if err != nil {
			m.log.Error("Verified-token lookup failed", "error", err)
		}

		if cachedUserID == "" {
			ok, err := m.verifier.VerifyToken(r.Context(), token)
			if err != nil {
				response.WriteDomainError(w, err)
				return
			}
			if !ok {
				m.cascade(r.Context(), userID, token)
				response.WriteDomainError(w, domainErrors.ErrUnauthorized)
				return
			}

			if err := m.sessions.CacheVerifiedToken(r.Context(), token, userID, verifiedTokenTTL); err != nil {
				m.log.Error("Failed to cache verified token", "error", err, "user_id", userID)
			}
		} else {
			userID = cachedUserID
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) cascade(ctx context.Context, userID, token string) {
	monitoring.RecordAuthCascade()
	if err := m.sessions.ClearSession(ctx, userID, token); err != nil {
		m.log.Error("Failed to clear session on auth failure", "error", err, "user_id", userID)
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeClaims(token string) (userID string, expired bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", true
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return sub, true
	}
	if exp != nil && exp.Before(time.Now().UTC()) {
		return sub, true
	}

	return sub, false
}

func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDContextKey).(string); ok {
		return v
	}
	return ""
}

func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tokenContextKey).(string); ok {
		return v
	}
	return ""
}
