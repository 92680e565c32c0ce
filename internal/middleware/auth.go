package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/flight-events/pkg/logger"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	AuthClient TokenVerifier
}

func NewMiddleware(client TokenVerifier) *Middleware {
	return &Middleware{AuthClient: client}
}

type contextKey string

const UIDKey contextKey = "uid"

var errNoToken = errors.New("missing Authorization header")

// FirebaseAuth rejects requests without a valid ID token.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := m.verify(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUID(r.Context(), uid)))
	})
}

// OptionalAuth lets anonymous requests through with an empty UID. A token
// that is present but invalid is still rejected.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := m.verify(r)
		if errors.Is(err, errNoToken) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUID(r.Context(), uid)))
	})
}

func (m *Middleware) verify(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errNoToken
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid Authorization header")
	}

	token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
	if err != nil {
		return "", errors.New("invalid or expired token")
	}
	return token.UID, nil
}

// withUID stores uid and adds it to the request logger.
func withUID(ctx context.Context, uid string) context.Context {
	ctx = context.WithValue(ctx, UIDKey, uid)
	_, ctx = logger.With(ctx, "uid", uid)
	return ctx
}

func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
