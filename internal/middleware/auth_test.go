package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
)

type stubVerifier struct {
	tokens map[string]string
}

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := s.tokens[idToken]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return &auth.Token{UID: uid}, nil
}

func serve(h func(http.Handler) http.Handler, header string) (int, string) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/flights", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h(next).ServeHTTP(rec, req)
	return rec.Code, seen
}

func TestFirebaseAuth(t *testing.T) {
	m := NewMiddleware(stubVerifier{tokens: map[string]string{"good": "uid-1"}})

	tests := []struct {
		name   string
		header string
		status int
		uid    string
	}{
		{"valid token", "Bearer good", http.StatusNoContent, "uid-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, uid := serve(m.FirebaseAuth, tc.header)
			if status != tc.status || uid != tc.uid {
				t.Fatalf("got status=%d uid=%q, want %d %q", status, uid, tc.status, tc.uid)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	m := NewMiddleware(stubVerifier{tokens: map[string]string{"good": "uid-1"}})

	if status, uid := serve(m.OptionalAuth, ""); status != http.StatusNoContent || uid != "" {
		t.Fatalf("anonymous request: status=%d uid=%q", status, uid)
	}
	if status, uid := serve(m.OptionalAuth, "Bearer good"); status != http.StatusNoContent || uid != "uid-1" {
		t.Fatalf("signed-in request: status=%d uid=%q", status, uid)
	}
	if status, _ := serve(m.OptionalAuth, "Bearer bad"); status != http.StatusUnauthorized {
		t.Fatalf("invalid token should be rejected, got %d", status)
	}
}
