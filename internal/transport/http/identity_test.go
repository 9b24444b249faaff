package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mahede182/appifyEcommerce/internal/domain"
)

// requestWithActor injects an actor the way WithIdentity would, for tests
// that exercise a handler directly.
func requestWithActor(r *http.Request, actor domain.Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), actorKey{}, actor))
}

func TestWithIdentity(t *testing.T) {
	t.Parallel()

	var seen domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromContext(r.Context())
		if !ok {
			t.Fatalf("expected actor in context")
		}
		seen = actor
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing identity is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		rec := httptest.NewRecorder()

		WithIdentity(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("plain user maps to owner capability", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()

		WithIdentity(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if seen.UserID != "user-1" || seen.Capability != domain.CapabilityOwner {
			t.Fatalf("unexpected actor %+v", seen)
		}
	})

	t.Run("admin role maps to privileged capability", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		req.Header.Set("X-User-ID", "user-2")
		req.Header.Set("X-User-Role", "admin")
		rec := httptest.NewRecorder()

		WithIdentity(next).ServeHTTP(rec, req)

		if seen.Capability != domain.CapabilityPrivileged {
			t.Fatalf("expected privileged capability, got %s", seen.Capability)
		}
	})

	t.Run("unknown role stays owner", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		req.Header.Set("X-User-ID", "user-3")
		req.Header.Set("X-User-Role", "support")
		rec := httptest.NewRecorder()

		WithIdentity(next).ServeHTTP(rec, req)

		if seen.Capability != domain.CapabilityOwner {
			t.Fatalf("expected owner capability, got %s", seen.Capability)
		}
	})
}
