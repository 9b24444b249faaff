package http

import (
	"context"
	"net/http"

	"github.com/mahede182/appifyEcommerce/internal/domain"
)

// Identity headers set by the upstream authentication gateway. This service
// does not authenticate; it only consumes the resolved caller identity.
const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"

	roleAdmin = "admin"
)

type actorKey struct{}

// WithIdentity materializes the caller's Actor from the identity headers and
// rejects requests that carry none.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
			return
		}

		capability := domain.CapabilityOwner
		if r.Header.Get(userRoleHeader) == roleAdmin {
			capability = domain.CapabilityPrivileged
		}

		actor := domain.Actor{UserID: userID, Capability: capability}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// requireActor fetches the Actor placed by WithIdentity, failing closed when
// the middleware did not run.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing identity")
	}
	return actor, ok
}
