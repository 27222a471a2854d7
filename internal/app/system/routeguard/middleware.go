package routeguard

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type ctxKey string

const accessKey ctxKey = "routeAccess"

// Guard gates page handlers behind a Config.
type Guard struct {
	Config   *Config
	NotFound http.Handler
	Log      *zap.Logger

	// OnCheck, when set, observes every decision (used for metrics).
	OnCheck func(Access)
}

// Middleware checks every request path. Enabled paths reach next with the
// Access stored in the request context; disabled paths get NotFound.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := g.Config.Check(r.URL.Path)
		if g.OnCheck != nil {
			g.OnCheck(a)
		}

		r = r.WithContext(context.WithValue(r.Context(), accessKey, a))

		if !a.Enabled {
			if g.Log != nil {
				g.Log.Debug("route disabled", zap.String("path", a.Path))
			}
			if g.NotFound != nil {
				g.NotFound.ServeHTTP(w, r)
				return
			}
			http.NotFound(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FromRequest returns the Access computed by Middleware for r.
func FromRequest(r *http.Request) (Access, bool) {
	a, ok := r.Context().Value(accessKey).(Access)
	return a, ok
}
