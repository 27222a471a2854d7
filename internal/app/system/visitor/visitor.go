package visitor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// DefaultSessionName is used when no session name is configured.
const DefaultSessionName = "portfolio-session"

const visitorIDKey = "visitor_id"

type ctxKey string

const visitorKey ctxKey = "visitorID"

// Manager issues and reads visitor IDs from a signed cookie session.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager. The `secure` flag marks cookies Secure; it
// should be true whenever the site is served over HTTPS.
//
// The visitor cookie only ever travels same-site (form posts back to this
// host), so SameSite=Lax is used in both modes.
func NewManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("visitor session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Name returns the cookie name.
func (m *Manager) Name() string { return m.name }

// LoadVisitor injects a stable visitor ID into the request context, issuing a
// new one in the session cookie on first contact.
func (m *Manager) LoadVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A cookie that fails to decode (rotated key, tampering) yields a
		// fresh session and so a fresh ID.
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			var scErr securecookie.Error
			if errors.As(err, &scErr) && scErr.IsDecode() {
				m.log.Debug("visitor cookie rejected; issuing new session", zap.Error(err))
			} else {
				m.log.Warn("visitor session load failed", zap.Error(err))
			}
		}

		id, _ := sess.Values[visitorIDKey].(string)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			sess.Values[visitorIDKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Warn("save visitor session", zap.Error(err))
			}
		}

		next.ServeHTTP(w, WithID(r, id))
	})
}

// ID returns the visitor ID & “found?” flag.
func ID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(visitorKey).(string)
	return id, ok && id != ""
}

// WithID returns a copy of r carrying id.
func WithID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), visitorKey, id))
}
