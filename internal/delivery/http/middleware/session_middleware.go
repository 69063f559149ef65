package middleware

import (
	"archive/config"
	deliverycontext "archive/internal/delivery/context"
	domainerrors "archive/internal/domain/errors"
	"archive/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionMiddleware guards routes that require an authenticated session.
type SessionMiddleware struct {
	sessions   service.SessionManager
	cookieName string
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions service.SessionManager, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cfg.Session.CookieName,
	}
}

// Authenticate resolves the session cookie and stores the identity in the
// request context. Requests without a live session are rejected uniformly.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return errors.Wrap(domainerrors.ErrSessionNotFound, "missing session cookie")
		}

		identity, err := m.sessions.Resolve(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				return errors.Wrap(domainerrors.ErrSessionNotFound, "session expired or invalid")
			}

			return errors.Wrap(err, "failed to resolve session")
		}

		c.Set(string(deliverycontext.KeyIdentity), identity)
		c.Set(string(deliverycontext.KeySessionHandle), cookie.Value)

		return next(c)
	}
}
