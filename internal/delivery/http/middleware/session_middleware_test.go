package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"archive/config"
	deliverycontext "archive/internal/delivery/context"
	"archive/internal/domain/entity"
	domainerrors "archive/internal/domain/errors"
	"archive/internal/domain/service"
	mockSvc "archive/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSessionMiddleware(t *testing.T) (*SessionMiddleware, *mockSvc.MockSessionManager) {
	sessions := mockSvc.NewMockSessionManager(t)
	cfg := &config.Config{
		Session: &config.SessionConfig{TTL: 24 * time.Hour, CookieName: "archive_session"},
	}

	return NewSessionMiddleware(sessions, cfg), sessions
}

func TestSessionMiddleware_Authenticate_Success(t *testing.T) {
	m, sessions := newTestSessionMiddleware(t)

	identity := &entity.Identity{ID: 7, Email: "alice@example.com", DisplayName: "Alice"}
	sessions.On("Resolve", mock.Anything, "handle-1").Return(identity, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "archive_session", Value: "handle-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var nextCalled bool
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		got, ok := c.Get(string(deliverycontext.KeyIdentity)).(*entity.Identity)
		require.True(t, ok)
		assert.Equal(t, identity, got)
		assert.Equal(t, "handle-1", c.Get(string(deliverycontext.KeySessionHandle)))

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestSessionMiddleware_Authenticate_MissingCookie(t *testing.T) {
	m, _ := newTestSessionMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.Authenticate(func(echo.Context) error {
		t.Fatal("next handler must not run without a session")

		return nil
	})(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotFound))
}

func TestSessionMiddleware_Authenticate_StaleHandle(t *testing.T) {
	m, sessions := newTestSessionMiddleware(t)

	sessions.On("Resolve", mock.Anything, "stale").Return(nil, service.ErrSessionNotFound)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "archive_session", Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.Authenticate(func(echo.Context) error {
		t.Fatal("next handler must not run with a stale session")

		return nil
	})(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionNotFound))
}
