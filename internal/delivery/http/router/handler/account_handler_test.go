package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"archive/config"
	"archive/internal/delivery/http/validator"
	"archive/internal/domain/entity"
	mockUsecase "archive/internal/mocks/usecase"
	"archive/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func entityIdentity(id int64, email, displayName string) entity.Identity {
	return entity.Identity{ID: id, Email: email, DisplayName: displayName}
}

func newTestHandler(t *testing.T) (*AccountHandler, *mockUsecase.MockAccountUsecase, *echo.Echo) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Session: &config.SessionConfig{
			TTL:        24 * time.Hour,
			CookieName: "archive_session",
		},
	}

	e := echo.New()
	e.Validator = validator.New()

	return NewAccountHandler(uc, logger, cfg), uc, e
}

func TestAccountHandler_Register(t *testing.T) {
	h, uc, e := newTestHandler(t)

	uc.On("Register", mock.Anything, usecase.RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret1",
		DisplayName: "Alice",
	}).Return(&usecase.RegisterOutput{
		Identity: entityIdentity(7, "alice@example.com", "Alice"),
	}, nil)

	body := `{"email":"alice@example.com","password":"secret1","displayName":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	// The password hash never appears in a response.
	assert.NotContains(t, rec.Body.String(), "secret1")
}

func TestAccountHandler_Register_MissingFields(t *testing.T) {
	h, uc, e := newTestHandler(t)

	body := `{"email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	require.Error(t, err)
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAccountHandler_Login_SetsSessionCookie(t *testing.T) {
	h, uc, e := newTestHandler(t)

	uc.On("Login", mock.Anything, usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "secret1",
	}).Return(&usecase.LoginOutput{
		SessionHandle: "handle-1",
		Identity:      entityIdentity(7, "alice@example.com", "Alice"),
	}, nil)

	body := `{"email":"alice@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "archive_session", cookies[0].Name)
	assert.Equal(t, "handle-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAccountHandler_VerifyEmail_RendersHTML(t *testing.T) {
	h, uc, e := newTestHandler(t)

	uc.On("VerifyEmail", mock.Anything, usecase.VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "verify-token-1",
	}).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/verify?email=alice%40example.com&code=verify-token-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.VerifyEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email verified")
}

func TestAccountHandler_VerifyEmail_MissingParams(t *testing.T) {
	h, uc, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.VerifyEmail(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "VerifyEmail", mock.Anything, mock.Anything)
}

func TestAccountHandler_Logout_ClearsCookie(t *testing.T) {
	h, uc, e := newTestHandler(t)

	uc.On("Logout", mock.Anything, "handle-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "archive_session", Value: "handle-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "archive_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAccountHandler_Logout_WithoutSession(t *testing.T) {
	h, uc, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}
