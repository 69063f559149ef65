// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"archive/internal/delivery/http/middleware"
	"archive/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler    *handler.AccountHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler    *handler.AccountHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:    params.AccountHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Browser-facing verification landing page
	e.GET("/verify", r.accountHandler.VerifyEmail)

	// Public account routes
	apiGroup := e.Group("/api")
	{
		apiGroup.POST("/register", r.accountHandler.Register)
		apiGroup.POST("/login", r.accountHandler.Login)
		apiGroup.POST("/forgot-password", r.accountHandler.ForgotPassword)
		apiGroup.POST("/reset-password", r.accountHandler.ResetPassword)
		apiGroup.POST("/logout", r.accountHandler.Logout)
	}

	// Routes that require a live session
	sessionGroup := e.Group("/api")
	sessionGroup.Use(r.sessionMiddleware.Authenticate)
	{
		sessionGroup.GET("/user", r.accountHandler.CurrentAccount)
	}
}
