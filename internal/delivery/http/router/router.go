// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lunchlog/internal/delivery/http/middleware"
	"lunchlog/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ReceiptHandler *handler.ReceiptHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	receiptHandler *handler.ReceiptHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		receiptHandler: params.ReceiptHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.userHandler.Signup)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Receipt routes require authentication
	receiptGroup := e.Group("/receipts")
	receiptGroup.Use(r.authMiddleware.Authenticate)
	{
		receiptGroup.POST("", r.receiptHandler.Create)
		receiptGroup.GET("", r.receiptHandler.List)
		receiptGroup.GET("/:id", r.receiptHandler.Get)
		receiptGroup.PUT("/:id", r.receiptHandler.Update)
		receiptGroup.DELETE("/:id", r.receiptHandler.Delete)
		receiptGroup.PUT("/:id/image", r.receiptHandler.UploadImage)
	}
}
