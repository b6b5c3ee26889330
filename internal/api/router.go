// Package api assembles the gateway's HTTP surface: the Echo instance, the
// central error handler, and every route behind its guard.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/byway/web-gateway/docs"
	"github.com/byway/web-gateway/internal/api/handler"
	"github.com/byway/web-gateway/internal/api/middleware"
	"github.com/byway/web-gateway/internal/core/service"
	"github.com/byway/web-gateway/internal/infrastructure/backend"
)

// Deps carries everything the router needs, built once in main.
type Deps struct {
	Session *service.SessionService
	Badge   *service.CartBadgeService

	Client      *backend.Client
	Auth        *backend.AuthService
	Courses     *backend.CourseService
	Categories  *backend.CategoryService
	Instructors *backend.InstructorService
	Cart        *backend.CartService
	Orders      *backend.OrderService
	Admin       *backend.AdminService

	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("byway"))

	requireAuth := middleware.RequireAuth(d.Session)
	requireAdmin := middleware.RequireAdmin(d.Session)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Session)
	courseHandler := handler.NewCourseHandler(d.Courses, d.Categories)
	cartHandler := handler.NewCartHandler(d.Cart, d.Session, d.Badge)
	checkoutHandler := handler.NewCheckoutHandler(d.Cart, d.Orders, d.Session, d.Badge)
	orderHandler := handler.NewOrderHandler(d.Orders, d.Session)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Courses, d.Instructors, d.Categories)
	headerHandler := handler.NewHeaderHandler(d.Session, d.Badge)
	healthHandler := handler.NewHealthHandler(d.Redis, d.Client)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Public catalog ---
	e.GET("/courses", courseHandler.List)
	e.GET("/courses/top", courseHandler.Top)
	e.GET("/courses/:id", courseHandler.Detail)
	e.GET("/categories", courseHandler.Categories)
	e.GET("/header", headerHandler.State)

	// --- Authenticated views ---
	auth := e.Group("", requireAuth)
	auth.GET("/cart", cartHandler.Get)
	auth.POST("/cart/items", cartHandler.AddItem)
	auth.DELETE("/cart/items/:courseId", cartHandler.RemoveItem)
	auth.DELETE("/cart", cartHandler.Clear)
	auth.GET("/checkout", checkoutHandler.Summary)
	auth.POST("/checkout", checkoutHandler.Submit)
	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:id", orderHandler.Get)
	auth.GET("/my-courses", orderHandler.MyCourses)

	// --- Admin console ---
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/orders", adminHandler.Orders)
	admin.GET("/courses/form", adminHandler.CourseForm)
	admin.POST("/courses", adminHandler.CreateCourse)
	admin.PUT("/courses/:id", adminHandler.UpdateCourse)
	admin.DELETE("/courses/:id", adminHandler.DeleteCourse)
	admin.GET("/instructors", adminHandler.Instructors)
	admin.POST("/instructors", adminHandler.CreateInstructor)
	admin.PUT("/instructors/:id", adminHandler.UpdateInstructor)
	admin.DELETE("/instructors/:id", adminHandler.DeleteInstructor)

	// --- Operational surface ---
	e.GET("/healthz", healthHandler.Live)
	e.GET("/readyz", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
