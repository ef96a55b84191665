package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"usersvc/internal/handler"
	"usersvc/internal/middleware"
)

// Register wires routes and middleware.
// A nil limiter disables rate limiting.
func Register(
	e *echo.Echo,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	limiter middleware.Limiter,
) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = NewValidator()
	// Rate limiting keys on the client address; forwarded headers are client controlled.
	e.IPExtractor = echo.ExtractIPDirect()

	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/users")
	if limiter != nil {
		users.Use(middleware.RateLimit(limiter))
	}

	users.GET("", userHandler.ListUsers)
	users.POST("", userHandler.CreateUser)
	users.GET("/email", userHandler.GetUserByEmail)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator used for request payloads.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
