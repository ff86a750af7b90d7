package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"problem-analytics-service/internal/config"
	"problem-analytics-service/internal/controller"
	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/routes"
	"problem-analytics-service/internal/zabbix"
)

// Server wraps the Fiber application setup.
type Server struct {
	app *fiber.App
}

// NewServer configures routes and middleware. auth may be nil when authentication is disabled.
func NewServer(appCfg *config.Config, analyticsController controller.AnalyticsController, auth zabbix.Authenticator) *Server {
	fiberCfg := fiber.Config{
		DisableStartupMessage: true,
		Prefork:               appCfg.FiberPrefork,
		ErrorHandler:          errorHandler,
	}
	app := fiber.New(fiberCfg)
	app.Use(recover.New())
	app.Use(requestid.New())
	if appCfg.AppMode == "dev" {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	var middleware []fiber.Handler
	if !appCfg.AuthDisabled && auth != nil {
		middleware = append(middleware, controller.AuthMiddleware(auth, appCfg.MinUserType))
	} else {
		log.Println("[WARN] authentication disabled, API is open to any caller")
	}

	routes.Register(app, analyticsController, middleware...)

	return &Server{app: app}
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen runs the server on provided addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler renders every error, including recovered panics, as the standard envelope.
// Messages of 5xx errors never reach the caller.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := controller.GenericFailureMessage

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		if code < fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(model.NewErrorResponse(message))
}
