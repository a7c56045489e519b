package app

import (
	"fmt"
	"strings"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the dependency container and the fiber app with
// middleware and routes registered. The returned cleanup closes the
// container resources.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	registerGlobalMiddleware(f, log)
	container.Registry.Register(f)

	return &App{Fiber: f, Container: container}, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(log).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
