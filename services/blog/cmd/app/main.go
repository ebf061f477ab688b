package main

import (
	"inkboard/pkg/config"
	"inkboard/pkg/logger"
	app "inkboard/services/blog/internal/app"

	_ "inkboard/services/blog/docs" // Swagger docs
)

// @title           Inkboard API
// @version         1.0
// @description     Posts, image uploads and sign-in for the Inkboard blog.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.New().Warn("JWT_SECRET is not set, using the development default")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
