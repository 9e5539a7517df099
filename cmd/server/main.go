package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/morgansundqvist/minicopilot/internal/adapters"
	"github.com/morgansundqvist/minicopilot/internal/application"
	"github.com/morgansundqvist/minicopilot/internal/config"
	"github.com/morgansundqvist/minicopilot/internal/handlers"
)

func main() {
	configPath := flag.String("config", "minicopilot.yaml", "path to an optional YAML config file")
	flag.Parse()

	// Settings such as PORT may live in .env; the API key itself is read
	// through the secret store chain below.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	lg := cfg.Logger()
	slog.SetDefault(lg)

	secrets, err := adapters.NewSecretStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize secret store: %v", err)
	}
	factory, err := adapters.NewLLMFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize provider: %v", err)
	}

	svc := application.NewCopilotService(secrets, factory, application.Options{
		SecretName: cfg.SecretName,
		Model:      cfg.Model,
		Logger:     lg,
	})
	if err := svc.ConfigError(); err != nil {
		// Keep serving: the page shows the error instead of the form working.
		lg.Error("copilot is not configured", "error", err)
	}

	app := fiber.New(fiber.Config{AppName: "minicopilot"})
	app.Use(logger.New())

	copilotHandler := handlers.NewCopilotHandler(svc, lg)
	copilotHandler.Routes(app)

	lg.Info("starting server", "url", "http://localhost:"+cfg.Port, "provider", cfg.Provider, "model", cfg.Model)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
