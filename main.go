package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/zzchat/modules/api"
	"github.com/example/zzchat/modules/chat"
	"github.com/example/zzchat/modules/lookup"
	"github.com/example/zzchat/modules/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== ZZChat - room chat relay ===")

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	storageModule := storage.NewModule(cfg.DBPath)
	chatModule := chat.NewModule(cfg.LookupTimeout)
	lookupModule := lookup.NewModule(cfg.WeatherAPIKey)
	apiModule := api.NewModule(api.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		ConfigPath:  cfg.ConfigPath,
		JWTSecret:   cfg.JWTSecret,
	})

	// Manual injections: the chat engine and lookup adapters are not
	// exposed via ServiceContainer.
	chatModule.SetAdapters(lookupModule.Adapters())
	apiModule.SetChat(chatModule)

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - storage: durable message log + credentials (ServiceProviderModule + EventConsumerModule)
	// - chat: broadcast engine + trigger router (EventEmitterModule)
	// - lookup: external lookup adapters
	// - api: driving adapter (Fiber HTTP/WebSocket server, depends on storage)
	app.Register(storageModule)
	app.Register(chatModule)
	app.Register(lookupModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Database: %s", cfg.DBPath)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", cfg.Port)
	log.Println("  GET    /health            - Health check")
	log.Println("  GET    /config            - Server list for clients")
	log.Println("  GET    /history           - Room message history")
	log.Println("  POST   /api/register      - Create an account")
	log.Println("  POST   /api/login         - Log in, sets session cookie")
	log.Println("  POST   /api/clear_history - Wipe a room's history")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws):", cfg.Port)
	log.Printf("  Connect with: ws://localhost:%s/ws?room=general&nick=yourname", cfg.Port)
	log.Println("  Send {\"content\": \"...\"} or bare text")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
