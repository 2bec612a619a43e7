package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/agent-tasks/modules/accounts"
	"github.com/example/agent-tasks/modules/api"
	"github.com/example/agent-tasks/modules/attachments"
	"github.com/example/agent-tasks/modules/ratelimit"
	"github.com/example/agent-tasks/modules/tasks"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("Starting agent-tasks application...")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	port := getEnvInt("HTTP_PORT", 3000)

	apiModule := api.NewModule(port)
	attachmentsModule := attachments.NewModule()
	apiModule.SetAttachmentsModule(attachmentsModule)

	// The rate limiter only runs when Redis is configured.
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rateLimitModule := ratelimit.NewModule(redisAddr)
		apiModule.SetRateLimiter(rateLimitModule)
		app.Register(rateLimitModule)
	}

	app.Register(accounts.NewModule())
	app.Register(tasks.NewModule())
	app.Register(attachmentsModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Println("Application started successfully!")
	log.Printf("API available at http://localhost:%d/api", port)
	log.Println("Press Ctrl+C to trigger graceful shutdown")

	// Handles OS signals (SIGINT, SIGTERM, etc.)
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

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s value %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
