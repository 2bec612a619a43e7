// Package api exposes the HTTP surface of the application: authentication,
// user administration, file upload, task listing and task distribution.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/agent-tasks/modules/accounts"
	"github.com/example/agent-tasks/modules/attachments"
	"github.com/example/agent-tasks/modules/ratelimit"
	"github.com/example/agent-tasks/modules/tasks"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app          *fiber.App
	port         int
	accountsPort accounts.AccountsPort
	tasksPort    tasks.TasksPort
	attachMod    *attachments.AttachmentsModule
	rateLimit    *ratelimit.Module
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on the given port.
func NewModule(port int) *APIModule {
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"accounts", "tasks"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "accounts":
		m.accountsPort = accounts.NewAccountsAdapter(container)
	case "tasks":
		m.tasksPort = tasks.NewTasksAdapter(container)
	}
}

// SetAttachmentsModule wires the attachment store for non-CSV uploads.
// Optional; without it spreadsheet uploads are rejected. The module's
// service is resolved at Start, after the store has connected.
func (m *APIModule) SetAttachmentsModule(mod *attachments.AttachmentsModule) {
	m.attachMod = mod
}

// SetRateLimiter wires the optional Redis-backed rate limiter.
func (m *APIModule) SetRateLimiter(rl *ratelimit.Module) {
	m.rateLimit = rl
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.accountsPort == nil {
		return fmt.Errorf("accounts dependency not set")
	}
	if m.tasksPort == nil {
		return fmt.Errorf("tasks dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             maxUploadSize * (maxFilesPerUpload + 1),
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())
	if m.rateLimit != nil {
		m.app.Use(m.rateLimit.Middleware())
	}

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	var attachmentsSvc *attachments.Service
	if m.attachMod != nil {
		attachmentsSvc = m.attachMod.GetService()
	}
	handlers := NewHandlers(m.accountsPort, m.tasksPort, attachmentsSvc)

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := m.app.Group("/api")

	// Public routes
	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(AuthMiddleware(m.accountsPort))

	// User administration
	protected.Get("/users", handlers.GetAllUsers)
	protected.Get("/users/role/:role", handlers.GetUsersByRole)
	protected.Put("/users/:email", handlers.UpdateUser)
	protected.Delete("/users/:email", handlers.DeleteUser)
	protected.Put("/update-password", handlers.UpdatePassword)

	// File upload
	protected.Post("/upload", handlers.UploadFile)
	protected.Post("/upload/multiple", handlers.UploadMultipleFiles)
	protected.Get("/attachments", handlers.ListAttachments)

	// Task data
	protected.Get("/csv-data", handlers.GetAllTasks)
	protected.Get("/csv-data/task/:taskId", handlers.SearchTasks)
	protected.Patch("/csv-data/complete/:taskId", handlers.CompleteTask)
	protected.Delete("/csv-data/task/:taskId", handlers.DeleteTask)

	// Task distribution
	protected.Post("/assign-tasks", handlers.AssignTasks)
	protected.Post("/assign-tasks/selected", handlers.AssignTasksToSelected)
	protected.Get("/task-details/agent/:agentId", handlers.GetTasksByAgent)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Message: message,
	})
}
