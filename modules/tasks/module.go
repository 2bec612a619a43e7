package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/agent-tasks/domain/task"
	"github.com/example/agent-tasks/modules/accounts"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TasksModule provides the task store, the CSV ingestion pipeline, and the
// assignment engine.
type TasksModule struct {
	db           *gorm.DB
	service      *TaskService
	accountsPort accounts.AccountsPort
	dbPath       string
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.DependentModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule.
func NewModule() *TasksModule {
	dbPath := os.Getenv("AGENT_TASKS_DB_PATH")
	if dbPath == "" {
		dbPath = "agent_tasks.db"
	}
	return &TasksModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Dependencies returns the list of module dependencies.
func (m *TasksModule) Dependencies() []string {
	return []string{"accounts"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TasksModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "accounts" {
		m.accountsPort = accounts.NewAccountsAdapter(container)
	}
}

// Start initializes the tasks module.
func (m *TasksModule) Start(_ context.Context) error {
	if m.accountsPort == nil {
		return fmt.Errorf("accounts dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewTaskRepository(db), m.accountsPort)

	log.Printf("[tasks] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"ingest-csv": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "ingest-csv", json.Unmarshal, json.Marshal, m.handleIngest)
		},
		"list-tasks": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-tasks", json.Unmarshal, json.Marshal, m.handleListTasks)
		},
		"search-tasks": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "search-tasks", json.Unmarshal, json.Marshal, m.handleSearchTasks)
		},
		"complete-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "complete-task", json.Unmarshal, json.Marshal, m.handleCompleteTask)
		},
		"delete-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-task", json.Unmarshal, json.Marshal, m.handleDeleteTask)
		},
		"assign-all": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "assign-all", json.Unmarshal, json.Marshal, m.handleAssignAll)
		},
		"assign-selected": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "assign-selected", json.Unmarshal, json.Marshal, m.handleAssignSelected)
		},
		"tasks-by-agent": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "tasks-by-agent", json.Unmarshal, json.Marshal, m.handleTasksByAgent)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[tasks] Registered services: ingest-csv, list-tasks, search-tasks, complete-task, delete-task, assign-all, assign-selected, tasks-by-agent")
	return nil
}

// handleIngest runs the CSV ingestion pipeline on an uploaded file.
func (m *TasksModule) handleIngest(ctx context.Context, req IngestRequest, _ *mono.Msg) (IngestResponse, error) {
	count, prefix, err := m.service.Ingest(ctx, req.Data)
	if err != nil {
		return IngestResponse{}, err
	}
	return IngestResponse{
		RecordsProcessed: count,
		BatchPrefix:      prefix,
	}, nil
}

// handleListTasks returns every task.
func (m *TasksModule) handleListTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (TaskListResponse, error) {
	list, err := m.service.List(ctx)
	if err != nil {
		return TaskListResponse{}, err
	}
	return TaskListResponse{Count: len(list), Tasks: list}, nil
}

// handleSearchTasks returns tasks matched by id fragment.
func (m *TasksModule) handleSearchTasks(ctx context.Context, req SearchTasksRequest, _ *mono.Msg) (TaskListResponse, error) {
	list, err := m.service.Search(ctx, req.TaskID)
	if err != nil {
		return TaskListResponse{}, err
	}
	return TaskListResponse{Count: len(list), Tasks: list}, nil
}

// handleCompleteTask marks a task completed.
func (m *TasksModule) handleCompleteTask(ctx context.Context, req CompleteTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Complete(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *t}, nil
}

// handleDeleteTask removes a task.
func (m *TasksModule) handleDeleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Delete(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *t}, nil
}

// handleAssignAll runs the all-agents round-robin distribution.
func (m *TasksModule) handleAssignAll(ctx context.Context, _ AssignAllRequest, _ *mono.Msg) (AssignAllResponse, error) {
	resp, err := m.service.AssignAll(ctx)
	if err != nil {
		return AssignAllResponse{}, err
	}
	return *resp, nil
}

// handleAssignSelected runs the selected-five even split.
func (m *TasksModule) handleAssignSelected(ctx context.Context, req AssignSelectedRequest, _ *mono.Msg) (AssignSelectedResponse, error) {
	resp, err := m.service.AssignSelected(ctx, req.SelectedAgentIDs)
	if err != nil {
		return AssignSelectedResponse{}, err
	}
	return *resp, nil
}

// handleTasksByAgent lists the tasks assigned to one agent.
func (m *TasksModule) handleTasksByAgent(ctx context.Context, req TasksByAgentRequest, _ *mono.Msg) (TaskListResponse, error) {
	list, err := m.service.TasksByAgent(ctx, req.AgentID)
	if err != nil {
		return TaskListResponse{}, err
	}
	return TaskListResponse{Count: len(list), Tasks: list}, nil
}
