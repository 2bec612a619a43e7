package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TasksPort defines the interface other modules use to access task
// functionality.
type TasksPort interface {
	Ingest(ctx context.Context, fileName string, data []byte) (*IngestResponse, error)
	List(ctx context.Context) (*TaskListResponse, error)
	Search(ctx context.Context, taskID string) (*TaskListResponse, error)
	Complete(ctx context.Context, taskID string) (*TaskResponse, error)
	Delete(ctx context.Context, taskID string) (*TaskResponse, error)
	AssignAll(ctx context.Context) (*AssignAllResponse, error)
	AssignSelected(ctx context.Context, selectedAgentIDs []string) (*AssignSelectedResponse, error)
	TasksByAgent(ctx context.Context, agentID string) (*TaskListResponse, error)
}

// tasksAdapter implements TasksPort over the service container.
type tasksAdapter struct {
	container mono.ServiceContainer
}

// NewTasksAdapter creates a new adapter for tasks services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTasksAdapter(container mono.ServiceContainer) TasksPort {
	if container == nil {
		panic("tasks adapter requires non-nil ServiceContainer")
	}
	return &tasksAdapter{container: container}
}

func (a *tasksAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// Ingest runs the CSV ingestion pipeline via the ingest-csv service.
func (a *tasksAdapter) Ingest(ctx context.Context, fileName string, data []byte) (*IngestResponse, error) {
	req := IngestRequest{FileName: fileName, Data: data}
	var resp IngestResponse
	if err := a.call(ctx, "ingest-csv", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns every task via the list-tasks service.
func (a *tasksAdapter) List(ctx context.Context) (*TaskListResponse, error) {
	var resp TaskListResponse
	if err := a.call(ctx, "list-tasks", &ListTasksRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search matches task ids by fragment via the search-tasks service.
func (a *tasksAdapter) Search(ctx context.Context, taskID string) (*TaskListResponse, error) {
	req := SearchTasksRequest{TaskID: taskID}
	var resp TaskListResponse
	if err := a.call(ctx, "search-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Complete marks a task completed via the complete-task service.
func (a *tasksAdapter) Complete(ctx context.Context, taskID string) (*TaskResponse, error) {
	req := CompleteTaskRequest{TaskID: taskID}
	var resp TaskResponse
	if err := a.call(ctx, "complete-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a task via the delete-task service.
func (a *tasksAdapter) Delete(ctx context.Context, taskID string) (*TaskResponse, error) {
	req := DeleteTaskRequest{TaskID: taskID}
	var resp TaskResponse
	if err := a.call(ctx, "delete-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssignAll runs the all-agents distribution via the assign-all service.
func (a *tasksAdapter) AssignAll(ctx context.Context) (*AssignAllResponse, error) {
	var resp AssignAllResponse
	if err := a.call(ctx, "assign-all", &AssignAllRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssignSelected runs the selected-five split via the assign-selected service.
func (a *tasksAdapter) AssignSelected(ctx context.Context, selectedAgentIDs []string) (*AssignSelectedResponse, error) {
	req := AssignSelectedRequest{SelectedAgentIDs: selectedAgentIDs}
	var resp AssignSelectedResponse
	if err := a.call(ctx, "assign-selected", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TasksByAgent lists one agent's tasks via the tasks-by-agent service.
func (a *tasksAdapter) TasksByAgent(ctx context.Context, agentID string) (*TaskListResponse, error) {
	req := TasksByAgentRequest{AgentID: agentID}
	var resp TaskListResponse
	if err := a.call(ctx, "tasks-by-agent", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
