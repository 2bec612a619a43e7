package tasks

import (
	domain "github.com/example/agent-tasks/domain/task"
)

// IngestRequest carries an uploaded delimited file for ingestion.
type IngestRequest struct {
	FileName string `json:"file_name"`
	Data     []byte `json:"data"`
}

// IngestResponse reports the outcome of one file ingestion.
type IngestResponse struct {
	RecordsProcessed int    `json:"records_processed"`
	BatchPrefix      string `json:"batch_prefix"`
}

// ListTasksRequest lists every task.
type ListTasksRequest struct{}

// SearchTasksRequest matches task ids by case-insensitive substring.
type SearchTasksRequest struct {
	TaskID string `json:"task_id"`
}

// TaskListResponse returns matching tasks.
type TaskListResponse struct {
	Count int           `json:"count"`
	Tasks []domain.Task `json:"tasks"`
}

// CompleteTaskRequest marks a task completed.
type CompleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// DeleteTaskRequest removes a task.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// TaskResponse returns a single task.
type TaskResponse struct {
	Task domain.Task `json:"task"`
}

// TasksByAgentRequest lists the tasks assigned to one agent.
type TasksByAgentRequest struct {
	AgentID string `json:"agent_id"`
}

// AssignAllRequest triggers round-robin distribution over every agent.
type AssignAllRequest struct{}

// AssignSelectedRequest triggers an even split over exactly five agents.
type AssignSelectedRequest struct {
	SelectedAgentIDs []string `json:"selectedAgentIds"`
}

// TaskDetails is the contact payload echoed with each assignment.
type TaskDetails struct {
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// Assignment is one (task, agent) pair produced by a distribution run.
type Assignment struct {
	TaskID      string      `json:"taskId"`
	AgentID     string      `json:"agentId"`
	AgentName   string      `json:"agentName"`
	AgentEmail  string      `json:"agentEmail"`
	TaskDetails TaskDetails `json:"taskDetails"`
}

// AgentSummary reports how many tasks one agent absorbed in a run.
type AgentSummary struct {
	AgentID       string `json:"agentId"`
	AgentName     string `json:"agentName"`
	AgentEmail    string `json:"agentEmail"`
	AgentMobile   string `json:"agentMobile,omitempty"`
	AssignedTasks int    `json:"assignedTasks"`
}

// SelectedAgentSummary extends AgentSummary with the even-split quota.
type SelectedAgentSummary struct {
	AgentSummary
	TasksPerAgent int  `json:"tasksPerAgent"`
	IsOverloaded  bool `json:"isOverloaded"`
}

// AssignAllResponse is the outcome of an all-agents round-robin run.
type AssignAllResponse struct {
	TotalTasks  int            `json:"totalTasks"`
	AgentCount  int            `json:"agentCount"`
	Assignments []Assignment   `json:"assignments"`
	Summary     []AgentSummary `json:"summary"`
}

// AssignSelectedResponse is the outcome of a selected-five split run.
type AssignSelectedResponse struct {
	TotalTasks        int                    `json:"totalTasks"`
	SelectedAgents    int                    `json:"selectedAgents"`
	BaseTasksPerAgent int                    `json:"baseTasksPerAgent"`
	RemainingTasks    int                    `json:"remainingTasks"`
	Assignments       []Assignment           `json:"assignments"`
	Summary           []SelectedAgentSummary `json:"summary"`
}
