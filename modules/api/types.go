package api

import (
	domainaccount "github.com/example/agent-tasks/domain/account"
	domaintask "github.com/example/agent-tasks/domain/task"
	"github.com/example/agent-tasks/modules/attachments"
	"github.com/example/agent-tasks/modules/tasks"
)

// ErrorResponse is the error body every endpoint produces: a human-readable
// message plus the raw error detail.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the registration body.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Mobile   string `json:"mobile"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token and the public identity fields.
type LoginResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    domainaccount.Claims `json:"user"`
}

// UsersResponse lists accounts; password hashes are never serialized.
type UsersResponse struct {
	Message string                  `json:"message"`
	Count   int                     `json:"count"`
	Users   []domainaccount.Account `json:"users"`
}

// UserResponse returns one account after an update.
type UserResponse struct {
	Message string                `json:"message"`
	User    domainaccount.Account `json:"user"`
}

// UpdateUserRequest is the generic profile update body. A password sent on
// this path is silently dropped; the dedicated password endpoint owns it.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// DeletedUser echoes the identity of a removed account.
type DeletedUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// DeleteUserResponse confirms an account deletion.
type DeleteUserResponse struct {
	Message     string      `json:"message"`
	DeletedUser DeletedUser `json:"deletedUser"`
}

// UpdatePasswordRequest is the dedicated password change body.
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
	Username    string `json:"username"`
	Mobile      string `json:"mobile"`
}

// UploadedFile describes one stored upload.
type UploadedFile struct {
	OriginalName string `json:"originalName"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
}

// CsvSummary reports the ingestion outcome for one CSV upload.
type CsvSummary struct {
	RecordsProcessed int    `json:"recordsProcessed"`
	Message          string `json:"message"`
}

// UploadResponse is the single-file upload body.
type UploadResponse struct {
	Message string       `json:"message"`
	File    UploadedFile `json:"file"`
	CsvData *CsvSummary  `json:"csvData,omitempty"`
}

// CsvFileSummary reports one ingested CSV in a multi-file upload.
type CsvFileSummary struct {
	OriginalName     string `json:"originalName"`
	RecordsProcessed int    `json:"recordsProcessed"`
}

// MultiUploadResponse is the multi-file upload body.
type MultiUploadResponse struct {
	Message      string           `json:"message"`
	Count        int              `json:"count"`
	CsvFiles     []CsvFileSummary `json:"csvFiles"`
	RegularFiles []UploadedFile   `json:"regularFiles"`
}

// AttachmentsResponse lists stored non-CSV uploads.
type AttachmentsResponse struct {
	Message     string                    `json:"message"`
	Count       int                       `json:"count"`
	Attachments []*attachments.Attachment `json:"attachments"`
}

// TasksResponse lists tasks.
type TasksResponse struct {
	Message string            `json:"message"`
	Count   int               `json:"count"`
	Data    []domaintask.Task `json:"data"`
}

// TaskResponse returns one task after a state change.
type TaskResponse struct {
	Message string          `json:"message"`
	Task    domaintask.Task `json:"task"`
}

// DeletedTask echoes the summary of a removed task.
type DeletedTask struct {
	TaskID        string  `json:"Task_id"`
	FirstName     string  `json:"firstName"`
	Phone         string  `json:"phone"`
	Status        string  `json:"status"`
	AssignedAgent *string `json:"assignedAgent"`
}

// DeleteTaskResponse confirms a task deletion.
type DeleteTaskResponse struct {
	Message     string      `json:"message"`
	DeletedTask DeletedTask `json:"deletedTask"`
}

// AssignRequest is the selected-agents assignment body.
type AssignRequest struct {
	SelectedAgentIDs []string `json:"selectedAgentIds"`
}

// AssignAllResponse is the all-agents assignment body.
type AssignAllResponse struct {
	Message     string               `json:"message"`
	TotalTasks  int                  `json:"totalTasks"`
	Assignments []tasks.Assignment   `json:"assignments"`
	Summary     []tasks.AgentSummary `json:"summary,omitempty"`
}

// Distribution describes how a selected-agents run split the tasks.
type Distribution struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// AssignSelectedResponse is the selected-agents assignment body.
type AssignSelectedResponse struct {
	Message           string                       `json:"message"`
	TotalTasksInCsv   int                          `json:"totalTasksInCsvData"`
	SelectedAgents    int                          `json:"selectedAgents"`
	BaseTasksPerAgent int                          `json:"baseTasksPerAgent"`
	RemainingTasks    int                          `json:"remainingTasks"`
	Assignments       []tasks.Assignment           `json:"assignments"`
	Summary           []tasks.SelectedAgentSummary `json:"summary,omitempty"`
	Distribution      *Distribution                `json:"distribution,omitempty"`
}

// AgentTasksResponse lists the tasks assigned to one agent.
type AgentTasksResponse struct {
	Message     string            `json:"message"`
	TaskDetails []domaintask.Task `json:"taskDetails"`
}
