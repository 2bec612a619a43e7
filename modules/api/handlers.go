package api

import (
	"github.com/example/agent-tasks/modules/accounts"
	"github.com/example/agent-tasks/modules/attachments"
	"github.com/example/agent-tasks/modules/tasks"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	accounts    accounts.AccountsPort
	tasks       tasks.TasksPort
	attachments *attachments.Service
}

// NewHandlers creates a new Handlers instance. The attachments service may be
// nil when no object store is configured; non-CSV uploads are rejected then.
func NewHandlers(accountsPort accounts.AccountsPort, tasksPort tasks.TasksPort, attachmentsSvc *attachments.Service) *Handlers {
	return &Handlers{
		accounts:    accountsPort,
		tasks:       tasksPort,
		attachments: attachmentsSvc,
	}
}
