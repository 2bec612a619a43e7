package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/agent-tasks/domain/task"
	"github.com/example/agent-tasks/modules/accounts"
)

const selectedAgentCount = 5

var (
	// ErrNoAgents is returned when a distribution run finds no agents.
	ErrNoAgents = errors.New("no agents found")
	// ErrInvalidSelection is returned when the selected-agents run is not
	// given exactly five agent ids.
	ErrInvalidSelection = errors.New("exactly 5 agents must be selected")
)

// TaskService owns the ingestion pipeline and the assignment engine.
type TaskService struct {
	repo     *TaskRepository
	accounts accounts.AccountsPort
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository, accountsPort accounts.AccountsPort) *TaskService {
	return &TaskService{
		repo:     repo,
		accounts: accountsPort,
	}
}

// Ingest parses an uploaded delimited file and bulk-inserts its rows as
// Pending tasks sharing one batch prefix. Prefix derivation and the insert
// run in a single transaction so concurrent uploads cannot mint the same
// prefix.
func (s *TaskService) Ingest(_ context.Context, data []byte) (int, string, error) {
	rows, err := ParseRows(bytes.NewReader(data))
	if err != nil {
		return 0, "", err
	}
	if len(rows) == 0 {
		return 0, "", nil
	}

	var prefix string
	err = s.repo.Transaction(func(tx *TaskRepository) error {
		greatest, err := tx.GreatestTaskID()
		if err != nil {
			return fmt.Errorf("failed to read greatest task id: %w", err)
		}
		prefix = NextBatchPrefix(greatest)

		now := time.Now()
		batch := make([]domain.Task, 0, len(rows))
		for i, row := range rows {
			batch = append(batch, domain.Task{
				TaskID:    RowTaskID(prefix, i+1),
				FirstName: row.FirstName,
				Phone:     row.Phone,
				Notes:     row.Notes,
				Status:    domain.StatusPending,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		return tx.CreateBatch(batch)
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to store csv batch: %w", err)
	}
	return len(rows), prefix, nil
}

// List returns every task, newest first.
func (s *TaskService) List(_ context.Context) ([]domain.Task, error) {
	return s.repo.FindAll()
}

// Search returns tasks whose id contains the fragment, case-insensitively.
func (s *TaskService) Search(_ context.Context, fragment string) ([]domain.Task, error) {
	return s.repo.SearchByTaskID(fragment)
}

// Complete marks the task Completed and stamps its completion time.
func (s *TaskService) Complete(_ context.Context, taskID string) (*domain.Task, error) {
	return s.repo.Complete(taskID)
}

// Delete removes the task with the given id.
func (s *TaskService) Delete(_ context.Context, taskID string) (*domain.Task, error) {
	return s.repo.Delete(taskID)
}

// TasksByAgent returns the tasks assigned to one agent, newest first.
func (s *TaskService) TasksByAgent(_ context.Context, agentID string) ([]domain.Task, error) {
	return s.repo.FindByAgent(agentID)
}

// AssignAll distributes every Pending task across every Agent round-robin.
// With no pending tasks it returns an empty result rather than an error.
func (s *TaskService) AssignAll(ctx context.Context) (*AssignAllResponse, error) {
	agents, err := s.accounts.ListAgents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate agents: %w", err)
	}
	if len(agents) == 0 {
		return nil, ErrNoAgents
	}

	pending, err := s.repo.FindPending()
	if err != nil {
		return nil, fmt.Errorf("failed to load pending tasks: %w", err)
	}

	resp := &AssignAllResponse{
		TotalTasks:  len(pending),
		AgentCount:  len(agents),
		Assignments: []Assignment{},
		Summary:     []AgentSummary{},
	}
	if len(pending) == 0 {
		return resp, nil
	}

	pairs := RoundRobin(pending, agents)
	if err := s.repo.ApplyAssignments(pairs); err != nil {
		return nil, fmt.Errorf("failed to apply assignments: %w", err)
	}

	assignments, counts := assignmentList(pairs)
	resp.Assignments = assignments
	for _, a := range agents {
		resp.Summary = append(resp.Summary, AgentSummary{
			AgentID:       a.UserID,
			AgentName:     a.Username,
			AgentEmail:    a.Email,
			AgentMobile:   a.Mobile,
			AssignedTasks: counts[a.UserID],
		})
	}
	return resp, nil
}

// AssignSelected splits every Pending task as evenly as possible across
// exactly five selected agents, earlier selections absorbing the remainder.
// The selection is validated before any task is touched.
func (s *TaskService) AssignSelected(ctx context.Context, selectedAgentIDs []string) (*AssignSelectedResponse, error) {
	if len(selectedAgentIDs) != selectedAgentCount {
		return nil, ErrInvalidSelection
	}

	agents, err := s.accounts.ListAgents(ctx, selectedAgentIDs)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.FindPending()
	if err != nil {
		return nil, fmt.Errorf("failed to load pending tasks: %w", err)
	}

	base := len(pending) / selectedAgentCount
	remainder := len(pending) % selectedAgentCount

	resp := &AssignSelectedResponse{
		TotalTasks:        len(pending),
		SelectedAgents:    len(agents),
		BaseTasksPerAgent: base,
		RemainingTasks:    remainder,
		Assignments:       []Assignment{},
		Summary:           []SelectedAgentSummary{},
	}
	if len(pending) == 0 {
		return resp, nil
	}

	pairs := EvenSplit(pending, agents)
	if err := s.repo.ApplyAssignments(pairs); err != nil {
		return nil, fmt.Errorf("failed to apply assignments: %w", err)
	}

	assignments, counts := assignmentList(pairs)
	resp.Assignments = assignments
	for _, a := range agents {
		resp.Summary = append(resp.Summary, SelectedAgentSummary{
			AgentSummary: AgentSummary{
				AgentID:       a.UserID,
				AgentName:     a.Username,
				AgentEmail:    a.Email,
				AgentMobile:   a.Mobile,
				AssignedTasks: counts[a.UserID],
			},
			TasksPerAgent: base,
			IsOverloaded:  counts[a.UserID] > base+1,
		})
	}
	return resp, nil
}

// assignmentList flattens distribution pairs into wire assignments and
// per-agent counts.
func assignmentList(pairs []Pair) ([]Assignment, map[string]int) {
	assignments := make([]Assignment, 0, len(pairs))
	counts := make(map[string]int)
	for _, p := range pairs {
		assignments = append(assignments, Assignment{
			TaskID:     p.Task.TaskID,
			AgentID:    p.Agent.UserID,
			AgentName:  p.Agent.Username,
			AgentEmail: p.Agent.Email,
			TaskDetails: TaskDetails{
				FirstName: p.Task.FirstName,
				Phone:     p.Task.Phone,
				Notes:     p.Task.Notes,
			},
		})
		counts[p.Agent.UserID]++
	}
	return assignments, counts
}
