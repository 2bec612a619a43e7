package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainaccount "github.com/example/agent-tasks/domain/account"
	domain "github.com/example/agent-tasks/domain/task"
	"github.com/example/agent-tasks/modules/accounts"
)

// mockAccountsPort implements accounts.AccountsPort for testing. Only
// ListAgents is exercised by the task service.
type mockAccountsPort struct {
	listAgentsFunc func(ctx context.Context, userIDs []string) ([]accounts.AgentInfo, error)
}

func (m *mockAccountsPort) ListAgents(ctx context.Context, userIDs []string) ([]accounts.AgentInfo, error) {
	if m.listAgentsFunc != nil {
		return m.listAgentsFunc(ctx, userIDs)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) Register(context.Context, accounts.RegisterRequest) (*accounts.RegisterResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) Login(context.Context, accounts.LoginRequest) (*accounts.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) ValidateToken(context.Context, string) (*domainaccount.Claims, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) Users(context.Context, string) (*accounts.ListUsersResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) UpdateUser(context.Context, accounts.UpdateUserRequest) (*accounts.UpdateUserResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) DeleteUser(context.Context, string) (*accounts.DeleteUserResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) UpdatePassword(context.Context, accounts.UpdatePasswordRequest) (*accounts.UpdatePasswordResponse, error) {
	return nil, errors.New("not implemented")
}

func fixedAgents(agents []accounts.AgentInfo) *mockAccountsPort {
	return &mockAccountsPort{
		listAgentsFunc: func(_ context.Context, userIDs []string) ([]accounts.AgentInfo, error) {
			if userIDs == nil {
				return agents, nil
			}
			byID := make(map[string]accounts.AgentInfo, len(agents))
			for _, a := range agents {
				byID[a.UserID] = a
			}
			resolved := make([]accounts.AgentInfo, 0, len(userIDs))
			for _, id := range userIDs {
				a, ok := byID[id]
				if !ok {
					return nil, errors.New("selected agent not found or not an agent: " + id)
				}
				resolved = append(resolved, a)
			}
			return resolved, nil
		},
	}
}

func fiveAgents() []accounts.AgentInfo {
	return []accounts.AgentInfo{
		{UserID: "a1", Username: "alice", Email: "alice@example.com"},
		{UserID: "a2", Username: "bob", Email: "bob@example.com"},
		{UserID: "a3", Username: "carol", Email: "carol@example.com"},
		{UserID: "a4", Username: "dave", Email: "dave@example.com"},
		{UserID: "a5", Username: "erin", Email: "erin@example.com"},
	}
}

func TestService_Ingest(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	svc := NewTaskService(repo, fixedAgents(nil))

	csv := "FirstName,Phone,Notes\nAlice,5550001,first\nBob,5550002,second\nCarol,5550003,third\n"

	count, prefix, err := svc.Ingest(context.Background(), []byte(csv))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if prefix != "0001" {
		t.Errorf("prefix = %q, want %q", prefix, "0001")
	}

	stored, err := repo.FindPending()
	if err != nil {
		t.Fatalf("FindPending() error = %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored tasks, got %d", len(stored))
	}
	for i, task := range stored {
		want := RowTaskID("0001", i+1)
		if task.TaskID != want {
			t.Errorf("task %d id = %q, want %q", i, task.TaskID, want)
		}
		if task.Status != domain.StatusPending {
			t.Errorf("task %d status = %q, want %q", i, task.Status, domain.StatusPending)
		}
	}

	// A second upload gets the next prefix and restarts row numbering.
	count, prefix, err = svc.Ingest(context.Background(), []byte("FirstName,Phone,Notes\nDave,5550004,\n"))
	if err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}
	if count != 1 || prefix != "0002" {
		t.Errorf("second batch = (%d, %q), want (1, %q)", count, prefix, "0002")
	}
	if _, err := repo.FindByTaskID("0002-001"); err != nil {
		t.Errorf("expected task 0002-001 to exist: %v", err)
	}
}

func TestService_Ingest_EmptyFile(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	svc := NewTaskService(repo, fixedAgents(nil))

	count, prefix, err := svc.Ingest(context.Background(), []byte("FirstName,Phone,Notes\n"))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if count != 0 || prefix != "" {
		t.Errorf("got (%d, %q), want (0, \"\")", count, prefix)
	}

	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no tasks, got %d", len(all))
	}
}

func TestService_AssignAll(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	agents := fiveAgents()[:3]
	svc := NewTaskService(repo, fixedAgents(agents))

	seedBatch(t, repo, "0001", 7)

	resp, err := svc.AssignAll(context.Background())
	if err != nil {
		t.Fatalf("AssignAll() error = %v", err)
	}
	if resp.TotalTasks != 7 {
		t.Errorf("TotalTasks = %d, want 7", resp.TotalTasks)
	}
	if resp.AgentCount != 3 {
		t.Errorf("AgentCount = %d, want 3", resp.AgentCount)
	}
	if len(resp.Assignments) != 7 {
		t.Fatalf("expected 7 assignments, got %d", len(resp.Assignments))
	}

	// 7 tasks over 3 agents: first agent 3, rest 2 each.
	wantCounts := map[string]int{"a1": 3, "a2": 2, "a3": 2}
	for _, s := range resp.Summary {
		if s.AssignedTasks != wantCounts[s.AgentID] {
			t.Errorf("agent %s assigned %d, want %d", s.AgentID, s.AssignedTasks, wantCounts[s.AgentID])
		}
	}

	pending, err := repo.FindPending()
	if err != nil {
		t.Fatalf("FindPending() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending tasks after assignment, got %d", len(pending))
	}
}

func TestService_AssignAll_NoAgents(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	svc := NewTaskService(repo, fixedAgents(nil))

	seedBatch(t, repo, "0001", 2)

	if _, err := svc.AssignAll(context.Background()); !errors.Is(err, ErrNoAgents) {
		t.Errorf("expected ErrNoAgents, got %v", err)
	}

	// Tasks stay untouched.
	pending, err := repo.FindPending()
	if err != nil {
		t.Fatalf("FindPending() error = %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending tasks, got %d", len(pending))
	}
}

func TestService_AssignAll_NoPendingTasks(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	svc := NewTaskService(repo, fixedAgents(fiveAgents()[:2]))

	resp, err := svc.AssignAll(context.Background())
	if err != nil {
		t.Fatalf("AssignAll() error = %v", err)
	}
	if resp.TotalTasks != 0 {
		t.Errorf("TotalTasks = %d, want 0", resp.TotalTasks)
	}
	if resp.Assignments == nil || len(resp.Assignments) != 0 {
		t.Errorf("expected empty assignments slice, got %v", resp.Assignments)
	}
}

func TestService_AssignSelected(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	agents := fiveAgents()
	svc := NewTaskService(repo, fixedAgents(agents))

	seedBatch(t, repo, "0001", 12)

	ids := []string{"a1", "a2", "a3", "a4", "a5"}
	resp, err := svc.AssignSelected(context.Background(), ids)
	if err != nil {
		t.Fatalf("AssignSelected() error = %v", err)
	}

	if resp.TotalTasks != 12 {
		t.Errorf("TotalTasks = %d, want 12", resp.TotalTasks)
	}
	if resp.BaseTasksPerAgent != 2 {
		t.Errorf("BaseTasksPerAgent = %d, want 2", resp.BaseTasksPerAgent)
	}
	if resp.RemainingTasks != 2 {
		t.Errorf("RemainingTasks = %d, want 2", resp.RemainingTasks)
	}

	// 12 over 5: first two agents 3 each, rest 2.
	wantCounts := map[string]int{"a1": 3, "a2": 3, "a3": 2, "a4": 2, "a5": 2}
	for _, s := range resp.Summary {
		if s.AssignedTasks != wantCounts[s.AgentID] {
			t.Errorf("agent %s assigned %d, want %d", s.AgentID, s.AssignedTasks, wantCounts[s.AgentID])
		}
		if s.IsOverloaded {
			t.Errorf("agent %s flagged overloaded at %d tasks", s.AgentID, s.AssignedTasks)
		}
	}
}

func TestService_AssignSelected_InvalidSelection(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	svc := NewTaskService(repo, fixedAgents(fiveAgents()))

	seedBatch(t, repo, "0001", 4)

	for _, ids := range [][]string{
		{"a1", "a2", "a3", "a4"},
		{"a1", "a2", "a3", "a4", "a5", "a1"},
		nil,
	} {
		if _, err := svc.AssignSelected(context.Background(), ids); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("ids=%v: expected ErrInvalidSelection, got %v", ids, err)
		}
	}

	// Nothing was assigned.
	pending, err := repo.FindPending()
	if err != nil {
		t.Fatalf("FindPending() error = %v", err)
	}
	if len(pending) != 4 {
		t.Errorf("expected 4 pending tasks, got %d", len(pending))
	}
}

func TestService_AssignSelected_UnknownAgent(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	svc := NewTaskService(repo, fixedAgents(fiveAgents()))

	seedBatch(t, repo, "0001", 4)

	ids := []string{"a1", "a2", "a3", "a4", "ghost"}
	_, err := svc.AssignSelected(context.Background(), ids)
	if err == nil {
		t.Fatal("expected error for unknown agent, got nil")
	}
	if !strings.Contains(err.Error(), "selected agent not found") {
		t.Errorf("unexpected error: %v", err)
	}

	// Validation happens before any task is touched.
	pending, findErr := repo.FindPending()
	if findErr != nil {
		t.Fatalf("FindPending() error = %v", findErr)
	}
	if len(pending) != 4 {
		t.Errorf("expected 4 pending tasks, got %d", len(pending))
	}
}
