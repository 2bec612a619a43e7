package accounts

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/agent-tasks/domain/account"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AccountsPort defines the interface other modules use to access account
// functionality.
type AccountsPort interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	Users(ctx context.Context, role string) (*ListUsersResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*UpdateUserResponse, error)
	DeleteUser(ctx context.Context, email string) (*DeleteUserResponse, error)
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (*UpdatePasswordResponse, error)
	ListAgents(ctx context.Context, userIDs []string) ([]AgentInfo, error)
}

// accountsAdapter implements AccountsPort over the service container.
type accountsAdapter struct {
	container mono.ServiceContainer
}

// NewAccountsAdapter creates a new adapter for accounts services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewAccountsAdapter(container mono.ServiceContainer) AccountsPort {
	if container == nil {
		panic("accounts adapter requires non-nil ServiceContainer")
	}
	return &accountsAdapter{container: container}
}

func (a *accountsAdapter) call(ctx context.Context, service string, req, resp any) error {
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

// Register creates a new account via the register service.
func (a *accountsAdapter) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := a.call(ctx, "register", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates via the login service.
func (a *accountsAdapter) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.call(ctx, "login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken validates a bearer token and returns its claims.
func (a *accountsAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := a.call(ctx, "validate-token", &req, &resp); err != nil {
		return nil, err
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &domain.Claims{
		UserID:   resp.UserID,
		Email:    resp.Email,
		Username: resp.Username,
		Role:     resp.Role,
	}, nil
}

// Users lists accounts, optionally filtered by role.
func (a *accountsAdapter) Users(ctx context.Context, role string) (*ListUsersResponse, error) {
	req := ListUsersRequest{Role: role}
	var resp ListUsersResponse
	if err := a.call(ctx, "list-users", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser applies profile updates via the update-user service.
func (a *accountsAdapter) UpdateUser(ctx context.Context, req UpdateUserRequest) (*UpdateUserResponse, error) {
	var resp UpdateUserResponse
	if err := a.call(ctx, "update-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser removes an account via the delete-user service.
func (a *accountsAdapter) DeleteUser(ctx context.Context, email string) (*DeleteUserResponse, error) {
	req := DeleteUserRequest{Email: email}
	var resp DeleteUserResponse
	if err := a.call(ctx, "delete-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePassword changes a password via the update-password service.
func (a *accountsAdapter) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (*UpdatePasswordResponse, error) {
	var resp UpdatePasswordResponse
	if err := a.call(ctx, "update-password", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAgents enumerates agents via the list-agents service.
func (a *accountsAdapter) ListAgents(ctx context.Context, userIDs []string) ([]AgentInfo, error) {
	req := ListAgentsRequest{UserIDs: userIDs}
	var resp ListAgentsResponse
	if err := a.call(ctx, "list-agents", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}
