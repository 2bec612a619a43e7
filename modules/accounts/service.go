package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/example/agent-tasks/domain/account"
)

var (
	// ErrInvalidCredentials is returned when a login password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOldPasswordMismatch is returned when the old password presented for
	// a password change does not match the stored hash.
	ErrOldPasswordMismatch = errors.New("old password is incorrect")
	// ErrMissingFields is returned when a required field is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidRole is returned when a role is not Admin or Agent.
	ErrInvalidRole = errors.New("invalid role")
	// ErrUnknownAgent is returned when a selected agent id does not resolve
	// to an account with role Agent.
	ErrUnknownAgent = errors.New("selected agent not found or not an agent")
)

// AccountService handles account and authentication business logic.
type AccountService struct {
	repo   *AccountRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *AccountRepository, hasher *PasswordHasher, jwt *JWTManager) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new account. The role defaults to Agent when absent.
func (s *AccountService) Register(_ context.Context, req RegisterRequest) (*domain.Account, error) {
	if req.UserID == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	role := req.Role
	if role == "" {
		role = domain.RoleAgent
	}
	if role != domain.RoleAdmin && role != domain.RoleAgent {
		return nil, ErrInvalidRole
	}

	exists, err := s.repo.Exists(req.UserID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	acct := &domain.Account{
		UserID:       req.UserID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Mobile:       req.Mobile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(acct); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return acct, nil
}

// Login authenticates an account and returns a signed token. A missing
// account and a wrong password are reported as distinct errors because the
// HTTP surface maps them to 404 and 401 respectively.
func (s *AccountService) Login(_ context.Context, email, password string) (string, *domain.Account, error) {
	acct, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to find account: %w", err)
	}

	if !s.hasher.Verify(password, acct.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(acct)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, acct, nil
}

// ValidateToken validates a bearer token and returns its claims.
func (s *AccountService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}
	return &domain.Claims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Users returns accounts, filtered by role when role is non-empty.
func (s *AccountService) Users(_ context.Context, role string) ([]domain.Account, error) {
	if role == "" {
		return s.repo.FindAll()
	}
	return s.repo.FindByRole(role)
}

// UpdateUser applies profile updates to the account matched by email.
// Password changes never travel through this path.
func (s *AccountService) UpdateUser(_ context.Context, req UpdateUserRequest) (*domain.Account, error) {
	updates := map[string]any{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Role != "" {
		if req.Role != domain.RoleAdmin && req.Role != domain.RoleAgent {
			return nil, ErrInvalidRole
		}
		updates["role"] = req.Role
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	return s.repo.UpdateByEmail(req.Email, updates)
}

// DeleteUser removes the account matched by email and returns it.
func (s *AccountService) DeleteUser(_ context.Context, email string) (*domain.Account, error) {
	return s.repo.DeleteByEmail(email)
}

// UpdatePassword re-verifies the old password and replaces the stored hash.
// Username and mobile updates ride along when provided.
func (s *AccountService) UpdatePassword(_ context.Context, req UpdatePasswordRequest) (*domain.Account, error) {
	if req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		return nil, ErrMissingFields
	}

	acct, err := s.repo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(req.OldPassword, acct.PasswordHash) {
		return nil, ErrOldPasswordMismatch
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	updates := map[string]any{"password_hash": hash}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	return s.repo.UpdateByEmail(req.Email, updates)
}

// ListAgents enumerates agents for the assignment engine. With no ids it
// returns every Agent in creation order; with ids it resolves each one in
// the given order and fails if any id is missing or not an Agent.
func (s *AccountService) ListAgents(_ context.Context, userIDs []string) ([]AgentInfo, error) {
	agents, err := s.repo.FindByRole(domain.RoleAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	if len(userIDs) == 0 {
		infos := make([]AgentInfo, 0, len(agents))
		for _, a := range agents {
			infos = append(infos, agentInfo(a))
		}
		return infos, nil
	}

	byID := make(map[string]domain.Account, len(agents))
	for _, a := range agents {
		byID[a.UserID] = a
	}

	infos := make([]AgentInfo, 0, len(userIDs))
	for _, id := range userIDs {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
		}
		infos = append(infos, agentInfo(a))
	}
	return infos, nil
}

func agentInfo(a domain.Account) AgentInfo {
	return AgentInfo{
		UserID:   a.UserID,
		Username: a.Username,
		Email:    a.Email,
		Mobile:   a.Mobile,
	}
}
