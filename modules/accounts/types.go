package accounts

import (
	"time"

	domain "github.com/example/agent-tasks/domain/account"
)

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Mobile   string `json:"mobile"`
}

// RegisterResponse represents an account registration response.
type RegisterResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token and the public identity fields.
type LoginResponse struct {
	Token string        `json:"token"`
	User  domain.Claims `json:"user"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ListUsersRequest asks for accounts, optionally filtered by role.
type ListUsersRequest struct {
	Role string `json:"role,omitempty"`
}

// ListUsersResponse returns matching accounts with password hashes stripped
// by the entity's JSON mapping.
type ListUsersResponse struct {
	Count int              `json:"count"`
	Users []domain.Account `json:"users"`
}

// UpdateUserRequest updates profile fields of the account matched by Email.
// Password changes are not accepted on this path; they go through the
// dedicated update-password service.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
}

// UpdateUserResponse returns the updated account.
type UpdateUserResponse struct {
	User domain.Account `json:"user"`
}

// DeleteUserRequest deletes the account matched by Email.
type DeleteUserRequest struct {
	Email string `json:"email"`
}

// DeleteUserResponse echoes the identity of the removed account.
type DeleteUserResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UpdatePasswordRequest changes a password after re-verifying the old one.
// Username and Mobile ride along when provided, matching the profile form.
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
	Username    string `json:"username,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
}

// UpdatePasswordResponse returns the updated account.
type UpdatePasswordResponse struct {
	User domain.Account `json:"user"`
}

// AgentInfo is the minimal agent identity the assignment engine needs.
type AgentInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
}

// ListAgentsRequest enumerates agents. With UserIDs empty it returns every
// account with role Agent in creation order; otherwise it resolves exactly
// the given ids, preserving their order, and fails if any id is missing or
// does not belong to an Agent.
type ListAgentsRequest struct {
	UserIDs []string `json:"user_ids,omitempty"`
}

// ListAgentsResponse returns the resolved agents.
type ListAgentsResponse struct {
	Agents []AgentInfo `json:"agents"`
}
