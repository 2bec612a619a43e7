package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/agent-tasks/domain/account"
	"github.com/example/agent-tasks/modules/accounts"
)

// mockAccountsPort implements accounts.AccountsPort for testing.
type mockAccountsPort struct {
	validateTokenFunc func(ctx context.Context, token string) (*domain.Claims, error)
}

func (m *mockAccountsPort) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) Register(context.Context, accounts.RegisterRequest) (*accounts.RegisterResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAccountsPort) Login(context.Context, accounts.LoginRequest) (*accounts.LoginResponse, error) {
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

func (m *mockAccountsPort) ListAgents(context.Context, []string) ([]accounts.AgentInfo, error) {
	return nil, errors.New("not implemented")
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mock           *mockAccountsPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mock:           &mockAccountsPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "No token provided",
		},
		{
			name:           "non-bearer scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			mock:           &mockAccountsPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token format",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid-token",
			mock: &mockAccountsPort{
				validateTokenFunc: func(_ context.Context, _ string) (*domain.Claims, error) {
					return nil, errors.New("invalid token")
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:       "valid token reaches the handler",
			authHeader: "Bearer valid-token",
			mock: &mockAccountsPort{
				validateTokenFunc: func(_ context.Context, token string) (*domain.Claims, error) {
					if token != "valid-token" {
						return nil, errors.New("unexpected token")
					}
					return &domain.Claims{
						UserID:   "admin-1",
						Email:    "admin@example.com",
						Username: "admin",
						Role:     domain.RoleAdmin,
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "admin-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(tt.mock))
			app.Get("/protected", func(c *fiber.Ctx) error {
				claims, ok := c.Locals(UserContextKey).(*domain.Claims)
				if !ok {
					return c.Status(fiber.StatusInternalServerError).SendString("no claims in context")
				}
				return c.SendString(claims.UserID)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read response body: %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body %q does not contain %q", body, tt.expectedBody)
			}
		})
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "user not found",
			err:            errors.New("login service call failed: user not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "User not found",
		},
		{
			name:           "invalid credentials",
			err:            errors.New("login service call failed: invalid credentials"),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid credentials",
		},
		{
			name:           "duplicate registration",
			err:            errors.New("register service call failed: user already exists"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "User Already Exists",
		},
		{
			name:           "task not found",
			err:            errors.New("complete-task service call failed: task not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task not found",
		},
		{
			name:           "wrong selection size",
			err:            errors.New("assign-selected service call failed: exactly 5 agents must be selected"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "select exactly 5 agents",
		},
		{
			name:           "unknown agent in selection",
			err:            errors.New("assign-selected service call failed: selected agent not found or not an agent: ghost"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "not valid agents",
		},
		{
			name:           "unrecognized error falls back to 500",
			err:            errors.New("something unexpected"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "fallback message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return serviceError(c, tt.err, "fallback message")
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read response body: %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body %q does not contain %q", body, tt.expectedBody)
			}
		})
	}
}
