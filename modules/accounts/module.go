package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	domain "github.com/example/agent-tasks/domain/account"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AccountsModule provides account storage and authentication services.
type AccountsModule struct {
	db      *gorm.DB
	service *AccountService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AccountsModule)(nil)
var _ mono.ServiceProviderModule = (*AccountsModule)(nil)
var _ mono.HealthCheckableModule = (*AccountsModule)(nil)

// NewModule creates a new AccountsModule.
func NewModule() *AccountsModule {
	// Use environment variable for DB path, default to local file
	dbPath := os.Getenv("AGENT_TASKS_DB_PATH")
	if dbPath == "" {
		dbPath = "agent_tasks.db"
	}
	return &AccountsModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *AccountsModule) Name() string {
	return "accounts"
}

// Start initializes the accounts module.
func (m *AccountsModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Account{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewAccountRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(loadJWTConfig())

	m.service = NewAccountService(repo, hasher, jwtManager)

	log.Printf("[accounts] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *AccountsModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[accounts] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AccountsModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AccountsModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"register": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		},
		"login": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		},
		"validate-token": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken)
		},
		"list-users": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-users", json.Unmarshal, json.Marshal, m.handleListUsers)
		},
		"update-user": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-user", json.Unmarshal, json.Marshal, m.handleUpdateUser)
		},
		"delete-user": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-user", json.Unmarshal, json.Marshal, m.handleDeleteUser)
		},
		"update-password": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-password", json.Unmarshal, json.Marshal, m.handleUpdatePassword)
		},
		"list-agents": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-agents", json.Unmarshal, json.Marshal, m.handleListAgents)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[accounts] Registered services: register, login, validate-token, list-users, update-user, delete-user, update-password, list-agents")
	return nil
}

// handleRegister handles account registration.
func (m *AccountsModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	acct, err := m.service.Register(ctx, req)
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{
		UserID:    acct.UserID,
		Username:  acct.Username,
		Email:     acct.Email,
		Role:      acct.Role,
		CreatedAt: acct.CreatedAt,
	}, nil
}

// handleLogin handles account login.
func (m *AccountsModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, acct, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Token: token,
		User: domain.Claims{
			UserID:   acct.UserID,
			Email:    acct.Email,
			Username: acct.Username,
			Role:     acct.Role,
		},
	}, nil
}

// handleValidateToken handles token validation.
func (m *AccountsModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// handleListUsers handles account listing, optionally filtered by role.
func (m *AccountsModule) handleListUsers(ctx context.Context, req ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	users, err := m.service.Users(ctx, req.Role)
	if err != nil {
		return ListUsersResponse{}, err
	}

	return ListUsersResponse{
		Count: len(users),
		Users: users,
	}, nil
}

// handleUpdateUser handles profile updates.
func (m *AccountsModule) handleUpdateUser(ctx context.Context, req UpdateUserRequest, _ *mono.Msg) (UpdateUserResponse, error) {
	acct, err := m.service.UpdateUser(ctx, req)
	if err != nil {
		return UpdateUserResponse{}, err
	}
	return UpdateUserResponse{User: *acct}, nil
}

// handleDeleteUser handles account deletion.
func (m *AccountsModule) handleDeleteUser(ctx context.Context, req DeleteUserRequest, _ *mono.Msg) (DeleteUserResponse, error) {
	acct, err := m.service.DeleteUser(ctx, req.Email)
	if err != nil {
		return DeleteUserResponse{}, err
	}
	return DeleteUserResponse{
		Email:    acct.Email,
		Username: acct.Username,
		Role:     acct.Role,
	}, nil
}

// handleUpdatePassword handles password changes.
func (m *AccountsModule) handleUpdatePassword(ctx context.Context, req UpdatePasswordRequest, _ *mono.Msg) (UpdatePasswordResponse, error) {
	acct, err := m.service.UpdatePassword(ctx, req)
	if err != nil {
		return UpdatePasswordResponse{}, err
	}
	return UpdatePasswordResponse{User: *acct}, nil
}

// handleListAgents handles agent enumeration for the assignment engine.
func (m *AccountsModule) handleListAgents(ctx context.Context, req ListAgentsRequest, _ *mono.Msg) (ListAgentsResponse, error) {
	agents, err := m.service.ListAgents(ctx, req.UserIDs)
	if err != nil {
		return ListAgentsResponse{}, err
	}
	return ListAgentsResponse{Agents: agents}, nil
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}
	if ttl := os.Getenv("JWT_TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.TokenTTL = d
		}
	}

	return config
}
