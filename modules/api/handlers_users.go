package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/example/agent-tasks/modules/accounts"
)

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.UserID == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "user_id, username, email and password are required",
		})
	}

	_, err := h.accounts.Register(c.UserContext(), accounts.RegisterRequest{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Mobile:   req.Mobile,
	})
	if err != nil {
		return serviceError(c, err, "Error registering user")
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{
		Message: "User registered successfully",
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email and password are required",
		})
	}

	resp, err := h.accounts.Login(c.UserContext(), accounts.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(c, err, "Error logging in")
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Message: "Login successful",
		Token:   resp.Token,
		User:    resp.User,
	})
}

// GetAllUsers returns every registered account.
func (h *Handlers) GetAllUsers(c *fiber.Ctx) error {
	resp, err := h.accounts.Users(c.UserContext(), "")
	if err != nil {
		return serviceError(c, err, "Error retrieving users")
	}

	return c.Status(fiber.StatusOK).JSON(UsersResponse{
		Message: "All users retrieved successfully",
		Count:   resp.Count,
		Users:   resp.Users,
	})
}

// GetUsersByRole returns the accounts holding the given role.
func (h *Handlers) GetUsersByRole(c *fiber.Ctx) error {
	role := c.Params("role")

	resp, err := h.accounts.Users(c.UserContext(), role)
	if err != nil {
		return serviceError(c, err, "Error retrieving users")
	}

	if resp.Count == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: fmt.Sprintf("No users found with role: %s", role),
		})
	}

	return c.Status(fiber.StatusOK).JSON(UsersResponse{
		Message: fmt.Sprintf("Users with role: %s", role),
		Count:   resp.Count,
		Users:   resp.Users,
	})
}

// UpdateUser applies profile updates to the account addressed by email.
// Passwords are ignored on this path; the password endpoint owns them.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	email := c.Params("email")

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	resp, err := h.accounts.UpdateUser(c.UserContext(), accounts.UpdateUserRequest{
		Email:    email,
		Username: req.Username,
		Role:     req.Role,
		Mobile:   req.Mobile,
	})
	if err != nil {
		return serviceError(c, err, "Error updating user")
	}

	return c.Status(fiber.StatusOK).JSON(UserResponse{
		Message: "User updated successfully",
		User:    resp.User,
	})
}

// DeleteUser removes the account addressed by email.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	email := c.Params("email")

	resp, err := h.accounts.DeleteUser(c.UserContext(), email)
	if err != nil {
		return serviceError(c, err, "Error deleting user")
	}

	return c.Status(fiber.StatusOK).JSON(DeleteUserResponse{
		Message: "User deleted successfully",
		DeletedUser: DeletedUser{
			Email:    resp.Email,
			Username: resp.Username,
			Role:     resp.Role,
		},
	})
}

// UpdatePassword changes a password after verifying the old one.
func (h *Handlers) UpdatePassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email, old password, and new password are required",
		})
	}

	resp, err := h.accounts.UpdatePassword(c.UserContext(), accounts.UpdatePasswordRequest{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
		Username:    req.Username,
		Mobile:      req.Mobile,
	})
	if err != nil {
		return serviceError(c, err, "Error updating password")
	}

	return c.Status(fiber.StatusOK).JSON(UserResponse{
		Message: "Password updated successfully",
		User:    resp.User,
	})
}
