package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Service errors arrive flattened to strings after crossing the service
// container, so handlers classify them by substring rather than errors.Is.

type errorRule struct {
	fragment string
	status   int
	message  string
}

var serviceErrorRules = []errorRule{
	{"user already exists", fiber.StatusBadRequest, "User Already Exists"},
	{"user not found", fiber.StatusNotFound, "User not found"},
	{"invalid credentials", fiber.StatusUnauthorized, "Invalid credentials"},
	{"old password is incorrect", fiber.StatusUnauthorized, "Old password is incorrect"},
	{"missing required fields", fiber.StatusBadRequest, "All required fields must be provided"},
	{"invalid email format", fiber.StatusBadRequest, "Invalid email format"},
	{"invalid role", fiber.StatusBadRequest, "Invalid role"},
	{"task not found", fiber.StatusNotFound, "Task not found"},
	{"no agents found", fiber.StatusBadRequest, `No agents found. Please register agents with role "Agent" first.`},
	{"exactly 5 agents must be selected", fiber.StatusBadRequest, "Please select exactly 5 agents for task assignment"},
	{"selected agent not found", fiber.StatusBadRequest, "Some selected agents were not found or are not valid agents"},
}

// serviceError maps a flattened module error onto an HTTP response.
// Unrecognized errors become a 500 with the given fallback message.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	msg := err.Error()
	for _, rule := range serviceErrorRules {
		if strings.Contains(msg, rule.fragment) {
			return c.Status(rule.status).JSON(ErrorResponse{Message: rule.message})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: fallback,
		Detail:  msg,
	})
}
