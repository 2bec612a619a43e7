package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/example/agent-tasks/modules/tasks"
)

// AssignTasks distributes every pending task round-robin across all agents.
func (h *Handlers) AssignTasks(c *fiber.Ctx) error {
	resp, err := h.tasks.AssignAll(c.UserContext())
	if err != nil {
		return serviceError(c, err, "Error assigning tasks to agents")
	}

	if resp.TotalTasks == 0 {
		return c.Status(fiber.StatusOK).JSON(AssignAllResponse{
			Message:     "No pending tasks found",
			TotalTasks:  0,
			Assignments: []tasks.Assignment{},
		})
	}

	return c.Status(fiber.StatusOK).JSON(AssignAllResponse{
		Message: fmt.Sprintf("Successfully assigned %d pending tasks to %d agents",
			resp.TotalTasks, resp.AgentCount),
		TotalTasks:  resp.TotalTasks,
		Assignments: resp.Assignments,
		Summary:     resp.Summary,
	})
}

// AssignTasksToSelected splits every pending task evenly across exactly
// five chosen agents.
func (h *Handlers) AssignTasksToSelected(c *fiber.Ctx) error {
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if len(req.SelectedAgentIDs) != 5 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Please select exactly 5 agents for task assignment",
		})
	}

	resp, err := h.tasks.AssignSelected(c.UserContext(), req.SelectedAgentIDs)
	if err != nil {
		return serviceError(c, err, "Error assigning tasks to selected agents")
	}

	if resp.TotalTasks == 0 {
		return c.Status(fiber.StatusOK).JSON(AssignSelectedResponse{
			Message:        "No pending tasks found in CsvData",
			SelectedAgents: resp.SelectedAgents,
			Assignments:    []tasks.Assignment{},
		})
	}

	return c.Status(fiber.StatusOK).JSON(AssignSelectedResponse{
		Message: fmt.Sprintf("Successfully distributed %d tasks equally among %d selected agents",
			resp.TotalTasks, resp.SelectedAgents),
		TotalTasksInCsv:   resp.TotalTasks,
		SelectedAgents:    resp.SelectedAgents,
		BaseTasksPerAgent: resp.BaseTasksPerAgent,
		RemainingTasks:    resp.RemainingTasks,
		Assignments:       resp.Assignments,
		Summary:           resp.Summary,
		Distribution: &Distribution{
			Type: "equal",
			Description: fmt.Sprintf("Each agent receives %d tasks, with %d agents receiving one extra task",
				resp.BaseTasksPerAgent, resp.RemainingTasks),
		},
	})
}
