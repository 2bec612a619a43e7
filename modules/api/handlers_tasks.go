package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	domaintask "github.com/example/agent-tasks/domain/task"
)

// GetAllTasks returns every ingested task, newest first.
func (h *Handlers) GetAllTasks(c *fiber.Ctx) error {
	resp, err := h.tasks.List(c.UserContext())
	if err != nil {
		return serviceError(c, err, "Error retrieving CSV data")
	}

	return c.Status(fiber.StatusOK).JSON(TasksResponse{
		Message: "CSV data retrieved successfully",
		Count:   resp.Count,
		Data:    nonNilTasks(resp.Tasks),
	})
}

// SearchTasks returns the tasks whose id contains the given fragment.
func (h *Handlers) SearchTasks(c *fiber.Ctx) error {
	taskID := c.Params("taskId")

	resp, err := h.tasks.Search(c.UserContext(), taskID)
	if err != nil {
		return serviceError(c, err, "Error retrieving CSV data")
	}

	if resp.Count == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: fmt.Sprintf("No records found for Task_id: %s", taskID),
		})
	}

	return c.Status(fiber.StatusOK).JSON(TasksResponse{
		Message: fmt.Sprintf("CSV data for Task_id: %s", taskID),
		Count:   resp.Count,
		Data:    resp.Tasks,
	})
}

// CompleteTask marks a task as completed.
func (h *Handlers) CompleteTask(c *fiber.Ctx) error {
	taskID := c.Params("taskId")

	resp, err := h.tasks.Complete(c.UserContext(), taskID)
	if err != nil {
		return serviceError(c, err, fmt.Sprintf("Error completing task %s", taskID))
	}

	return c.Status(fiber.StatusOK).JSON(TaskResponse{
		Message: fmt.Sprintf("Task %s completed successfully", taskID),
		Task:    resp.Task,
	})
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	taskID := c.Params("taskId")

	resp, err := h.tasks.Delete(c.UserContext(), taskID)
	if err != nil {
		return serviceError(c, err, fmt.Sprintf("Error deleting task %s", taskID))
	}

	return c.Status(fiber.StatusOK).JSON(DeleteTaskResponse{
		Message: fmt.Sprintf("Task %s deleted successfully", taskID),
		DeletedTask: DeletedTask{
			TaskID:        resp.Task.TaskID,
			FirstName:     resp.Task.FirstName,
			Phone:         resp.Task.Phone,
			Status:        resp.Task.Status,
			AssignedAgent: resp.Task.AssignedAgent,
		},
	})
}

// GetTasksByAgent lists the tasks assigned to one agent.
func (h *Handlers) GetTasksByAgent(c *fiber.Ctx) error {
	agentID := c.Params("agentId")

	resp, err := h.tasks.TasksByAgent(c.UserContext(), agentID)
	if err != nil {
		return serviceError(c, err, "Error retrieving task details")
	}

	if resp.Count == 0 {
		return c.Status(fiber.StatusOK).JSON(AgentTasksResponse{
			Message:     fmt.Sprintf("No task assignments found for agent: %s", agentID),
			TaskDetails: nonNilTasks(resp.Tasks),
		})
	}

	return c.Status(fiber.StatusOK).JSON(AgentTasksResponse{
		Message:     fmt.Sprintf("Task details for agent: %s", agentID),
		TaskDetails: resp.Tasks,
	})
}

// nonNilTasks keeps empty result sets serializing as [] instead of null.
func nonNilTasks(ts []domaintask.Task) []domaintask.Task {
	if ts == nil {
		return []domaintask.Task{}
	}
	return ts
}
