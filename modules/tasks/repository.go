package tasks

import (
	"errors"
	"strings"
	"time"

	domain "github.com/example/agent-tasks/domain/task"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound is returned when no task matches the given id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDuplicateTask is returned when a bulk insert collides on a task id.
	ErrDuplicateTask = errors.New("duplicate task id")
)

// TaskRepository handles task persistence using GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Transaction runs fn against a repository bound to a single transaction.
func (r *TaskRepository) Transaction(fn func(*TaskRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TaskRepository{db: tx})
	})
}

// GreatestTaskID returns the lexicographically greatest task id, or an
// empty string when the store is empty.
func (r *TaskRepository) GreatestTaskID() (string, error) {
	var t domain.Task
	result := r.db.Order("task_id DESC").First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return t.TaskID, nil
}

// CreateBatch bulk-inserts the given tasks.
func (r *TaskRepository) CreateBatch(tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	result := r.db.Create(&tasks)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTask
		}
		return result.Error
	}
	return nil
}

// FindAll returns every task, newest first.
func (r *TaskRepository) FindAll() ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// SearchByTaskID returns tasks whose id contains the fragment,
// case-insensitively, newest first.
func (r *TaskRepository) SearchByTaskID(fragment string) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.
		Where("LOWER(task_id) LIKE ?", "%"+strings.ToLower(fragment)+"%").
		Order("created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// FindPending returns every Pending task in creation order, the order the
// assignment strategies consume.
func (r *TaskRepository) FindPending() ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.
		Where("status = ?", domain.StatusPending).
		Order("created_at ASC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// FindByAgent returns every task assigned to the given agent, newest first.
func (r *TaskRepository) FindByAgent(agentID string) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.
		Where("assigned_agent = ?", agentID).
		Order("created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// FindByTaskID returns the task with the exact id.
func (r *TaskRepository) FindByTaskID(taskID string) (*domain.Task, error) {
	var t domain.Task
	result := r.db.First(&t, "task_id = ?", taskID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &t, nil
}

// Complete marks the task Completed, stamps completed_at, and returns the
// updated record.
func (r *TaskRepository) Complete(taskID string) (*domain.Task, error) {
	t, err := r.FindByTaskID(taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := r.db.Model(t).Updates(map[string]any{
		"status":       domain.StatusCompleted,
		"completed_at": now,
	})
	if result.Error != nil {
		return nil, result.Error
	}

	t.Status = domain.StatusCompleted
	t.CompletedAt = &now
	return t, nil
}

// Delete removes the task with the given id and returns it.
func (r *TaskRepository) Delete(taskID string) (*domain.Task, error) {
	t, err := r.FindByTaskID(taskID)
	if err != nil {
		return nil, err
	}

	result := r.db.Delete(&domain.Task{}, "task_id = ?", taskID)
	if result.Error != nil {
		return nil, result.Error
	}
	return t, nil
}

// ApplyAssignments flips every paired task to In-progress with its agent
// and assignment time in one transaction, so a failure leaves all tasks
// Pending instead of a half-assigned mix.
func (r *TaskRepository) ApplyAssignments(pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pairs {
			result := tx.Model(&domain.Task{}).
				Where("task_id = ?", p.Task.TaskID).
				Updates(map[string]any{
					"status":         domain.StatusInProgress,
					"assigned_agent": p.Agent.UserID,
					"assigned_at":    now,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}
