package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// IsValidStatus reports whether s is one of the three persisted statuses.
func IsValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task is a unit of work embedded in exactly one employee. Tasks are only
// addressable through their parent; deleting the employee removes them.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Employee is a tracked team member with its owned tasks.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	Bio        string    `json:"bio,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	Tasks      []Task    `json:"tasks"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateEmployeeDTO struct {
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Age        int    `json:"age" binding:"required,gt=0"`
	Gender     string `json:"gender" binding:"required"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
	Tasks      []Task `json:"tasks"`
}

// UpdateEmployeeDTO carries a whole-document overwrite of the profile
// fields. Tasks are not touched by an employee update.
type UpdateEmployeeDTO struct {
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Age        int    `json:"age" binding:"required,gt=0"`
	Gender     string `json:"gender" binding:"required"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
}

type CreateTaskDTO struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

type UpdateTaskStatusDTO struct {
	Status TaskStatus `json:"status" binding:"required"`
}
