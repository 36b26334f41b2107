package store

import (
	"context"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

// Store is the persistence contract the handlers work against. Employees are
// stored as whole documents with their tasks embedded; there is no separate
// task collection.
type Store interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id string) (models.Employee, error)
	CreateEmployee(ctx context.Context, emp models.Employee) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, upd models.UpdateEmployeeDTO) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error

	AddTask(ctx context.Context, employeeID string, task models.Task) (models.Employee, error)
	UpdateTaskStatus(ctx context.Context, employeeID, taskID string, status models.TaskStatus) (models.Employee, error)

	CountEmployees(ctx context.Context) (int, error)
	InsertEmployees(ctx context.Context, emps []models.Employee) error

	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
}
