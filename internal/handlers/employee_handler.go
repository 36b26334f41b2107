package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/apperr"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/store"
)

type EmployeeHandler struct {
	store store.Store
}

func NewEmployeeHandler(s store.Store) *EmployeeHandler {
	return &EmployeeHandler{store: s}
}

func fail(c *gin.Context, err error) {
	c.JSON(apperr.StatusCode(err), gin.H{"message": err.Error()})
}

// ListEmployees returns every employee with its embedded tasks.
// GET /api/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.store.ListEmployees(c.Request.Context())
	if err != nil {
		fail(c, apperr.Service("Failed to fetch employees."))
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployee adds a new employee. Identifiers and timestamps are always
// server-assigned, including for any tasks supplied inline.
// POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var in models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.Validation("Invalid employee payload: "+err.Error()))
		return
	}

	now := time.Now().UTC()
	emp := models.Employee{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Role:       in.Role,
		Department: in.Department,
		Email:      in.Email,
		Age:        in.Age,
		Gender:     in.Gender,
		Bio:        in.Bio,
		Avatar:     in.Avatar,
		Tasks:      make([]models.Task, 0, len(in.Tasks)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, t := range in.Tasks {
		task, err := newTask(models.CreateTaskDTO{Title: t.Title, Description: t.Description, Status: t.Status}, now)
		if err != nil {
			fail(c, err)
			return
		}
		emp.Tasks = append(emp.Tasks, task)
	}

	created, err := h.store.CreateEmployee(c.Request.Context(), emp)
	if err != nil {
		fail(c, apperr.Service("Failed to create employee."))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEmployee overwrites the profile fields of an existing employee.
// PUT /api/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var in models.UpdateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.Validation("Invalid employee payload: "+err.Error()))
		return
	}

	emp, err := h.store.UpdateEmployee(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee removes an employee and, with it, every embedded task.
// DELETE /api/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.store.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// AddTask appends a task to an employee and returns the updated employee.
// POST /api/employees/:id/tasks
func (h *EmployeeHandler) AddTask(c *gin.Context) {
	var in models.CreateTaskDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.Validation("Invalid task payload: "+err.Error()))
		return
	}

	task, err := newTask(in, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}

	emp, err := h.store.AddTask(c.Request.Context(), c.Param("id"), task)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// UpdateTaskStatus overwrites status and updatedAt of one embedded task.
// PATCH /api/employees/:employeeId/tasks/:taskId
func (h *EmployeeHandler) UpdateTaskStatus(c *gin.Context) {
	var in models.UpdateTaskStatusDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.Validation("Invalid status payload: "+err.Error()))
		return
	}
	if !models.IsValidStatus(in.Status) {
		fail(c, apperr.Validation("Status must be Pending, In Progress or Completed."))
		return
	}

	emp, err := h.store.UpdateTaskStatus(c.Request.Context(),
		c.Param("employeeId"), c.Param("taskId"), in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// Seed bulk-loads employees, but only into an empty collection. A second
// call is a no-op that reports the data is already there.
// POST /api/seed
func (h *EmployeeHandler) Seed(c *gin.Context) {
	count, err := h.store.CountEmployees(c.Request.Context())
	if err != nil {
		fail(c, apperr.Service("Failed to inspect employee collection."))
		return
	}
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Database already has data"})
		return
	}

	var in []models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil || len(in) == 0 {
		fail(c, apperr.Validation("Invalid seed data"))
		return
	}

	now := time.Now().UTC()
	employees := make([]models.Employee, 0, len(in))
	for _, dto := range in {
		emp := models.Employee{
			ID:         uuid.NewString(),
			Name:       dto.Name,
			Role:       dto.Role,
			Department: dto.Department,
			Email:      dto.Email,
			Age:        dto.Age,
			Gender:     dto.Gender,
			Bio:        dto.Bio,
			Avatar:     dto.Avatar,
			Tasks:      make([]models.Task, 0, len(dto.Tasks)),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, t := range dto.Tasks {
			task, err := newTask(models.CreateTaskDTO{Title: t.Title, Description: t.Description, Status: t.Status}, now)
			if err != nil {
				fail(c, err)
				return
			}
			emp.Tasks = append(emp.Tasks, task)
		}
		employees = append(employees, emp)
	}

	if err := h.store.InsertEmployees(c.Request.Context(), employees); err != nil {
		fail(c, apperr.Service("Failed to seed database."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded successfully"})
}

func newTask(in models.CreateTaskDTO, now time.Time) (models.Task, error) {
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.IsValidStatus(status) {
		return models.Task{}, apperr.Validation("Status must be Pending, In Progress or Completed.")
	}
	if in.Title == "" {
		return models.Task{}, apperr.Validation("Task title is required.")
	}
	return models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
