package client

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

// FilterAll disables status filtering in Filtered.
const FilterAll = "All"

// TeamState holds the client's copy of the full employee list, fetched once
// at load. Every view is derived from this single list; nothing is fetched
// per view.
type TeamState struct {
	api *Client

	mu        sync.Mutex
	employees []models.Employee
}

func NewTeamState(api *Client) *TeamState {
	return &TeamState{api: api, employees: []models.Employee{}}
}

// Load attempts the idempotent seed (when fixture data is given) and then
// fetches the employee list. A failed seed does not block the fetch.
func (t *TeamState) Load(ctx context.Context, seedData []models.CreateEmployeeDTO) error {
	if len(seedData) > 0 {
		_, _ = t.api.Seed(ctx, seedData)
	}
	return t.Refresh(ctx)
}

// Refresh replaces the local list with the server's.
func (t *TeamState) Refresh(ctx context.Context) error {
	employees, err := t.api.ListEmployees(ctx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.employees = employees
	return nil
}

// Employees returns a copy of the underlying list.
func (t *TeamState) Employees() []models.Employee {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyEmployees(t.employees)
}

func copyEmployees(in []models.Employee) []models.Employee {
	out := make([]models.Employee, 0, len(in))
	for _, emp := range in {
		cp := emp
		cp.Tasks = make([]models.Task, len(emp.Tasks))
		copy(cp.Tasks, emp.Tasks)
		out = append(out, cp)
	}
	return out
}

// SetTaskStatus applies the change locally before the network call resolves.
// On failure the whole list is re-fetched; there is no per-field rollback.
// On success the employee is replaced with the server's copy.
func (t *TeamState) SetTaskStatus(ctx context.Context, employeeID, taskID string, status models.TaskStatus) error {
	t.mu.Lock()
	for i := range t.employees {
		if t.employees[i].ID != employeeID {
			continue
		}
		for j := range t.employees[i].Tasks {
			if t.employees[i].Tasks[j].ID == taskID {
				t.employees[i].Tasks[j].Status = status
				t.employees[i].Tasks[j].UpdatedAt = time.Now().UTC()
			}
		}
	}
	t.mu.Unlock()

	updated, err := t.api.UpdateTaskStatus(ctx, employeeID, taskID, status)
	if err != nil {
		if refreshErr := t.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return err
	}
	t.replace(updated)
	return nil
}

// AddTask updates local state only from the server's response, so task ids
// are always server-assigned.
func (t *TeamState) AddTask(ctx context.Context, employeeID string, task models.CreateTaskDTO) error {
	updated, err := t.api.AddTask(ctx, employeeID, task)
	if err != nil {
		return err
	}
	t.replace(updated)
	return nil
}

// AddEmployee appends the server-created employee to the local list.
func (t *TeamState) AddEmployee(ctx context.Context, emp models.CreateEmployeeDTO) error {
	created, err := t.api.AddEmployee(ctx, emp)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.employees = append(t.employees, created)
	return nil
}

// UpdateEmployee overwrites the local employee with the server's copy.
func (t *TeamState) UpdateEmployee(ctx context.Context, id string, upd models.UpdateEmployeeDTO) error {
	updated, err := t.api.UpdateEmployee(ctx, id, upd)
	if err != nil {
		return err
	}
	t.replace(updated)
	return nil
}

// DeleteEmployee removes the employee locally once the server confirms.
func (t *TeamState) DeleteEmployee(ctx context.Context, id string) error {
	if err := t.api.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.employees {
		if t.employees[i].ID == id {
			t.employees = append(t.employees[:i], t.employees[i+1:]...)
			break
		}
	}
	return nil
}

func (t *TeamState) replace(emp models.Employee) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.employees {
		if t.employees[i].ID == emp.ID {
			t.employees[i] = emp
			return
		}
	}
	t.employees = append(t.employees, emp)
}

// Filtered derives the employee view for a status filter and search query.
// The status filter keeps only matching tasks and drops employees left with
// none. The search is a case-insensitive substring match: a hit on the
// employee's name or role keeps all of its remaining tasks, otherwise the
// tasks are narrowed by title/description match. The underlying list is
// never modified.
func (t *TeamState) Filtered(statusFilter string, query string) []models.Employee {
	t.mu.Lock()
	employees := copyEmployees(t.employees)
	t.mu.Unlock()

	filtered := make([]models.Employee, 0, len(employees))
	for _, emp := range employees {
		if statusFilter != FilterAll {
			kept := emp.Tasks[:0]
			for _, task := range emp.Tasks {
				if string(task.Status) == statusFilter {
					kept = append(kept, task)
				}
			}
			emp.Tasks = kept
		}
		if len(emp.Tasks) == 0 {
			continue
		}
		filtered = append(filtered, emp)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return filtered
	}

	matched := make([]models.Employee, 0, len(filtered))
	for _, emp := range filtered {
		if strings.Contains(strings.ToLower(emp.Name), q) || strings.Contains(strings.ToLower(emp.Role), q) {
			matched = append(matched, emp)
			continue
		}
		kept := emp.Tasks[:0]
		for _, task := range emp.Tasks {
			if strings.Contains(strings.ToLower(task.Title), q) ||
				strings.Contains(strings.ToLower(task.Description), q) {
				kept = append(kept, task)
			}
		}
		emp.Tasks = kept
		if len(emp.Tasks) > 0 {
			matched = append(matched, emp)
		}
	}
	return matched
}

// Stats are the dashboard aggregates over the whole team.
type Stats struct {
	TotalTasks     int
	Completed      int
	InProgress     int
	Pending        int
	CompletionRate int    // round(completed/total*100), 0 when no tasks
	Productivity   string // tasks per employee to one decimal, "0.0" when no employees
}

func (t *TeamState) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Stats
	for _, emp := range t.employees {
		for _, task := range emp.Tasks {
			s.TotalTasks++
			switch task.Status {
			case models.StatusCompleted:
				s.Completed++
			case models.StatusInProgress:
				s.InProgress++
			case models.StatusPending:
				s.Pending++
			}
		}
	}
	if s.TotalTasks > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.TotalTasks) * 100))
	}
	if len(t.employees) > 0 {
		s.Productivity = fmt.Sprintf("%.1f", float64(s.TotalTasks)/float64(len(t.employees)))
	} else {
		s.Productivity = "0.0"
	}
	return s
}

// TaskWithOwner is a flattened task annotated with its employee, for the
// all-tasks view.
type TaskWithOwner struct {
	models.Task
	EmployeeID   string
	EmployeeName string
	EmployeeRole string
}

// Sort orders accepted by AllTasks.
const (
	SortByDate   = "date"
	SortByStatus = "status"
	SortByTitle  = "title"
)

var statusOrder = map[models.TaskStatus]int{
	models.StatusPending:    0,
	models.StatusInProgress: 1,
	models.StatusCompleted:  2,
}

// AllTasks flattens every task across the team, sorted by the given key.
// Date order is newest first.
func (t *TeamState) AllTasks(sortBy string) []TaskWithOwner {
	t.mu.Lock()
	tasks := make([]TaskWithOwner, 0)
	for _, emp := range t.employees {
		for _, task := range emp.Tasks {
			tasks = append(tasks, TaskWithOwner{
				Task:         task,
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				EmployeeRole: emp.Role,
			})
		}
	}
	t.mu.Unlock()

	switch sortBy {
	case SortByStatus:
		sort.SliceStable(tasks, func(i, j int) bool {
			return statusOrder[tasks[i].Status] < statusOrder[tasks[j].Status]
		})
	case SortByTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
	return tasks
}
