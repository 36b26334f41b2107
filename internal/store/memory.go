package store

import (
	"context"
	"sync"
	"time"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/apperr"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

// MemoryStore is an in-process Store used by tests and by `serve --memory`
// when no database is available. Values are copied on the way in and out so
// callers never share slices with the store.
type MemoryStore struct {
	mu        sync.Mutex
	employees []models.Employee
	users     map[string]models.User // keyed by id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: make([]models.Employee, 0),
		users:     make(map[string]models.User),
	}
}

func copyEmployee(emp models.Employee) models.Employee {
	out := emp
	out.Tasks = make([]models.Task, len(emp.Tasks))
	copy(out.Tasks, emp.Tasks)
	return out
}

func (s *MemoryStore) ListEmployees(_ context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		out = append(out, copyEmployee(emp))
	}
	return out, nil
}

func (s *MemoryStore) GetEmployee(_ context.Context, id string) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, emp := range s.employees {
		if emp.ID == id {
			return copyEmployee(emp), nil
		}
	}
	return models.Employee{}, apperr.ErrEmployeeNotFound
}

func (s *MemoryStore) CreateEmployee(_ context.Context, emp models.Employee) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = append(s.employees, copyEmployee(emp))
	return emp, nil
}

func (s *MemoryStore) UpdateEmployee(_ context.Context, id string, upd models.UpdateEmployeeDTO) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.employees {
		if s.employees[i].ID != id {
			continue
		}
		emp := &s.employees[i]
		emp.Name = upd.Name
		emp.Role = upd.Role
		emp.Department = upd.Department
		emp.Email = upd.Email
		emp.Age = upd.Age
		emp.Gender = upd.Gender
		emp.Bio = upd.Bio
		emp.Avatar = upd.Avatar
		emp.UpdatedAt = time.Now().UTC()
		return copyEmployee(*emp), nil
	}
	return models.Employee{}, apperr.ErrEmployeeNotFound
}

func (s *MemoryStore) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.employees {
		if s.employees[i].ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			return nil
		}
	}
	return apperr.ErrEmployeeNotFound
}

func (s *MemoryStore) AddTask(_ context.Context, employeeID string, task models.Task) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.employees {
		if s.employees[i].ID == employeeID {
			s.employees[i].Tasks = append(s.employees[i].Tasks, task)
			s.employees[i].UpdatedAt = time.Now().UTC()
			return copyEmployee(s.employees[i]), nil
		}
	}
	return models.Employee{}, apperr.ErrEmployeeNotFound
}

func (s *MemoryStore) UpdateTaskStatus(_ context.Context, employeeID, taskID string, status models.TaskStatus) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.employees {
		if s.employees[i].ID != employeeID {
			continue
		}
		for j := range s.employees[i].Tasks {
			if s.employees[i].Tasks[j].ID == taskID {
				s.employees[i].Tasks[j].Status = status
				s.employees[i].Tasks[j].UpdatedAt = time.Now().UTC()
				s.employees[i].UpdatedAt = time.Now().UTC()
				return copyEmployee(s.employees[i]), nil
			}
		}
		return models.Employee{}, apperr.ErrTaskNotFound
	}
	return models.Employee{}, apperr.ErrEmployeeNotFound
}

func (s *MemoryStore) CountEmployees(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.employees), nil
}

func (s *MemoryStore) InsertEmployees(_ context.Context, emps []models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, emp := range emps {
		s.employees = append(s.employees, copyEmployee(emp))
	}
	return nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, apperr.ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, apperr.ErrUserNotFound
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, apperr.ErrUserNotFound
	}
	return user, nil
}

func (s *MemoryStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return apperr.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return nil
}
