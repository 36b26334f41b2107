package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

var roles = []string{
	"Senior Developer", "UI/UX Designer", "Product Manager", "Backend Engineer",
	"QA Engineer", "DevOps Engineer", "Frontend Developer", "Data Analyst",
	"Full Stack Developer", "System Architect", "Mobile Developer", "Security Specialist",
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
}

var taskTitles = []string{
	"Fix login bug", "Update dashboard UI", "Optimize database queries", "Write API documentation",
	"Conduct user research", "Setup CI/CD pipeline", "Implement dark mode", "Create unit tests",
	"Review PR #123", "Design new logo", "Migrate to TypeScript", "Update dependencies",
	"Fix memory leak", "Add payment gateway", "Create landing page", "Refactor legacy code",
	"Setup monitoring", "Configure AWS S3", "Implement OAuth", "Create mobile layout",
}

var departments = []string{"Engineering", "Design", "Product", "Marketing", "Sales", "HR", "Operations"}

var genders = []string{"Male", "Female", "Non-binary"}

var statuses = []models.TaskStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted}

func pick[T any](rng *rand.Rand, arr []T) T {
	return arr[rng.Intn(len(arr))]
}

// Generate produces count random demo employees, each with 1–4 tasks.
func Generate(count int) []models.Employee {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	employees := make([]models.Employee, 0, count)
	for i := 0; i < count; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		name := first + " " + last

		tasks := make([]models.Task, 0)
		for j := 0; j < 1+rng.Intn(4); j++ {
			created := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
			tasks = append(tasks, models.Task{
				ID:        uuid.NewString(),
				Title:     pick(rng, taskTitles),
				Status:    pick(rng, statuses),
				CreatedAt: created,
				UpdatedAt: created,
			})
		}

		employees = append(employees, models.Employee{
			ID:         uuid.NewString(),
			Name:       name,
			Role:       pick(rng, roles),
			Department: pick(rng, departments),
			Email:      strings.ToLower(first) + "." + strings.ToLower(last) + fmt.Sprintf("%d@company.com", i+1),
			Age:        22 + rng.Intn(38),
			Gender:     pick(rng, genders),
			Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%d", i+1),
			Tasks:      tasks,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return employees
}

// LoadFile reads an employee fixture. Identifiers in the file are discarded
// and reassigned so the store never trusts client-provided ids.
func LoadFile(path string) ([]models.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var employees []models.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	now := time.Now().UTC()
	for i := range employees {
		employees[i].ID = uuid.NewString()
		employees[i].CreatedAt = now
		employees[i].UpdatedAt = now
		if employees[i].Tasks == nil {
			employees[i].Tasks = []models.Task{}
		}
		for j := range employees[i].Tasks {
			employees[i].Tasks[j].ID = uuid.NewString()
			if employees[i].Tasks[j].Status == "" {
				employees[i].Tasks[j].Status = models.StatusPending
			}
			if employees[i].Tasks[j].CreatedAt.IsZero() {
				employees[i].Tasks[j].CreatedAt = now
				employees[i].Tasks[j].UpdatedAt = now
			}
		}
	}
	return employees, nil
}
