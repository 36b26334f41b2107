package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/apperr"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

// PostgresStore keeps employees as document rows: profile columns plus a
// jsonb column holding the embedded task array. Task mutations rewrite the
// whole array, so concurrent writers are last-write-wins at the row level.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id          uuid PRIMARY KEY,
			name        text NOT NULL,
			role        text NOT NULL,
			department  text NOT NULL,
			email       text NOT NULL,
			age         int  NOT NULL,
			gender      text NOT NULL,
			bio         text NOT NULL DEFAULT '',
			avatar      text NOT NULL DEFAULT '',
			tasks       jsonb NOT NULL DEFAULT '[]',
			created_at  timestamptz NOT NULL,
			updated_at  timestamptz NOT NULL
		);
		CREATE TABLE IF NOT EXISTS users (
			id            uuid PRIMARY KEY,
			name          text NOT NULL,
			email         text NOT NULL UNIQUE,
			password_hash text NOT NULL,
			created_at    timestamptz NOT NULL,
			updated_at    timestamptz NOT NULL
		);
	`)
	return err
}

const employeeColumns = `id::text, name, role, department, email, age, gender, bio, avatar, tasks, created_at, updated_at`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var emp models.Employee
	var tasksJSON []byte
	err := row.Scan(&emp.ID, &emp.Name, &emp.Role, &emp.Department, &emp.Email,
		&emp.Age, &emp.Gender, &emp.Bio, &emp.Avatar, &tasksJSON, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return models.Employee{}, err
	}
	if err := json.Unmarshal(tasksJSON, &emp.Tasks); err != nil {
		return models.Employee{}, err
	}
	if emp.Tasks == nil {
		emp.Tasks = []models.Task{}
	}
	return emp, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *PostgresStore) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Employee{}, apperr.ErrEmployeeNotFound
	}
	row := s.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, apperr.ErrEmployeeNotFound
	}
	return emp, err
}

func (s *PostgresStore) CreateEmployee(ctx context.Context, emp models.Employee) (models.Employee, error) {
	tasksJSON, err := json.Marshal(emp.Tasks)
	if err != nil {
		return models.Employee{}, err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO employees (id, name, role, department, email, age, gender, bio, avatar, tasks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, emp.ID, emp.Name, emp.Role, emp.Department, emp.Email, emp.Age, emp.Gender,
		emp.Bio, emp.Avatar, tasksJSON, emp.CreatedAt, emp.UpdatedAt)
	if err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

func (s *PostgresStore) UpdateEmployee(ctx context.Context, id string, upd models.UpdateEmployeeDTO) (models.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Employee{}, apperr.ErrEmployeeNotFound
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE employees
		SET name=$2, role=$3, department=$4, email=$5, age=$6, gender=$7, bio=$8, avatar=$9, updated_at=$10
		WHERE id = $1
		RETURNING `+employeeColumns,
		id, upd.Name, upd.Role, upd.Department, upd.Email, upd.Age, upd.Gender, upd.Bio, upd.Avatar, time.Now().UTC())
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, apperr.ErrEmployeeNotFound
	}
	return emp, err
}

func (s *PostgresStore) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrEmployeeNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrEmployeeNotFound
	}
	return nil
}

func (s *PostgresStore) AddTask(ctx context.Context, employeeID string, task models.Task) (models.Employee, error) {
	emp, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return models.Employee{}, err
	}
	emp.Tasks = append(emp.Tasks, task)
	return s.saveTasks(ctx, emp)
}

func (s *PostgresStore) UpdateTaskStatus(ctx context.Context, employeeID, taskID string, status models.TaskStatus) (models.Employee, error) {
	emp, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return models.Employee{}, err
	}
	found := false
	for i := range emp.Tasks {
		if emp.Tasks[i].ID == taskID {
			emp.Tasks[i].Status = status
			emp.Tasks[i].UpdatedAt = time.Now().UTC()
			found = true
			break
		}
	}
	if !found {
		return models.Employee{}, apperr.ErrTaskNotFound
	}
	return s.saveTasks(ctx, emp)
}

func (s *PostgresStore) saveTasks(ctx context.Context, emp models.Employee) (models.Employee, error) {
	tasksJSON, err := json.Marshal(emp.Tasks)
	if err != nil {
		return models.Employee{}, err
	}
	now := time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `UPDATE employees SET tasks=$2, updated_at=$3 WHERE id=$1`,
		emp.ID, tasksJSON, now)
	if err != nil {
		return models.Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.Employee{}, apperr.ErrEmployeeNotFound
	}
	emp.UpdatedAt = now
	return emp, nil
}

func (s *PostgresStore) CountEmployees(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM employees`).Scan(&count)
	return count, err
}

func (s *PostgresStore) InsertEmployees(ctx context.Context, emps []models.Employee) error {
	for _, emp := range emps {
		if _, err := s.CreateEmployee(ctx, emp); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, apperr.ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id::text, name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.ErrUserNotFound
	}
	return user, err
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, apperr.ErrUserNotFound
	}
	row := s.pool.QueryRow(ctx, `
		SELECT id::text, name, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.ErrUserNotFound
	}
	return user, err
}

func (s *PostgresStore) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash=$2, updated_at=$3 WHERE id=$1`,
		id, passwordHash, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}
