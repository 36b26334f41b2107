package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/router"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/store"
)

const testSecret = "test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	router.Setup(r, store.NewMemoryStore(), testSecret, nil)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/signup", "", models.SignupRequest{
		Name: "Tester", Email: "tester@x.com", Password: "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return resp.Token
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	return envelope.Message
}

func TestSignup(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/signup", "", models.SignupRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.ID == "" || resp.User.Name != "A" || resp.User.Email != "a@x.com" {
		t.Errorf("unexpected user profile: %+v", resp.User)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("response leaks a password field: %s", w.Body.String())
	}

	// Same email again is a conflict.
	w = doJSON(r, http.MethodPost, "/api/auth/signup", "", models.SignupRequest{
		Name: "B", Email: "a@x.com", Password: "secret2",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}
	if got := message(t, w); got != "User with this email already exists." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestSigninDoesNotLeakWhichPartFailed(t *testing.T) {
	r := newTestRouter()
	signupToken(t, r)

	wrongPassword := doJSON(r, http.MethodPost, "/api/auth/signin", "", models.SigninRequest{
		Email: "tester@x.com", Password: "wrong-password",
	})
	unknownEmail := doJSON(r, http.MethodPost, "/api/auth/signin", "", models.SigninRequest{
		Email: "nobody@x.com", Password: "secret1",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if message(t, wrongPassword) != message(t, unknownEmail) {
		t.Errorf("messages differ: %q vs %q", message(t, wrongPassword), message(t, unknownEmail))
	}

	ok := doJSON(r, http.MethodPost, "/api/auth/signin", "", models.SigninRequest{
		Email: "tester@x.com", Password: "secret1",
	})
	if ok.Code != http.StatusOK {
		t.Fatalf("expected 200 on valid signin, got %d: %s", ok.Code, ok.Body.String())
	}
}

func TestVerify(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)

	w := doJSON(r, http.MethodGet, "/api/auth/verify", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Valid bool              `json:"valid"`
		User  models.PublicUser `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid || resp.User.Email != "tester@x.com" {
		t.Errorf("unexpected verify response: %+v", resp)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/employees", "", nil)
	if w.Code != http.StatusUnauthorized || message(t, w) != "Access denied. No token provided." {
		t.Errorf("missing token: got %d %q", w.Code, message(t, w))
	}

	w = doJSON(r, http.MethodGet, "/api/employees", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized || message(t, w) != "Invalid token." {
		t.Errorf("malformed token: got %d %q", w.Code, message(t, w))
	}

	// A correctly signed but expired token gets the dedicated message.
	expired := mintToken(t, testSecret, -time.Hour)
	w = doJSON(r, http.MethodGet, "/api/employees", expired, nil)
	if w.Code != http.StatusUnauthorized || message(t, w) != "Token expired. Please sign in again." {
		t.Errorf("expired token: got %d %q", w.Code, message(t, w))
	}

	// Signed with the wrong secret.
	forged := mintToken(t, "other-secret", time.Hour)
	w = doJSON(r, http.MethodGet, "/api/employees", forged, nil)
	if w.Code != http.StatusUnauthorized || message(t, w) != "Invalid token." {
		t.Errorf("forged token: got %d %q", w.Code, message(t, w))
	}
}

func mintToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := models.AuthClaims{
		UserID: "someone",
		Email:  "someone@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestUpdatePassword(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)

	w := doJSON(r, http.MethodPut, "/api/auth/update-password", token, models.UpdatePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "longenough",
	})
	if w.Code != http.StatusUnauthorized || message(t, w) != "Current password is incorrect." {
		t.Errorf("wrong current password: got %d %q", w.Code, message(t, w))
	}

	w = doJSON(r, http.MethodPut, "/api/auth/update-password", token, models.UpdatePasswordRequest{
		CurrentPassword: "secret1", NewPassword: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short new password: expected 400, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPut, "/api/auth/update-password", token, models.UpdatePasswordRequest{
		CurrentPassword: "secret1", NewPassword: "newsecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update password: got %d %s", w.Code, w.Body.String())
	}

	// Old password no longer works, new one does.
	old := doJSON(r, http.MethodPost, "/api/auth/signin", "", models.SigninRequest{
		Email: "tester@x.com", Password: "secret1",
	})
	if old.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted: %d", old.Code)
	}
	fresh := doJSON(r, http.MethodPost, "/api/auth/signin", "", models.SigninRequest{
		Email: "tester@x.com", Password: "newsecret",
	})
	if fresh.Code != http.StatusOK {
		t.Errorf("new password rejected: %d %s", fresh.Code, fresh.Body.String())
	}
}

func validEmployee() models.CreateEmployeeDTO {
	return models.CreateEmployeeDTO{
		Name: "Sarah Chen", Role: "Backend Engineer", Department: "Engineering",
		Email: "sarah@company.com", Age: 29, Gender: "Female",
	}
}

func createEmployee(t *testing.T, r *gin.Engine, token string, dto models.CreateEmployeeDTO) models.Employee {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/employees", token, dto)
	if w.Code != http.StatusCreated {
		t.Fatalf("create employee: %d %s", w.Code, w.Body.String())
	}
	var emp models.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &emp); err != nil {
		t.Fatalf("decode employee: %v", err)
	}
	return emp
}

func TestCreateEmployee(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)

	w := doJSON(r, http.MethodPost, "/api/employees", token, validEmployee())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var emp models.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &emp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if emp.ID == "" {
		t.Error("expected a generated id")
	}
	if emp.Tasks == nil || len(emp.Tasks) != 0 {
		t.Errorf("expected empty tasks array, got %v", emp.Tasks)
	}
	if !strings.Contains(w.Body.String(), `"tasks":[]`) {
		t.Errorf("tasks should serialize as an empty array: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "_id") {
		t.Errorf("response leaks an internal identifier: %s", w.Body.String())
	}

	// Missing required fields are rejected.
	w = doJSON(r, http.MethodPost, "/api/employees", token, map[string]any{"name": "Only Name"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for incomplete payload, got %d", w.Code)
	}
}

func TestUpdateAndDeleteEmployee(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)
	emp := createEmployee(t, r, token, validEmployee())

	upd := models.UpdateEmployeeDTO{
		Name: "Sarah Chen", Role: "System Architect", Department: "Engineering",
		Email: "sarah@company.com", Age: 30, Gender: "Female",
	}
	w := doJSON(r, http.MethodPut, "/api/employees/"+emp.ID, token, upd)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var updated models.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Role != "System Architect" || updated.Age != 30 {
		t.Errorf("update not applied: %+v", updated)
	}

	w = doJSON(r, http.MethodPut, "/api/employees/missing", token, upd)
	if w.Code != http.StatusNotFound {
		t.Errorf("update missing: expected 404, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/employees/"+emp.ID, token, nil)
	if w.Code != http.StatusOK || message(t, w) != "Employee deleted successfully" {
		t.Errorf("delete: got %d %q", w.Code, message(t, w))
	}

	w = doJSON(r, http.MethodDelete, "/api/employees/"+emp.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func TestAddTask(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)
	emp := createEmployee(t, r, token, validEmployee())

	w := doJSON(r, http.MethodPost, "/api/employees/"+emp.ID+"/tasks", token, models.CreateTaskDTO{
		Title: "Fix bug", Status: models.StatusPending,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add task: %d %s", w.Code, w.Body.String())
	}
	var updated models.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if len(updated.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(updated.Tasks))
	}
	first := updated.Tasks[0]
	if first.ID == "" {
		t.Error("expected a generated task id")
	}
	if first.Status != models.StatusPending {
		t.Errorf("expected Pending, got %s", first.Status)
	}

	// A second task gets a fresh, distinct id.
	w = doJSON(r, http.MethodPost, "/api/employees/"+emp.ID+"/tasks", token, models.CreateTaskDTO{
		Title: "Write docs",
	})
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if len(updated.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(updated.Tasks))
	}
	if updated.Tasks[1].ID == first.ID {
		t.Error("task ids must be distinct")
	}
	if updated.Tasks[1].Status != models.StatusPending {
		t.Errorf("status should default to Pending, got %s", updated.Tasks[1].Status)
	}

	w = doJSON(r, http.MethodPost, "/api/employees/missing/tasks", token, models.CreateTaskDTO{Title: "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing employee: expected 404, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/employees/"+emp.ID+"/tasks", token, models.CreateTaskDTO{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title: expected 400, got %d", w.Code)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)
	emp := createEmployee(t, r, token, validEmployee())

	w := doJSON(r, http.MethodPost, "/api/employees/"+emp.ID+"/tasks", token, models.CreateTaskDTO{Title: "Ship it"})
	var withTask models.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &withTask)
	task := withTask.Tasks[0]

	time.Sleep(5 * time.Millisecond)
	w = doJSON(r, http.MethodPatch, "/api/employees/"+emp.ID+"/tasks/"+task.ID, token,
		models.UpdateTaskStatusDTO{Status: models.StatusInProgress})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", w.Code, w.Body.String())
	}
	var updated models.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Tasks[0].Status != models.StatusInProgress {
		t.Errorf("expected In Progress, got %s", updated.Tasks[0].Status)
	}
	if !updated.Tasks[0].UpdatedAt.After(task.UpdatedAt) {
		t.Errorf("updatedAt did not advance: %v -> %v", task.UpdatedAt, updated.Tasks[0].UpdatedAt)
	}

	// Unknown status values are never persisted.
	w = doJSON(r, http.MethodPatch, "/api/employees/"+emp.ID+"/tasks/"+task.ID, token,
		models.UpdateTaskStatusDTO{Status: "Done"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status: expected 400, got %d", w.Code)
	}

	// Not-found paths leave the data unchanged.
	w = doJSON(r, http.MethodPatch, "/api/employees/missing/tasks/"+task.ID, token,
		models.UpdateTaskStatusDTO{Status: models.StatusCompleted})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing employee: expected 404, got %d", w.Code)
	}
	w = doJSON(r, http.MethodPatch, "/api/employees/"+emp.ID+"/tasks/missing", token,
		models.UpdateTaskStatusDTO{Status: models.StatusCompleted})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing task: expected 404, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/employees", token, nil)
	var list []models.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list[0].Tasks[0].Status != models.StatusInProgress {
		t.Errorf("failed updates must not change data, got %s", list[0].Tasks[0].Status)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	r := newTestRouter()
	token := signupToken(t, r)

	seed := []models.CreateEmployeeDTO{validEmployee()}

	w := doJSON(r, http.MethodPost, "/api/seed", "", seed)
	if w.Code != http.StatusOK || message(t, w) != "Database seeded successfully" {
		t.Fatalf("first seed: got %d %q", w.Code, message(t, w))
	}

	w = doJSON(r, http.MethodPost, "/api/seed", "", seed)
	if w.Code != http.StatusOK || message(t, w) != "Database already has data" {
		t.Errorf("second seed: got %d %q", w.Code, message(t, w))
	}

	w = doJSON(r, http.MethodGet, "/api/employees", token, nil)
	var list []models.Employee
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Errorf("second seed duplicated data: %d employees", len(list))
	}

	// Seeding an empty collection with garbage is rejected.
	empty := newTestRouter()
	w = doJSON(empty, http.MethodPost, "/api/seed", "", []models.CreateEmployeeDTO{})
	if w.Code != http.StatusBadRequest || message(t, w) != "Invalid seed data" {
		t.Errorf("empty seed: got %d %q", w.Code, message(t, w))
	}
}
