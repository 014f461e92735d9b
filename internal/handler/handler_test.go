package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"planner-api/internal/handler"
	"planner-api/internal/middleware"
	"planner-api/internal/model"
	"planner-api/internal/service"
	"planner-api/internal/store"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("JWT_SECRET")
	if dbURL == "" || secret == "" {
		t.Skip("DATABASE_URL or JWT_SECRET not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	h := handler.New(store.New(pool), secret, zap.NewNop().Sugar())
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Routes(r, middleware.NewRateLimiter(1000, 1000))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func registerUser(t *testing.T, r *gin.Engine) (token, email string) {
	t.Helper()
	email = fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "testpass123",
		"username": "tester", "full_name": "Test User",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &resp)
	return resp.AccessToken, email
}

func createSchedule(t *testing.T, r *gin.Engine, token, title, date string) model.Schedule {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"title": title, "date": date,
		"start_time": "09:00", "end_time": "10:00",
		"location": "Kantor", "priority": "high",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create schedule: %d %s", w.Code, w.Body.String())
	}
	var sc model.Schedule
	decode(t, w, &sc)
	return sc
}

// ----- auth tests -----

func TestRegister(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)
	if token == "" {
		t.Fatal("empty access token")
	}
}

func TestRegisterValidation(t *testing.T) {
	r := setup(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"empty email", gin.H{"email": "", "password": "testpass123", "username": "x", "full_name": "X"}},
		{"empty password", gin.H{"email": "a@b.com", "password": "", "username": "x", "full_name": "X"}},
		{"short password", gin.H{"email": "a@b.com", "password": "short", "username": "x", "full_name": "X"}},
		{"empty username", gin.H{"email": "a@b.com", "password": "testpass123", "username": "", "full_name": "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := setup(t)
	_, email := registerUser(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "testpass123", "username": "dup", "full_name": "Dup",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", w.Code)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	r := setup(t)
	_, email := registerUser(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "wrongpass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginReturnsProfile(t *testing.T) {
	r := setup(t)
	_, email := registerUser(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "testpass123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken  string        `json:"access_token"`
		RefreshToken string        `json:"refresh_token"`
		Profile      model.Profile `json:"profile"`
	}
	decode(t, w, &resp)
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("missing tokens")
	}
	if resp.Profile.Email != email {
		t.Errorf("profile email = %q, want %q", resp.Profile.Email, email)
	}
}

func TestRefreshRotation(t *testing.T) {
	r := setup(t)
	_, email := registerUser(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "testpass123",
	})
	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	decode(t, w, &login)

	w = do(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": login.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: %d %s", w.Code, w.Body.String())
	}

	// the old token was rotated out
	w = do(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": login.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rotated token, got %d", w.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := setup(t)
	_, email := registerUser(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "testpass123",
	})
	var login struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decode(t, w, &login)

	if w := do(t, r, http.MethodPost, "/api/v1/auth/logout", login.AccessToken, nil); w.Code != http.StatusNoContent {
		t.Fatalf("logout: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": login.RefreshToken}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestNoTokenRejected(t *testing.T) {
	r := setup(t)
	if w := do(t, r, http.MethodGet, "/api/v1/schedules", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

// ----- profile tests -----

func TestProfilePartialUpdate(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)

	w := do(t, r, http.MethodPut, "/api/v1/me/profile", token, gin.H{"phone": "08123456789"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var p model.Profile
	decode(t, w, &p)
	if p.Phone == nil || *p.Phone != "08123456789" {
		t.Errorf("phone not patched: %+v", p.Phone)
	}
	// untouched fields survive the patch
	if p.FullName != "Test User" {
		t.Errorf("full_name clobbered: %q", p.FullName)
	}
}

// ----- schedule tests -----

func TestScheduleCreateThenListVerbatim(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)
	sc := createSchedule(t, r, token, "Rapat Tim", "2025-01-10")

	w := do(t, r, http.MethodGet, "/api/v1/schedules", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var resp struct {
		Schedules []model.Schedule     `json:"schedules"`
		Counts    service.StatusCounts `json:"counts"`
	}
	decode(t, w, &resp)

	if len(resp.Schedules) != 1 {
		t.Fatalf("expected exactly one schedule, got %d", len(resp.Schedules))
	}
	got := resp.Schedules[0]
	if got.ID != sc.ID || got.Title != "Rapat Tim" || got.Date != "2025-01-10" ||
		got.StartTime != "09:00" || got.EndTime != "10:00" ||
		got.Location != "Kantor" || got.Priority != model.PriorityHigh ||
		got.Status != model.StatusPending {
		t.Errorf("fields not preserved verbatim: %+v", got)
	}
	if resp.Counts.Total != 1 || resp.Counts.Pending != 1 {
		t.Errorf("counts wrong: %+v", resp.Counts)
	}
}

func TestScheduleListFiltering(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)
	createSchedule(t, r, token, "Rapat Tim", "2025-01-10")
	createSchedule(t, r, token, "Gym", "2025-01-11")

	var resp struct {
		Schedules []model.Schedule     `json:"schedules"`
		Counts    service.StatusCounts `json:"counts"`
	}

	w := do(t, r, http.MethodGet, "/api/v1/schedules?q=rapat", token, nil)
	decode(t, w, &resp)
	if len(resp.Schedules) != 1 || resp.Schedules[0].Title != "Rapat Tim" {
		t.Errorf("query filter: %+v", resp.Schedules)
	}
	// counts cover the unfiltered list
	if resp.Counts.Total != 2 {
		t.Errorf("counts should ignore filter: %+v", resp.Counts)
	}

	w = do(t, r, http.MethodGet, "/api/v1/schedules?status=completed", token, nil)
	decode(t, w, &resp)
	if len(resp.Schedules) != 0 {
		t.Errorf("status filter: %+v", resp.Schedules)
	}

	if w := do(t, r, http.MethodGet, "/api/v1/schedules?status=bogus", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bogus status, got %d", w.Code)
	}
}

func TestScheduleValidation(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"title": "X", "date": "2025-01-10",
		"start_time": "10:00", "end_time": "09:00",
		"location": "Kantor",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed times, got %d", w.Code)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)
	sc := createSchedule(t, r, token, "Rapat", "2025-01-10")
	path := "/api/v1/schedules/" + sc.ID + "/status"

	// pending -> completed is not wired
	if w := do(t, r, http.MethodPatch, path, token, gin.H{"status": "completed"}); w.Code != http.StatusConflict {
		t.Fatalf("pending->completed: expected 409, got %d", w.Code)
	}

	if w := do(t, r, http.MethodPatch, path, token, gin.H{"status": "ongoing"}); w.Code != http.StatusOK {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPatch, path, token, gin.H{"status": "completed"}); w.Code != http.StatusOK {
		t.Fatalf("complete: %d %s", w.Code, w.Body.String())
	}

	// completed is terminal; re-completing is rejected too
	for _, next := range []string{"pending", "ongoing", "completed"} {
		if w := do(t, r, http.MethodPatch, path, token, gin.H{"status": next}); w.Code != http.StatusConflict {
			t.Errorf("completed->%s: expected 409, got %d", next, w.Code)
		}
	}
}

func TestScheduleDeleteExactlyOne(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)
	a := createSchedule(t, r, token, "A", "2025-01-10")
	b := createSchedule(t, r, token, "B", "2025-01-11")

	if w := do(t, r, http.MethodDelete, "/api/v1/schedules/"+a.ID, token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}

	var resp struct {
		Schedules []model.Schedule `json:"schedules"`
	}
	w := do(t, r, http.MethodGet, "/api/v1/schedules", token, nil)
	decode(t, w, &resp)
	if len(resp.Schedules) != 1 || resp.Schedules[0].ID != b.ID {
		t.Errorf("expected only %s to remain: %+v", b.ID, resp.Schedules)
	}

	// gone means gone
	if w := do(t, r, http.MethodDelete, "/api/v1/schedules/"+a.ID, token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for repeated delete, got %d", w.Code)
	}
}

func TestScheduleOwnershipHidden(t *testing.T) {
	r := setup(t)
	tokenA, _ := registerUser(t, r)
	tokenB, _ := registerUser(t, r)
	sc := createSchedule(t, r, tokenA, "Private", "2025-01-10")

	// foreign records answer 404, never 403
	if w := do(t, r, http.MethodGet, "/api/v1/schedules/"+sc.ID, tokenB, nil); w.Code != http.StatusNotFound {
		t.Errorf("get: expected 404, got %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/v1/schedules/"+sc.ID, tokenB, nil); w.Code != http.StatusNotFound {
		t.Errorf("delete: expected 404, got %d", w.Code)
	}
}

// ----- dashboard tests -----

func TestDashboard(t *testing.T) {
	r := setup(t)
	token, _ := registerUser(t, r)
	createSchedule(t, r, token, "Kemarin", "2020-01-01")

	w := do(t, r, http.MethodGet, "/api/v1/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
	var st service.DashboardStats
	decode(t, w, &st)
	if st.Total != 1 {
		t.Errorf("total = %d, want 1", st.Total)
	}
	if st.TodayTotal != 0 || st.CompletionRate != 0 {
		t.Errorf("stale schedule leaked into today: %+v", st)
	}
}
