package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/revisehub/revisehub/internal/config"
	"github.com/revisehub/revisehub/internal/db"
	"github.com/revisehub/revisehub/internal/revision"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "api-test.db")
	conn, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	engine := gin.New()
	RegisterRoutes(engine, conn,
		config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		config.AuthLimitConfig{Requests: 100, Window: time.Minute},
	)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			t.Fatalf("marshal body: %v", errMarshal)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func signupAndToken(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/v0/auth/signup", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("signup returned no token")
	}
	return token
}

func TestSignupLoginSession(t *testing.T) {
	engine := newTestRouter(t)

	token := signupAndToken(t, engine, "user@example.test")

	// Duplicate sign-up is rejected with the provider's message.
	w := doJSON(t, engine, http.MethodPost, "/v0/auth/signup", "", map[string]string{
		"email":    "user@example.test",
		"password": "secret123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodPost, "/v0/auth/login", "", map[string]string{
		"email":    "user@example.test",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodPost, "/v0/auth/login", "", map[string]string{
		"email":    "user@example.test",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodGet, "/v0/auth/session", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session: expected 200, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodGet, "/v0/auth/session", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated session: expected 401, got %d", w.Code)
	}
}

func TestQuestionLifecycle(t *testing.T) {
	engine := newTestRouter(t)
	token := signupAndToken(t, engine, "study@example.test")

	// Category referenced by name from the question batch.
	w := doJSON(t, engine, http.MethodPost, "/v0/categories", token, map[string]string{"name": "DSA"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// A batch naming an unknown category is rejected whole.
	w = doJSON(t, engine, http.MethodPost, "/v0/questions", token, []map[string]any{
		{"title": "Two Sum", "topic": "Arrays", "category": "DSA"},
		{"title": "CAP Theorem", "topic": "Distributed", "category": "System Design"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad batch: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/v0/questions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	if questions, _ := decode(t, w)["questions"].([]any); len(questions) != 0 {
		t.Fatalf("expected nothing inserted from rejected batch, got %d", len(questions))
	}

	// Valid batch resolves the category id from its name.
	w = doJSON(t, engine, http.MethodPost, "/v0/questions", token, []map[string]any{
		{"title": "Two Sum", "topic": "Arrays", "tags": []string{"easy"}, "category": "DSA", "link": "https://leetcode.com/problems/two-sum/"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create batch: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created, _ := decode(t, w)["questions"].([]any)
	if len(created) != 1 {
		t.Fatalf("expected 1 created question, got %d", len(created))
	}
	first, _ := created[0].(map[string]any)
	if first["category"] != "DSA" {
		t.Fatalf("expected resolved category name, got %v", first["category"])
	}
	questionID := uint64(first["id"].(float64))

	// Freshly created questions are due today.
	w = doJSON(t, engine, http.MethodGet, "/v0/questions?due=today", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("due list: expected 200, got %d", w.Code)
	}
	if due, _ := decode(t, w)["questions"].([]any); len(due) != 1 {
		t.Fatalf("expected 1 due question, got %d", len(due))
	}

	// Rating moves the due date forward and advances the step.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/v0/questions/%d/rate", questionID), token, map[string]int{"confidence": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("rate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rated := decode(t, w)
	if rated["revision_step"] != "R2" {
		t.Fatalf("expected step R2 after first rating, got %v", rated["revision_step"])
	}
	wantDate := time.Now().AddDate(0, 0, 3).Format(revision.DateLayout)
	if rated["next_revision_date"] != wantDate {
		t.Fatalf("expected next date %s, got %v", wantDate, rated["next_revision_date"])
	}

	w = doJSON(t, engine, http.MethodGet, "/v0/questions?due=today", token, nil)
	if due, _ := decode(t, w)["questions"].([]any); len(due) != 0 {
		t.Fatalf("expected no due questions after rating, got %d", len(due))
	}

	// Review history recorded the rating.
	w = doJSON(t, engine, http.MethodGet, "/v0/reviews/stats", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", w.Code)
	}
	stats := decode(t, w)
	if stats["total"].(float64) != 1 {
		t.Fatalf("expected 1 review recorded, got %v", stats["total"])
	}

	// Out-of-range confidence is rejected before any store call.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/v0/questions/%d/rate", questionID), token, map[string]int{"confidence": 6})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad confidence: expected 400, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/v0/questions/%d", questionID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
}

func TestRevisionPlanRoundTrip(t *testing.T) {
	engine := newTestRouter(t)
	token := signupAndToken(t, engine, "plan@example.test")

	w := doJSON(t, engine, http.MethodGet, "/v0/settings/revision-plan", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get plan: expected 200, got %d", w.Code)
	}
	plan, _ := decode(t, w)["revision_plan"].(map[string]any)
	if plan["level1"].(float64) != 1 || plan["level5"].(float64) != 5 {
		t.Fatalf("expected seeded default plan, got %v", plan)
	}

	w = doJSON(t, engine, http.MethodPut, "/v0/settings/revision-plan", token, map[string]any{
		"revision_plan": map[string]int{"level1": 1, "level2": 3, "level3": 7, "level4": 14, "level5": 30},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update plan: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Partial plans are rejected; the stored plan stays intact.
	w = doJSON(t, engine, http.MethodPut, "/v0/settings/revision-plan", token, map[string]any{
		"revision_plan": map[string]int{"level1": 2},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("partial plan: expected 400, got %d", w.Code)
	}

	w = doJSON(t, engine, http.MethodGet, "/v0/settings/revision-plan", token, nil)
	plan, _ = decode(t, w)["revision_plan"].(map[string]any)
	if plan["level5"].(float64) != 30 {
		t.Fatalf("expected level5=30 after update, got %v", plan["level5"])
	}
}

func TestAuthRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "ratelimit-test.db")
	conn, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	engine := gin.New()
	RegisterRoutes(engine, conn,
		config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		config.AuthLimitConfig{Requests: 2, Window: time.Minute},
	)

	var last int
	for i := 0; i < 3; i++ {
		w := doJSON(t, engine, http.MethodPost, "/v0/auth/login", "", map[string]string{
			"email":    "nobody@example.test",
			"password": "whatever",
		})
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third attempt, got %d", last)
	}
}
