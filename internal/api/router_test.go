package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gymguider/fitness-api/internal/core/auth"
	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/service"
	redisstore "github.com/gymguider/fitness-api/internal/infrastructure/db/redis"
)

const testSecret = "router-test-secret-0123456789abcdef"

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memIdentities struct {
	mu   sync.Mutex
	seq  int
	rows map[string]domain.Identity
}

func (r *memIdentities) Create(_ context.Context, u *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == u.Email {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	r.seq++
	row := *u
	row.ID = fmt.Sprintf("u-%d", r.seq)
	r.rows[row.ID] = row
	return &row, nil
}

func (r *memIdentities) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memIdentities) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (r *memIdentities) List(_ context.Context) ([]*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Identity, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		out = append(out, &row)
	}
	return out, nil
}

func (r *memIdentities) Update(_ context.Context, id string, patch domain.IdentityPatch) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Email != nil {
		row.Email = *patch.Email
	}
	r.rows[id] = row
	return &row, nil
}

func (r *memIdentities) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memExercises struct {
	mu   sync.Mutex
	seq  int
	rows map[string]domain.Exercise
}

func (r *memExercises) Create(_ context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Name == e.Name {
			return nil, fmt.Errorf("%w: exercise name already exists", domain.ErrConflict)
		}
	}
	r.seq++
	row := *e
	row.ID = fmt.Sprintf("ex-%d", r.seq)
	r.rows[row.ID] = row
	return &row, nil
}

func (r *memExercises) FindByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (r *memExercises) List(_ context.Context) ([]*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Exercise, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		out = append(out, &row)
	}
	return out, nil
}

func (r *memExercises) Replace(_ context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[e.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.rows[e.ID] = *e
	row := *e
	return &row, nil
}

func (r *memExercises) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memPlans struct {
	mu   sync.Mutex
	seq  int
	rows map[string]domain.WorkoutPlan
}

func (r *memPlans) Create(_ context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	row := *p
	row.ID = fmt.Sprintf("p-%d", r.seq)
	r.rows[row.ID] = row
	return &row, nil
}

func (r *memPlans) FindByID(_ context.Context, id string) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (r *memPlans) List(_ context.Context, ownerID string) ([]*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.WorkoutPlan, 0, len(r.rows))
	for _, row := range r.rows {
		if ownerID == "" || row.OwnerID == ownerID {
			row := row
			out = append(out, &row)
		}
	}
	return out, nil
}

func (r *memPlans) Replace(_ context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.rows[p.ID] = *p
	row := *p
	return &row, nil
}

func (r *memPlans) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memLogs struct {
	mu   sync.Mutex
	seq  int
	rows map[string]domain.WorkoutLog
}

func (r *memLogs) Create(_ context.Context, l *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	row := *l
	row.ID = fmt.Sprintf("l-%d", r.seq)
	r.rows[row.ID] = row
	return &row, nil
}

func (r *memLogs) FindByID(_ context.Context, id string) (*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (r *memLogs) List(_ context.Context, ownerID string) ([]*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.WorkoutLog, 0, len(r.rows))
	for _, row := range r.rows {
		if ownerID == "" || row.OwnerID == ownerID {
			row := row
			out = append(out, &row)
		}
	}
	return out, nil
}

func (r *memLogs) Update(_ context.Context, id string, patch domain.WorkoutLogPatch) (*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.DurationMinutes != nil {
		row.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Notes != nil {
		row.Notes = *patch.Notes
	}
	r.rows[id] = row
	return &row, nil
}

func (r *memLogs) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type testServer struct {
	e     *echo.Echo
	redis *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zerolog.Nop()
	identities := &memIdentities{rows: make(map[string]domain.Identity)}
	exercises := &memExercises{rows: make(map[string]domain.Exercise)}
	plans := &memPlans{rows: make(map[string]domain.WorkoutPlan)}
	logs := &memLogs{rows: make(map[string]domain.WorkoutLog)}

	cfg := auth.TokenConfig{Secret: []byte(testSecret), TTL: time.Hour}
	issuer, err := auth.NewTokenIssuer(cfg, nil)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	verifier, err := auth.NewTokenVerifier(cfg, identities, nil, log)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	policy := auth.NewPolicy()
	limiter := redisstore.NewLoginLimiter(rdb, 3, time.Minute)
	authService := service.NewAuthService(identities, auth.NewBcryptHasher(bcrypt.MinCost), issuer, verifier, limiter, nil, log)

	e := NewRouter(Dependencies{
		Auth:      authService,
		Resolver:  authService,
		Users:     service.NewIdentityService(identities, policy, log),
		Exercises: service.NewExerciseService(exercises, policy, log),
		Plans:     service.NewWorkoutPlanService(plans, logs, exercises, identities, policy, nil, log),
		Logs:      service.NewWorkoutLogService(logs, exercises, identities, policy, nil, log),
		Log:       log,
		Registry:  prometheus.NewRegistry(),
	})
	return &testServer{e: e, redis: mr}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns its id and a fresh token.
func (s *testServer) signup(t *testing.T, name, email, role string) (string, string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", "",
		fmt.Sprintf(`{"name":%q,"email":%q,"password":"Secret1!","role":%q}`, name, email, role))
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var user map[string]any
	decode(t, rec, &user)

	rec = s.do(t, http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"Secret1!"}`, email))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var tok map[string]any
	decode(t, rec, &tok)
	return user["id"].(string), tok["access_token"].(string)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouter_RegisterResponseHasNoSecrets(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"Secret1!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if strings.Contains(body, "Secret1!") || strings.Contains(body, "$2a$") || strings.Contains(body, "password") {
		t.Fatalf("response leaks credential material: %s", body)
	}
	var view map[string]any
	decode(t, rec, &view)
	if view["role"] != "user" {
		t.Fatalf("role = %v, want user", view["role"])
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Ann", "ann@x.com", "")

	rec := s.do(t, http.MethodPost, "/auth/register", "",
		`{"name":"Other","email":"ann@x.com","password":"Another1!"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRouter_LoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Ann", "ann@x.com", "")

	wrong := s.do(t, http.MethodPost, "/auth/login", "", `{"email":"ann@x.com","password":"nope"}`)
	unknown := s.do(t, http.MethodPost, "/auth/login", "", `{"email":"ghost@x.com","password":"nope"}`)

	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %d/%d, want 401/401", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", wrong.Body.String(), unknown.Body.String())
	}
}

func TestRouter_LoginThrottledAfterRepeatedFailures(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Ann", "ann@x.com", "")

	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/auth/login", "", `{"email":"ann@x.com","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, rec.Code)
		}
	}

	rec := s.do(t, http.MethodPost, "/auth/login", "", `{"email":"ann@x.com","password":"Secret1!"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	s.redis.FastForward(2 * time.Minute)
	rec = s.do(t, http.MethodPost, "/auth/login", "", `{"email":"ann@x.com","password":"Secret1!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("after window: status = %d, want 200", rec.Code)
	}
}

func TestRouter_UnauthenticatedResponsesAreUniform(t *testing.T) {
	s := newTestServer(t)

	missing := s.do(t, http.MethodGet, "/auth/me", "", "")
	garbage := s.do(t, http.MethodGet, "/auth/me", "not.a.jwt", "")

	if missing.Code != http.StatusUnauthorized || garbage.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %d/%d, want 401/401", missing.Code, garbage.Code)
	}
	if missing.Body.String() != garbage.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", missing.Body.String(), garbage.Body.String())
	}
}

func TestRouter_TokenOfDeletedUserIsRejected(t *testing.T) {
	s := newTestServer(t)
	id, token := s.signup(t, "Ann", "ann@x.com", "")

	if rec := s.do(t, http.MethodDelete, "/users/"+id, token, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/auth/me", token, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after delete: status = %d, want 401", rec.Code)
	}
}

func TestRouter_UserAccessControl(t *testing.T) {
	s := newTestServer(t)
	annID, annToken := s.signup(t, "Ann", "ann@x.com", "")
	bobID, _ := s.signup(t, "Bob", "bob@x.com", "")
	_, coachToken := s.signup(t, "Coach", "coach@x.com", "trainer")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"self read", http.MethodGet, "/users/" + annID, annToken, "", http.StatusOK},
		{"other read", http.MethodGet, "/users/" + bobID, annToken, "", http.StatusForbidden},
		{"missing record as user", http.MethodGet, "/users/u-999", annToken, "", http.StatusForbidden},
		{"list as user", http.MethodGet, "/users", annToken, "", http.StatusForbidden},
		{"list as trainer", http.MethodGet, "/users", coachToken, "", http.StatusOK},
		{"trainer reads other", http.MethodGet, "/users/" + bobID, coachToken, "", http.StatusOK},
		{"other update", http.MethodPut, "/users/" + bobID, annToken, `{"name":"Hacked"}`, http.StatusForbidden},
		{"self update", http.MethodPut, "/users/" + annID, annToken, `{"name":"Annie"}`, http.StatusOK},
		{"trainer delete other", http.MethodDelete, "/users/" + bobID, coachToken, "", http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.token, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestRouter_ExerciseWritesRequireTrainer(t *testing.T) {
	s := newTestServer(t)
	_, memberToken := s.signup(t, "Ann", "ann@x.com", "")
	_, coachToken := s.signup(t, "Coach", "coach@x.com", "trainer")

	body := `{"name":"Squat","description":"Back squat","muscle_group":"legs","exercise_type":"strength"}`

	if rec := s.do(t, http.MethodPost, "/exercises", memberToken, body); rec.Code != http.StatusForbidden {
		t.Fatalf("member create: status = %d, want 403", rec.Code)
	}
	rec := s.do(t, http.MethodPost, "/exercises", coachToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("trainer create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(t, http.MethodPost, "/exercises", coachToken, body); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: status = %d, want 409", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/exercises", memberToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("member list: status = %d, want 200", rec.Code)
	}
}

func TestRouter_PlanLifecycle(t *testing.T) {
	s := newTestServer(t)
	annID, annToken := s.signup(t, "Ann", "ann@x.com", "")
	_, bobToken := s.signup(t, "Bob", "bob@x.com", "")
	_, coachToken := s.signup(t, "Coach", "coach@x.com", "trainer")

	rec := s.do(t, http.MethodPost, "/exercises", coachToken,
		`{"name":"Row","description":"Rowing machine","muscle_group":"back","exercise_type":"cardio"}`)
	var ex map[string]any
	decode(t, rec, &ex)

	rec = s.do(t, http.MethodPost, "/plans", annToken, fmt.Sprintf(
		`{"title":"Base","level":"beginner","start_date":"2024-03-01","end_date":"2024-03-29","exercises":[{"exercise_id":%q,"sets":3,"reps":10}]}`,
		ex["id"]))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create plan: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Plan domain.WorkoutPlan   `json:"plan"`
		Logs []domain.WorkoutLog `json:"logs"`
	}
	decode(t, rec, &created)
	if created.Plan.OwnerID != annID {
		t.Fatalf("plan owner = %q, want %q", created.Plan.OwnerID, annID)
	}
	if len(created.Logs) != 1 || created.Logs[0].DurationMinutes != 28 || created.Logs[0].ExerciseName != "Row" {
		t.Fatalf("generated logs = %+v", created.Logs)
	}

	planPath := "/plans/" + created.Plan.ID
	if rec := s.do(t, http.MethodGet, planPath, bobToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("other user read: status = %d, want 403", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, planPath, coachToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("trainer read: status = %d, want 200", rec.Code)
	}
	logPath := "/logs/" + created.Logs[0].ID
	if rec := s.do(t, http.MethodPut, logPath, bobToken, `{"notes":"mine now"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("other user log update: status = %d, want 403", rec.Code)
	}
	if rec := s.do(t, http.MethodPut, logPath, annToken, `{"notes":"felt good"}`); rec.Code != http.StatusOK {
		t.Fatalf("owner log update: status = %d, want 200", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/plans", bobToken, "")
	var bobPlans []domain.WorkoutPlan
	decode(t, rec, &bobPlans)
	if len(bobPlans) != 0 {
		t.Fatalf("bob sees %d plans, want 0", len(bobPlans))
	}

	if rec := s.do(t, http.MethodDelete, planPath, annToken, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete: status = %d, want 204", rec.Code)
	}
}

func TestRouter_PlanForUnknownExercise(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, "Ann", "ann@x.com", "")

	rec := s.do(t, http.MethodPost, "/plans", token,
		`{"title":"Base","start_date":"2024-03-01","end_date":"2024-03-29","exercises":[{"exercise_id":"ex-404","sets":3,"reps":10}]}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(t, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: status = %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: status = %d", rec.Code)
	}

	s.do(t, http.MethodGet, "/health", "", "")
	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gymguider_requests_total") {
		t.Fatalf("metrics output missing request counter:\n%s", rec.Body.String())
	}
}
