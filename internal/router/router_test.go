package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"scheduler/internal/auth"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/handler"
	"scheduler/internal/logger"
	"scheduler/internal/middleware"
	"scheduler/internal/model"
	"scheduler/internal/repository"
	"scheduler/internal/service"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (m *memoryUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = model.NewID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memoryEvents struct {
	mu     sync.Mutex
	events map[string]model.Event
}

func (m *memoryEvents) Create(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event.ID = model.NewID()
	m.events[event.ID] = *event
	return nil
}

func (m *memoryEvents) FindByID(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ev, nil
}

func (m *memoryEvents) List(_ context.Context, filter repository.EventFilter) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]model.Event, 0)
	for _, ev := range m.events {
		ev := ev
		if filter.Matches(&ev) {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDate.Before(events[j].StartDate) })
	return events, nil
}

func (m *memoryEvents) Update(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = *event
	return nil
}

func (m *memoryEvents) Delete(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, event.ID)
	return nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	users := &memoryUsers{users: map[string]model.User{}}
	events := &memoryEvents{events: map[string]model.Event{}}
	tokens := auth.NewTokenService("router-test-secret")
	log := logger.Nop()

	authService := service.NewAuthService(users, tokens)
	userService := service.NewUserService(users, nil)
	eventService := service.NewEventService(events, users, nil)

	e := echo.New()
	Register(e, log, middleware.NewGuard(tokens, userService, eventService, log), Handlers{
		Auth:  handler.NewAuthHandler(authService, log),
		Event: handler.NewEventHandler(eventService, log),
		User:  handler.NewUserHandler(userService, log),
	})
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	decode(t, rec, &body)
	return body.Message
}

func signupAndLogin(t *testing.T, e *echo.Echo, name, email string) (model.User, string) {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/auth/signup", "", handler.SignupRequest{Name: name, Email: email, PlaintextPassword: "temp"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var user model.User
	decode(t, rec, &user)

	rec = do(t, e, http.MethodPost, "/api/auth/login", "", handler.LoginRequest{Email: email, PlaintextPassword: "temp"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login handler.LoginResponse
	decode(t, rec, &login)
	require.NotEmpty(t, login.AuthToken)

	return user, login.AuthToken
}

func createEvent(t *testing.T, e *echo.Echo, token, start, finish string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, e, http.MethodPost, "/api/events", token, handler.EventRequest{StartDate: &start, FinishDate: &finish})
}

func TestSignupAndLogin(t *testing.T) {
	e := newTestServer(t)
	user, _ := signupAndLogin(t, e, "Alice", "alice@example.com")
	assert.True(t, model.IsValidID(user.ID))

	t.Run("duplicate email", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/auth/signup", "", handler.SignupRequest{Name: "Again", Email: "alice@example.com", PlaintextPassword: "temp"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperrors.MsgSomethingWentWrong, errorMessage(t, rec))
	})

	t.Run("empty email", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/auth/signup", "", handler.SignupRequest{Name: "X", PlaintextPassword: "temp"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "`Email` field provided was empty.", errorMessage(t, rec))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := do(t, e, http.MethodPost, "/api/auth/login", "", handler.LoginRequest{Email: "alice@example.com", PlaintextPassword: "nope"})
		unknown := do(t, e, http.MethodPost, "/api/auth/login", "", handler.LoginRequest{Email: "nobody@example.com", PlaintextPassword: "temp"})
		assert.Equal(t, http.StatusBadRequest, wrong.Code)
		assert.Equal(t, wrong.Code, unknown.Code)
		assert.Equal(t, errorMessage(t, wrong), errorMessage(t, unknown))
	})

	t.Run("users list hides password hashes", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/users", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, strings.Contains(strings.ToLower(rec.Body.String()), "password"))

		var body handler.UsersResponse
		decode(t, rec, &body)
		require.Len(t, body.Users, 1)
		assert.Equal(t, user.ID, body.Users[0].ID)
	})
}

func TestEventLifecycle(t *testing.T) {
	e := newTestServer(t)
	alice, aliceToken := signupAndLogin(t, e, "Alice", "alice@example.com")
	_, bobToken := signupAndLogin(t, e, "Bob", "bob@example.com")

	rec := createEvent(t, e, aliceToken, "2024-03-01T10:00:00Z", "2024-03-01T11:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created model.Event
	decode(t, rec, &created)
	assert.Equal(t, alice.ID, created.UserID)

	rec = do(t, e, http.MethodGet, "/api/events/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched model.Event
	decode(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.True(t, created.StartDate.Equal(fetched.StartDate))
	assert.True(t, created.FinishDate.Equal(fetched.FinishDate))

	t.Run("non-owner cannot delete", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/api/events/"+created.ID, bobToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Event id "+created.ID+" could not be deleted.", errorMessage(t, rec))

		rec = do(t, e, http.MethodGet, "/api/events/"+created.ID, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		start, finish := "2024-03-02", "2024-03-03"
		rec := do(t, e, http.MethodPut, "/api/events/"+created.ID, bobToken, handler.EventRequest{StartDate: &start, FinishDate: &finish})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Event id "+created.ID+" could not be updated.", errorMessage(t, rec))
	})

	t.Run("owner updates", func(t *testing.T) {
		start, finish := "2024-03-02T09:00:00Z", "2024-03-02T10:00:00Z"
		rec := do(t, e, http.MethodPut, "/api/events/"+created.ID, aliceToken, handler.EventRequest{StartDate: &start, FinishDate: &finish})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated model.Event
		decode(t, rec, &updated)
		assert.True(t, updated.StartDate.Equal(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)))
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/api/events/"+created.ID, aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var deleted model.Event
		decode(t, rec, &deleted)
		assert.Equal(t, created.ID, deleted.ID)

		rec = do(t, e, http.MethodGet, "/api/events/"+created.ID, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Event id "+created.ID+" not found.", errorMessage(t, rec))
	})
}

func TestCreateEvent_Validation(t *testing.T) {
	e := newTestServer(t)
	_, token := signupAndLogin(t, e, "Alice", "alice@example.com")

	t.Run("requires a token", func(t *testing.T) {
		rec := createEvent(t, e, "", "2024-03-01T10:00:00Z", "2024-03-01T11:00:00Z")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apperrors.MsgNotAuthorized, errorMessage(t, rec))
	})

	t.Run("equal dates", func(t *testing.T) {
		rec := createEvent(t, e, token, "2024-03-01T10:00:00.000Z", "2024-03-01T10:00:00.000Z")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperrors.MsgCheckDates, errorMessage(t, rec))
	})

	t.Run("finish one millisecond before start", func(t *testing.T) {
		rec := createEvent(t, e, token, "2024-03-01T10:00:00.001Z", "2024-03-01T10:00:00.000Z")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("finish one millisecond after start", func(t *testing.T) {
		rec := createEvent(t, e, token, "2024-03-01T10:00:00.000Z", "2024-03-01T10:00:00.001Z")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing finish", func(t *testing.T) {
		start := "2024-03-01T10:00:00Z"
		rec := do(t, e, http.MethodPost, "/api/events", token, handler.EventRequest{StartDate: &start})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperrors.MsgMissingDates, errorMessage(t, rec))
	})

	t.Run("not a date", func(t *testing.T) {
		rec := createEvent(t, e, token, "someday", "2024-03-01T10:00:00Z")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The field `startDate` was not a date.", errorMessage(t, rec))
	})
}

func TestListEvents_Filters(t *testing.T) {
	e := newTestServer(t)
	alice, aliceToken := signupAndLogin(t, e, "Alice", "alice@example.com")
	_, bobToken := signupAndLogin(t, e, "Bob", "bob@example.com")

	require.Equal(t, http.StatusOK, createEvent(t, e, aliceToken, "2024-01-10T00:00:00Z", "2024-01-11T00:00:00Z").Code)
	require.Equal(t, http.StatusOK, createEvent(t, e, aliceToken, "2024-02-10T00:00:00Z", "2024-02-11T00:00:00Z").Code)
	require.Equal(t, http.StatusOK, createEvent(t, e, bobToken, "2024-03-10T00:00:00Z", "2024-03-11T00:00:00Z").Code)

	list := func(t *testing.T, query string) []model.Event {
		t.Helper()
		rec := do(t, e, http.MethodGet, "/api/events"+query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var events []model.Event
		decode(t, rec, &events)
		return events
	}

	assert.Len(t, list(t, ""), 3)
	assert.Len(t, list(t, "?userId="+alice.ID), 2)
	assert.Len(t, list(t, "?date=2024-02-10T00:00:00Z"), 1)
	assert.Len(t, list(t, "?interval[gte]=2024-01-10T00:00:00Z&interval[lte]=2024-02-10T00:00:00Z"), 2)
	assert.Len(t, list(t, "?lte=2024-01-10T00:00:00Z"), 1)

	gte := list(t, "?gte=2024-02-10T00:00:00Z")
	require.Len(t, gte, 2)
	for _, ev := range gte {
		assert.False(t, ev.StartDate.Before(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	}

	rec := do(t, e, http.MethodGet, "/api/events?interval[gte]=2024-01-01", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.MsgSomethingWentWrong, errorMessage(t, rec))
}

func TestRouting(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodPatch, "/api/events", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/events/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
