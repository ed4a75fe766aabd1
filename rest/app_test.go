package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpmalinova/Household-Manager/config"
	"github.com/hpmalinova/Household-Manager/model"
	"github.com/hpmalinova/Household-Manager/repository"
	"github.com/hpmalinova/Household-Manager/service"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:              "test-secret",
		TokenTTL:               time.Hour,
		AllowLastAdminDemotion: true,
		MemberRemovalPolicy:    "unclaim",
		Database: config.Database{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "rest.db"),
		},
	}

	db, cleanup, err := repository.NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	store := repository.NewStore(db)
	policy, err := service.NewPolicy(cfg)
	require.NoError(t, err)

	a, err := NewApp(cfg, store,
		service.NewGroups(store),
		service.NewMembership(store, policy),
		service.NewLedger(store, policy),
		service.NewBoard(store),
	)
	require.NoError(t, err)
	return a
}

func do(t *testing.T, a *App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decode(t, rr, &body)
	msg, _ := body["message"].(string)
	return msg
}

// signUp registers username and logs in, returning the token and user id.
func signUp(t *testing.T, a *App, username string) (string, uint) {
	t.Helper()

	creds := map[string]string{"username": username, "password": "correct-horse"}
	rr := do(t, a, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, a, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	decode(t, rr, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

type flat struct {
	aliceToken, bobToken string
	groupID              uint
	bobMemberID          uint
	aliceMemberID        uint
}

// newFlat creates a group owned by alice with bob as a regular member.
func newFlat(t *testing.T, a *App) flat {
	t.Helper()

	var f flat
	f.aliceToken, _ = signUp(t, a, "alice")
	f.bobToken, _ = signUp(t, a, "bob")

	rr := do(t, a, http.MethodPost, "/api/groups", f.aliceToken, map[string]string{"name": "Flat 4B"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var group model.Group
	decode(t, rr, &group)
	f.groupID = group.ID

	rr = do(t, a, http.MethodPost, "/api/group-members", f.aliceToken, map[string]interface{}{
		"groupId": f.groupID, "username": "bob",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var member model.MemberView
	decode(t, rr, &member)
	f.bobMemberID = member.ID

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/members", f.groupID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var members []model.MemberView
	decode(t, rr, &members)
	for _, m := range members {
		if m.Username == "alice" {
			f.aliceMemberID = m.ID
		}
	}
	require.NotZero(t, f.aliceMemberID)
	return f
}

func TestAuth(t *testing.T) {
	a := newTestApp(t)
	token, id := signUp(t, a, "alice")

	t.Run("missing token", func(t *testing.T) {
		rr := do(t, a, http.MethodGet, "/api/groups", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
	t.Run("forged token", func(t *testing.T) {
		rr := do(t, a, http.MethodGet, "/api/groups", token+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rr := httptest.NewRecorder()
		a.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"alice"`)
		assert.NotContains(t, rr.Body.String(), "password")
	})
	t.Run("wrong password", func(t *testing.T) {
		rr := do(t, a, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
	t.Run("unknown user", func(t *testing.T) {
		rr := do(t, a, http.MethodPost, "/login", "", map[string]string{"username": "nobody", "password": "whatever1"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
	t.Run("duplicate username", func(t *testing.T) {
		rr := do(t, a, http.MethodPost, "/register", "", map[string]string{"username": "alice", "password": "another-pass"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
	t.Run("register validation", func(t *testing.T) {
		rr := do(t, a, http.MethodPost, "/register", "", map[string]string{"username": "al", "password": "short"})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		decode(t, rr, &body)
		assert.Equal(t, "validation failed", body.Message)
		assert.Len(t, body.Errors, 2)
	})
	t.Run("malformed body", func(t *testing.T) {
		rr := do(t, a, http.MethodPost, "/login", "", "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request payload", message(t, rr))
	})
}

func TestRentScenario(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)

	rr := do(t, a, http.MethodPost, "/api/expenses", f.aliceToken, map[string]interface{}{
		"title": "Rent", "value": 1200, "groupId": f.groupID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var rent model.ExpenseSummary
	decode(t, rr, &rent)
	assert.Equal(t, model.CurrencyUSD, rent.Currency)
	assert.Equal(t, model.RecurrenceNone, rent.RecurrenceInterval)

	rr = do(t, a, http.MethodPost, "/api/contributions", f.bobToken, map[string]interface{}{
		"expenseId": rent.ID, "value": 400,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var contribution model.ContributionView
	decode(t, rr, &contribution)
	assert.Equal(t, f.bobMemberID, contribution.GroupMemberID)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/expenses/%d", rent.ID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got model.ExpenseSummary
	decode(t, rr, &got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(800)), got.Balance.String())

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/expenses/%d/contributions", rent.ID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var contributions []model.ContributionView
	decode(t, rr, &contributions)
	require.Len(t, contributions, 1)
	assert.Equal(t, "bob", contributions[0].Username)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/expenses", f.groupID), f.bobToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []model.ExpenseSummary
	decode(t, rr, &list)
	require.Len(t, list, 1)
	assert.True(t, list[0].Contributed.Equal(decimal.NewFromInt(400)))
}

func TestNegativeContributionScenario(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)

	rr := do(t, a, http.MethodPost, "/api/expenses", f.aliceToken, map[string]interface{}{
		"title": "Rent", "value": "1200", "groupId": f.groupID,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var rent model.ExpenseSummary
	decode(t, rr, &rent)

	rr = do(t, a, http.MethodPost, "/api/contributions", f.bobToken, map[string]interface{}{
		"expenseId": rent.ID, "value": -5,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/expenses/%d/contributions", rent.ID), f.bobToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/expenses/%d", rent.ID), f.bobToken, nil)
	var got model.ExpenseSummary
	decode(t, rr, &got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(1200)))
}

func TestDishesScenario(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)

	rr := do(t, a, http.MethodPost, "/api/tasks", f.aliceToken, map[string]interface{}{
		"name": "Dishes", "groupId": f.groupID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var task model.Task
	decode(t, rr, &task)
	assert.Equal(t, model.StageToDo, task.Stage)
	assert.Nil(t, task.GroupMemberID)

	rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/tasks/%d/claim", task.ID), f.bobToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	decode(t, rr, &task)
	require.NotNil(t, task.GroupMemberID)
	assert.Equal(t, f.bobMemberID, *task.GroupMemberID)

	rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/tasks/%d/change-stage", task.ID), f.bobToken, map[string]string{"stage": "SOMEDAY"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/tasks/%d/change-stage", task.ID), f.bobToken, map[string]string{"stage": "DONE"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	decode(t, rr, &task)
	assert.Equal(t, model.StageDone, task.Stage)
	require.NotNil(t, task.GroupMemberID)
	assert.Equal(t, f.bobMemberID, *task.GroupMemberID)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/tasks?stage=DONE", f.groupID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var done []model.Task
	decode(t, rr, &done)
	assert.Len(t, done, 1)

	for i := 0; i < 2; i++ {
		rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/tasks/%d/unclaim", task.ID), f.aliceToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		decode(t, rr, &task)
		assert.Nil(t, task.GroupMemberID)
	}
}

func TestAdminScenario(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)

	rr := do(t, a, http.MethodPut, fmt.Sprintf("/api/group-members/%d/promote", f.bobMemberID), f.bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/group-members/%d/promote", f.bobMemberID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var member model.GroupMember
	decode(t, rr, &member)
	assert.True(t, member.IsAdmin)

	rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/group-members/%d/demote", f.bobMemberID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &member)
	assert.False(t, member.IsAdmin)

	rr = do(t, a, http.MethodPut, fmt.Sprintf("/api/group-members/%d/demote", f.aliceMemberID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &member)
	assert.False(t, member.IsAdmin)
}

func TestMembershipErrors(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)
	carolToken, _ := signUp(t, a, "carol")

	rr := do(t, a, http.MethodPost, "/api/group-members", f.aliceToken, map[string]interface{}{
		"groupId": f.groupID, "username": "bob",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "user is already a member of this group", message(t, rr))

	rr = do(t, a, http.MethodPost, "/api/group-members", f.aliceToken, map[string]interface{}{
		"groupId": f.groupID, "username": "nobody",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d", f.groupID), carolToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, a, http.MethodGet, "/api/groups/999", f.aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, a, http.MethodPost, "/api/groups", carolToken, map[string]string{"name": "Flat 4B"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, a, http.MethodDelete, fmt.Sprintf("/api/group-members/%d", f.bobMemberID), f.aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d", f.groupID), f.bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, a, http.MethodDelete, fmt.Sprintf("/api/groups/%d", f.groupID), f.aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestUserVisibility(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)
	carolToken, carolID := signUp(t, a, "carol")

	rr := do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/members", f.groupID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var members []model.MemberView
	decode(t, rr, &members)
	var bobID uint
	for _, m := range members {
		if m.Username == "bob" {
			bobID = m.UserID
		}
	}
	require.NotZero(t, bobID)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), f.aliceToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"bob"`)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), carolToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/users/%d", carolID), carolToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/users/%d", carolID), f.bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPagination(t *testing.T) {
	a := newTestApp(t)
	f := newFlat(t, a)

	for _, title := range []string{"Rent", "Power", "Water"} {
		rr := do(t, a, http.MethodPost, "/api/expenses", f.aliceToken, map[string]interface{}{
			"title": title, "value": 10, "groupId": f.groupID,
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/expenses?start=2&count=1", f.groupID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var page []model.ExpenseSummary
	decode(t, rr, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Power", page[0].Title)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/expenses?count=abc", f.groupID), f.aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for i := 0; i < 12; i++ {
		rr := do(t, a, http.MethodPost, "/api/tasks", f.aliceToken, map[string]interface{}{
			"name": fmt.Sprintf("Chore %d", i), "groupId": f.groupID,
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/tasks", f.groupID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var tasks []model.Task
	decode(t, rr, &tasks)
	assert.Len(t, tasks, 12)

	rr = do(t, a, http.MethodGet, fmt.Sprintf("/api/groups/%d/tasks?count=500", f.groupID), f.aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &tasks)
	assert.Len(t, tasks, 12)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	rr := do(t, a, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	rr = do(t, a, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "household_http_requests_total"))
}
