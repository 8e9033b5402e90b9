package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"usersvc/internal/models"
	"usersvc/internal/repositories"
	"usersvc/internal/services"
	"usersvc/testhelpers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type UserHandlersTestSuite struct {
	suite.Suite
	db        *sql.DB
	e         *echo.Echo
	managerID string
	inactive  string
}

func TestUserHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlersTestSuite))
}

func (suite *UserHandlersTestSuite) SetupTest() {
	ctx := context.Background()
	db := testhelpers.SetupSQLiteDB(suite.T())
	suite.db = db

	log := zap.NewNop()
	userRepo := repositories.NewSQLiteUserRepo(db)
	managerRepo := repositories.NewSQLiteManagerRepo(db)
	managerSvc := services.NewManagerService(managerRepo, log)

	ids, err := managerSvc.SeedManagers(ctx, 1, services.SeedIdempotent)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), ids, 1)
	suite.managerID = ids[0]
	suite.inactive = testhelpers.SetupSQLiteManager(suite.T(), db, false)

	router := &Router{
		Users:    NewUserHandlers(services.NewUserService(userRepo, managerRepo, log), log),
		Managers: NewManagerHandlers(managerSvc),
		Health:   NewHealthHandlers(db.PingContext, "test"),
		Log:      log,
	}
	suite.e = router.Echo()
}

func (suite *UserHandlersTestSuite) post(path string, body interface{}) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	var payload string
	switch b := body.(type) {
	case string:
		payload = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(suite.T(), err)
		payload = string(raw)
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)

	out := map[string]json.RawMessage{}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func (suite *UserHandlersTestSuite) createUser(mob string) string {
	rec, body := suite.post("/create_user", map[string]string{
		"full_name":  "A",
		"mob_num":    mob,
		"pan_num":    "abcde1234f",
		"manager_id": suite.managerID,
	})
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	var id string
	require.NoError(suite.T(), json.Unmarshal(body["user_id"], &id))
	return id
}

func (suite *UserHandlersTestSuite) getUsers(filter map[string]string) []models.User {
	rec, body := suite.post("/get_users", filter)
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	var users []models.User
	require.NoError(suite.T(), json.Unmarshal(body["users"], &users))
	return users
}

func errorMessage(t *testing.T, body map[string]json.RawMessage) string {
	var msg string
	require.NoError(t, json.Unmarshal(body["error"], &msg))
	return msg
}

func (suite *UserHandlersTestSuite) TestCreateThenGet() {
	id := suite.createUser("9876543210")
	assert.NotEmpty(suite.T(), id)

	users := suite.getUsers(map[string]string{"user_id": id})
	require.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "ABCDE1234F", users[0].PanNum)
	assert.Equal(suite.T(), "A", users[0].FullName)
	require.NotNil(suite.T(), users[0].ManagerID)
	assert.Equal(suite.T(), suite.managerID, *users[0].ManagerID)
	assert.True(suite.T(), users[0].IsActive)
}

func (suite *UserHandlersTestSuite) TestCreateUser_Validation() {
	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing name", map[string]string{"mob_num": "9876543210", "pan_num": "ABCDE1234F", "manager_id": suite.managerID}, "Full name is required."},
		{"bad mobile", map[string]string{"full_name": "A", "mob_num": "12", "pan_num": "ABCDE1234F", "manager_id": suite.managerID}, "Invalid mobile number."},
		{"missing pan", map[string]string{"full_name": "A", "mob_num": "9876543210", "manager_id": suite.managerID}, "Invalid PAN number."},
		{"inactive manager", map[string]string{"full_name": "A", "mob_num": "9876543210", "pan_num": "ABCDE1234F", "manager_id": suite.inactive}, "Invalid or inactive manager."},
		{"unknown manager", map[string]string{"full_name": "A", "mob_num": "9876543210", "pan_num": "ABCDE1234F", "manager_id": "nope"}, "Invalid or inactive manager."},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			rec, body := suite.post("/create_user", tt.body)
			assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
			assert.Equal(suite.T(), tt.want, errorMessage(suite.T(), body))
		})
	}

	assert.Empty(suite.T(), suite.getUsers(nil))
}

func (suite *UserHandlersTestSuite) TestMalformedJSON() {
	rec, body := suite.post("/create_user", `{"full_name":`)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "Invalid request format", errorMessage(suite.T(), body))
}

func (suite *UserHandlersTestSuite) TestNumericFieldsAreRejected() {
	rec, body := suite.post("/create_user", fmt.Sprintf(
		`{"full_name":"A","mob_num":9876543210,"pan_num":"ABCDE1234F","manager_id":%q}`, suite.managerID))
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "Invalid request format", errorMessage(suite.T(), body))

	rec, _ = suite.post("/delete_user", `{"mob_num":9876543210}`)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Empty(suite.T(), suite.getUsers(nil))
}

func (suite *UserHandlersTestSuite) TestGetUsers_AllActive() {
	first := suite.createUser("9876543210")
	second := suite.createUser("9876543211")
	third := suite.createUser("9876543212")
	_, err := suite.db.Exec(`UPDATE users SET is_active = 0 WHERE user_id = ?`, third)
	require.NoError(suite.T(), err)

	users := suite.getUsers(map[string]string{})
	ids := []string{}
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(suite.T(), []string{first, second}, ids)

	users = suite.getUsers(map[string]string{"mob_num": "9876543211", "manager_id": suite.managerID})
	require.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), second, users[0].ID)
}

func (suite *UserHandlersTestSuite) TestDeleteUser() {
	id := suite.createUser("9876543210")
	suite.createUser("9876543211")

	rec, body := suite.post("/delete_user", map[string]string{})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "Provide user_id or mob_num.", errorMessage(suite.T(), body))

	for i := 0; i < 2; i++ {
		rec, _ = suite.post("/delete_user", map[string]string{"user_id": id})
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
	}
	assert.Len(suite.T(), suite.getUsers(nil), 1)

	rec, _ = suite.post("/delete_user", map[string]string{"mob_num": "9876543211"})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Empty(suite.T(), suite.getUsers(nil))
}

func (suite *UserHandlersTestSuite) TestUpdateUsers_MissingIDStillSucceeds() {
	id := suite.createUser("9876543210")

	rec, body := suite.post("/update_user", map[string]interface{}{
		"user_ids": []string{id, "does-not-exist"},
		"update_data": map[string]string{
			"full_name":  "B",
			"mob_num":    "+919999999999",
			"pan_num":    "pqrsx6789z",
			"manager_id": suite.managerID,
		},
	})
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	var msg string
	require.NoError(suite.T(), json.Unmarshal(body["message"], &msg))
	assert.Equal(suite.T(), "Users updated successfully.", msg)

	users := suite.getUsers(map[string]string{"user_id": id})
	require.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "B", users[0].FullName)
	assert.Equal(suite.T(), "+919999999999", users[0].MobNum)
	assert.Equal(suite.T(), "PQRSX6789Z", users[0].PanNum)
}

func (suite *UserHandlersTestSuite) TestUpdateUsers_StoreFailureIsNotSurfaced() {
	id := suite.createUser("9876543210")

	// full_name is NOT NULL, so the write fails for every id.
	rec, _ := suite.post("/update_user", map[string]interface{}{
		"user_ids":    []string{id},
		"update_data": map[string]string{"mob_num": "9876543211", "pan_num": "ABCDE1234F"},
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	users := suite.getUsers(map[string]string{"user_id": id})
	require.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "9876543210", users[0].MobNum)
}

func (suite *UserHandlersTestSuite) TestUpdateUsers_Validation() {
	rec, body := suite.post("/update_user", map[string]interface{}{
		"user_ids":    []string{"x"},
		"update_data": map[string]string{"mob_num": "abc"},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "Invalid mobile number.", errorMessage(suite.T(), body))

	rec, _ = suite.post("/update_user", map[string]interface{}{"user_ids": []string{"x"}})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec, _ = suite.post("/update_user", map[string]interface{}{"update_data": map[string]string{}})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *UserHandlersTestSuite) TestStoreErrorIsHidden() {
	require.NoError(suite.T(), suite.db.Close())

	rec, body := suite.post("/get_users", map[string]string{})
	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	assert.Equal(suite.T(), "Database error.", errorMessage(suite.T(), body))
}

func (suite *UserHandlersTestSuite) TestManagersAndHealth() {
	req := httptest.NewRequest(http.MethodGet, "/managers", nil)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var out struct {
		Managers []models.Manager `json:"managers"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(suite.T(), out.Managers, 1)
	assert.Equal(suite.T(), suite.managerID, out.Managers[0].ID)

	rec = httptest.NewRecorder()
	suite.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	require.NoError(suite.T(), suite.db.Close())
	rec = httptest.NewRecorder()
	suite.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
}
