//go:build api

package api

import (
	"net/http"
	"testing"

	"tour-booking/internal/models"
	"tour-booking/test/api/testserver"
	"tour-booking/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateMe tests PATCH /api/v1/users/updateMe.
func TestUpdateMe(t *testing.T) {
	authHelper := testserver.NewAuthHelper(testServer)

	t.Run("success - only name and email change", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		user, token := authHelper.CreateUserWithRole(t, models.RoleUser)

		req := map[string]string{
			"name":  "Renamed User",
			"email": "renamed@example.com",
			"role":  "admin",
		}
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/users/updateMe", token, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		doc := testutil.ParseBody(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
		assert.Equal(t, "Renamed User", doc["name"])
		assert.Equal(t, "renamed@example.com", doc["email"])
		assert.Equal(t, "user", doc["role"])

		ctx, cancel := testutil.TestContext()
		defer cancel()
		stored, err := testServer.UserRepo.FindByID(ctx, user.ID, false)
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, stored.Role)
	})

	t.Run("error - password fields are rejected", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		_, token := authHelper.CreateUserWithRole(t, models.RoleUser)

		req := map[string]string{"password": "newpass123", "passwordConfirm": "newpass123"}
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/users/updateMe", token, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This route is not for password updates. Please use /updateMyPassword.",
			testutil.ParseBody(t, w)["message"])
	})
}

// TestDeleteMe tests DELETE /api/v1/users/deleteMe.
func TestDeleteMe(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	user, token := authHelper.CreateUserWithRole(t, models.RoleUser)
	_, adminToken := authHelper.CreateUserWithRole(t, models.RoleAdmin)

	w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/users/deleteMe", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// Deactivated users vanish from every read
	w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, doc := range testutil.Docs(t, w) {
		assert.NotEqual(t, user.Email, doc["email"])
	}

	w = testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/login",
		models.LoginRequest{Email: user.Email, Password: testserver.DefaultPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	count, err := testServer.MongoDB.Count(ctx, "users", map[string]interface{}{"email": user.Email, "active": false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "deleteMe deactivates instead of deleting")
}

// TestAdminUsers tests the admin-only user routes.
func TestAdminUsers(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	_, adminToken := authHelper.CreateUserWithRole(t, models.RoleAdmin)
	guide, _ := authHelper.CreateUserWithRole(t, models.RoleGuide)
	_, userToken := authHelper.CreateUserWithRole(t, models.RoleUser)

	t.Run("non-admin is forbidden", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users", userToken, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You do not have permission to perform this action", testutil.ParseBody(t, w)["message"])
	})

	t.Run("list filters by role", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users?role=guide", adminToken, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		docs := testutil.Docs(t, w)
		require.Len(t, docs, 1)
		assert.Equal(t, guide.Email, docs[0]["email"])
		assert.Equal(t, float64(1), testutil.ParseBody(t, w)["results"])
	})

	t.Run("get, update and delete one", func(t *testing.T) {
		path := "/api/v1/users/" + guide.ID.Hex()

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, guide.Name, testutil.Doc(t, w)["name"])

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, path, adminToken,
			map[string]string{"role": models.RoleLeadGuide})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, models.RoleLeadGuide, testutil.Doc(t, w)["role"])

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, path, adminToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, path, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No document found with that ID", testutil.ParseBody(t, w)["message"])
	})

	t.Run("create points to signup", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/users", adminToken,
			map[string]string{"name": "New User"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := testutil.ParseBody(t, w)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "This route is not defined! Please use /signup instead", body["message"])
	})

	t.Run("malformed id", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/not-an-id", adminToken, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
