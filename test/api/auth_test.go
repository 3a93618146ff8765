//go:build api

package api

import (
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"tour-booking/internal/models"
	"tour-booking/test/api/testserver"
	"tour-booking/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resetLink = regexp.MustCompile(`resetPassword/([0-9a-f]{64})`)

// TestSignup tests POST /api/v1/users/signup.
func TestSignup(t *testing.T) {
	authHelper := testserver.NewAuthHelper(testServer)

	t.Run("success - creates user, logs in and queues welcome email", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := models.SignupRequest{
			Name:            "Leo Gillespie",
			Email:           "Leo@Example.com",
			Password:        "test1234",
			PasswordConfirm: "test1234",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/signup", req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := testutil.ParseBody(t, w)
		assert.Equal(t, "success", body["status"])
		assert.NotEmpty(t, body["token"])

		data := body["data"].(map[string]interface{})
		user := data["user"].(map[string]interface{})
		assert.Equal(t, "leo@example.com", user["email"])
		assert.Equal(t, "user", user["role"])
		assert.Equal(t, "default.jpg", user["photo"])
		assert.NotContains(t, user, "password")

		var jwtCookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "jwt" {
				jwtCookie = c
			}
		}
		require.NotNil(t, jwtCookie, "signup should set the jwt cookie")
		assert.True(t, jwtCookie.HttpOnly)
		assert.Equal(t, body["token"], jwtCookie.Value)

		assert.Eventually(t, func() bool {
			return len(testServer.Mailer.To("leo@example.com")) == 1
		}, 5*time.Second, 20*time.Millisecond, "welcome email should be delivered")
		msg := testServer.Mailer.To("leo@example.com")[0]
		assert.Equal(t, "Welcome to the Natours Family!", msg.Subject)
	})

	t.Run("error - duplicate email", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		authHelper.Signup(t, "First User", "taken@example.com", "test1234")

		req := models.SignupRequest{
			Name:            "Second User",
			Email:           "taken@example.com",
			Password:        "test1234",
			PasswordConfirm: "test1234",
		}
		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/signup", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, testutil.ParseBody(t, w)["message"], "Duplicate field value")
	})

	t.Run("error - passwords differ", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := models.SignupRequest{
			Name:            "Leo Gillespie",
			Email:           "leo@example.com",
			Password:        "test1234",
			PasswordConfirm: "test12345",
		}
		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/signup", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, testutil.ParseBody(t, w)["message"], "Invalid input data.")
	})

	t.Run("role in body is ignored", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := map[string]string{
			"name":            "Sneaky User",
			"email":           "sneaky@example.com",
			"password":        "test1234",
			"passwordConfirm": "test1234",
			"role":            "admin",
		}
		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/signup", req)

		require.Equal(t, http.StatusCreated, w.Code)
		user := testutil.ParseBody(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
	})
}

// TestLogin tests POST /api/v1/users/login.
func TestLogin(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	authHelper.Signup(t, "Leo Gillespie", "leo@example.com", "test1234")

	tests := []struct {
		name        string
		body        map[string]string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "success",
			body:       map[string]string{"email": "leo@example.com", "password": "test1234"},
			wantStatus: http.StatusOK,
		},
		{
			name:        "wrong password",
			body:        map[string]string{"email": "leo@example.com", "password": "wrongpass"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Incorrect email or password",
		},
		{
			name:        "unknown email",
			body:        map[string]string{"email": "nobody@example.com", "password": "test1234"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Incorrect email or password",
		},
		{
			name:        "missing password",
			body:        map[string]string{"email": "leo@example.com"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please provide email and password!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testServer.CleanupRedis(t)

			w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/login", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			body := testutil.ParseBody(t, w)
			if tt.wantMessage != "" {
				assert.Equal(t, "fail", body["status"])
				assert.Equal(t, tt.wantMessage, body["message"])
				return
			}
			assert.NotEmpty(t, body["token"])
		})
	}
}

// TestProtect tests token handling on a protected route.
func TestProtect(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	user, token := authHelper.CreateUserWithRole(t, models.RoleUser)

	t.Run("bearer token", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/me", token, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, user.Email, testutil.Doc(t, w)["email"])
	})

	t.Run("jwt cookie", func(t *testing.T) {
		w := testutil.MakeCookieRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/me", token, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, user.Email, testutil.Doc(t, w)["email"])
	})

	t.Run("no token", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "You are not logged in! Please log in to get access.", testutil.ParseBody(t, w)["message"])
	})

	t.Run("tampered token", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/me", token+"x", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token. Please log in again!", testutil.ParseBody(t, w)["message"])
	})

	t.Run("token of a deactivated user", func(t *testing.T) {
		_, otherToken := authHelper.CreateUserWithRole(t, models.RoleUser)
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/users/deleteMe", otherToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/me", otherToken, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "The user belonging to this token does no longer exist.", testutil.ParseBody(t, w)["message"])
	})
}

// TestLogout tests GET /api/v1/users/logout.
func TestLogout(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Equal(t, "loggedout", cookies[0].Value)

	w = testutil.MakeCookieRequest(t, testServer.Router, http.MethodGet, "/api/v1/users/me", cookies[0].Value, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestPasswordReset tests the forgotPassword and resetPassword round trip.
func TestPasswordReset(t *testing.T) {
	authHelper := testserver.NewAuthHelper(testServer)

	t.Run("success - emailed token sets a new password once", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		user, _ := authHelper.CreateUserWithRole(t, models.RoleUser)

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/forgotPassword",
			map[string]string{"email": user.Email})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Token sent to email!", testutil.ParseBody(t, w)["message"])

		sent := testServer.Mailer.To(user.Email)
		require.Len(t, sent, 1)
		match := resetLink.FindStringSubmatch(sent[0].Text)
		require.Len(t, match, 2, "email should carry the reset link: %s", sent[0].Text)
		token := match[1]

		reset := models.ResetPasswordRequest{Password: "newpass123", PasswordConfirm: "newpass123"}
		w = testutil.MakeRequest(t, testServer.Router, http.MethodPatch, "/api/v1/users/resetPassword/"+token, reset)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotEmpty(t, testutil.ParseBody(t, w)["token"])

		authHelper.Login(t, user.Email, "newpass123")

		w = testutil.MakeRequest(t, testServer.Router, http.MethodPatch, "/api/v1/users/resetPassword/"+token, reset)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Token is invalid or has expired", testutil.ParseBody(t, w)["message"])
	})

	t.Run("error - unknown email", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/forgotPassword",
			map[string]string{"email": "nobody@example.com"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "There is no user with that email address.", testutil.ParseBody(t, w)["message"])
	})

	t.Run("error - delivery failure clears the token", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		user, _ := authHelper.CreateUserWithRole(t, models.RoleUser)
		testServer.Mailer.FailWith(errors.New("smtp down"))
		defer testServer.Mailer.FailWith(nil)

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/users/forgotPassword",
			map[string]string{"email": user.Email})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "There was an error sending the email. Try again later!", testutil.ParseBody(t, w)["message"])

		ctx, cancel := testutil.TestContext()
		defer cancel()
		stored, err := testServer.UserRepo.FindByID(ctx, user.ID, false)
		require.NoError(t, err)
		assert.Empty(t, stored.PasswordResetToken)
		assert.Nil(t, stored.PasswordResetExpires)
	})
}

// TestUpdateMyPassword tests PATCH /api/v1/users/updateMyPassword.
func TestUpdateMyPassword(t *testing.T) {
	authHelper := testserver.NewAuthHelper(testServer)

	t.Run("success", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		user, token := authHelper.CreateUserWithRole(t, models.RoleUser)

		req := models.UpdatePasswordRequest{
			PasswordCurrent: testserver.DefaultPassword,
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		}
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/users/updateMyPassword", token, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotEmpty(t, testutil.ParseBody(t, w)["token"])
		authHelper.Login(t, user.Email, "newpass123")
	})

	t.Run("error - wrong current password", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)
		_, token := authHelper.CreateUserWithRole(t, models.RoleUser)

		req := models.UpdatePasswordRequest{
			PasswordCurrent: "notmypassword",
			Password:        "newpass123",
			PasswordConfirm: "newpass123",
		}
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/users/updateMyPassword", token, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Your current password is wrong.", testutil.ParseBody(t, w)["message"])
	})
}
