//go:build api

package testserver

import (
	"context"
	"net/http"
	"testing"

	"tour-booking/internal/models"
	"tour-booking/pkg/auth"
	"tour-booking/test/fixtures"
	"tour-booking/test/testutil"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "test1234"

// AuthHelper provides authentication helpers for API tests.
type AuthHelper struct {
	server *TestServer
}

// NewAuthHelper creates a new auth helper.
func NewAuthHelper(server *TestServer) *AuthHelper {
	return &AuthHelper{server: server}
}

// Signup creates an account through the API and returns the response body.
func (ah *AuthHelper) Signup(t *testing.T, name, email, password string) map[string]interface{} {
	t.Helper()

	req := models.SignupRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
	}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/v1/users/signup", req)
	require.Equal(t, http.StatusCreated, w.Code, "signup should return 201, got: %s", w.Body.String())

	return testutil.ParseBody(t, w)
}

// Login logs in and returns the token.
func (ah *AuthHelper) Login(t *testing.T, email, password string) string {
	t.Helper()

	req := models.LoginRequest{Email: email, Password: password}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/v1/users/login", req)
	require.Equal(t, http.StatusOK, w.Code, "login should return 200, got: %s", w.Body.String())

	token, ok := testutil.ParseBody(t, w)["token"].(string)
	require.True(t, ok, "token should be a string")
	return token
}

// SeedUser directly inserts a user with DefaultPassword (bypasses API).
func (ah *AuthHelper) SeedUser(t *testing.T, user *models.User) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)
	user.Password = hash

	err = ah.server.UserRepo.Create(context.Background(), user)
	require.NoError(t, err, "failed to seed user")

	return user
}

// CreateUserWithRole seeds a user with role and logs them in.
func (ah *AuthHelper) CreateUserWithRole(t *testing.T, role string) (*models.User, string) {
	t.Helper()

	user := ah.SeedUser(t, fixtures.NewUser().WithName("Test "+role).WithRole(role).BuildPtr())
	return user, ah.Login(t, user.Email, DefaultPassword)
}

// TourHelper provides tour helpers for API tests.
type TourHelper struct {
	server *TestServer
}

// NewTourHelper creates a new tour helper.
func NewTourHelper(server *TestServer) *TourHelper {
	return &TourHelper{server: server}
}

// SeedTour directly inserts a tour (bypasses API).
func (th *TourHelper) SeedTour(t *testing.T, tour *models.Tour) *models.Tour {
	t.Helper()

	tour.ApplyDefaults()
	if tour.Slug == "" {
		tour.Slug = models.Slugify(tour.Name)
	}

	err := th.server.TourRepo.Create(context.Background(), tour)
	require.NoError(t, err, "failed to seed tour")

	return tour
}

// SeedReview directly inserts a review (bypasses API and rating recompute).
func (th *TourHelper) SeedReview(t *testing.T, review *models.Review) *models.Review {
	t.Helper()

	err := th.server.ReviewRepo.Create(context.Background(), review)
	require.NoError(t, err, "failed to seed review")

	return review
}

// GetTour reads a tour straight from the database.
func (th *TourHelper) GetTour(t *testing.T, id primitive.ObjectID) *models.Tour {
	t.Helper()

	tour, err := th.server.TourRepo.FindByID(context.Background(), id, false)
	require.NoError(t, err, "failed to load tour")
	return tour
}

// GetIDFromDoc extracts and parses a document id.
func GetIDFromDoc(t *testing.T, doc map[string]interface{}) primitive.ObjectID {
	t.Helper()

	idStr, ok := doc["id"].(string)
	require.True(t, ok, "id should be a string in document")

	oid, err := primitive.ObjectIDFromHex(idStr)
	require.NoError(t, err, "failed to parse ObjectID")
	return oid
}
