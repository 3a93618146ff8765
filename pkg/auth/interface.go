package auth

//go:generate mockgen -destination=mocks/mock_auth.go -package=mocks tour-booking/pkg/auth TokenManager,ResetTokenGenerator

// TokenManager issues and verifies the access tokens handed to logged-in users.
type TokenManager interface {
	// GenerateToken signs a token carrying the user id.
	GenerateToken(userID string) (string, error)
	// ValidateToken verifies signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)
	// MaxAge is how long an issued token stays valid.
	MaxAge() int
}

// ResetTokenGenerator creates password-reset tokens.
type ResetTokenGenerator interface {
	// Generate returns the plain token to email and the hash to persist.
	Generate() (token string, hashed string, err error)
	// Hash returns the SHA-256 hex digest of a plain token.
	Hash(token string) string
}

var (
	_ TokenManager        = (*JWTManager)(nil)
	_ ResetTokenGenerator = (*resetTokenGenerator)(nil)
)
