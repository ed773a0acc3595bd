package jwt

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrUnknownRole = errors.New("token role is not a back-office role")

// Claims identify a back-office account. The subject mirrors UserID so
// standard tooling can read it.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and checks HS256 tokens for a fixed set of roles.
type Manager struct {
	secret []byte
	issuer string
	roles  []string
}

func NewManager(secret, issuer string, roles ...string) *Manager {
	if issuer == "" {
		issuer = "genz-ignite"
	}
	return &Manager{secret: []byte(secret), issuer: issuer, roles: roles}
}

func (m *Manager) Generate(userID int64, role string, ttl time.Duration) (string, error) {
	if !slices.Contains(m.roles, role) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies signature, expiry and issuer, then rejects tokens whose
// subject does not match the user id or whose role this manager does not
// issue.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if !slices.Contains(m.roles, claims.Role) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	return claims, nil
}
