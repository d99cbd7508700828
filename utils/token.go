package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims carried in every issued token.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the HS256 bearer tokens used by the API.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
	clock    Clock
}

func NewTokenService(secret, issuer, audience string, expiry time.Duration, clock Clock) *TokenService {
	if clock == nil {
		clock = UTCClock{}
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
		clock:    clock,
	}
}

// NewTokenServiceFromEnv reads JWT_SECRET_KEY, JWT_ISSUER, JWT_AUDIENCE and
// JWT_EXPIRY_MINUTES, with the same fallbacks the hosted deployment uses.
func NewTokenServiceFromEnv() *TokenService {
	minutes, err := strconv.Atoi(EnvOrDefault("JWT_EXPIRY_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return NewTokenService(
		EnvOrDefault("JWT_SECRET_KEY", "NOTSAFENOTSAFENOTSAFENOTSAFENOTSAFENOTSAFENOTSAFENOTSAFE"),
		EnvOrDefault("JWT_ISSUER", "H2-2025-API"),
		EnvOrDefault("JWT_AUDIENCE", "H2-2025-Client"),
		time.Duration(minutes)*time.Minute,
		UTCClock{},
	)
}

// Generate signs a token for the user. The role name rides along as a claim
// so the middleware can gate endpoints without a database round trip.
func (s *TokenService) Generate(user *models.User, roleName string) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		Email:    user.Email,
		Username: user.Username,
		Role:     roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates signature, issuer, audience and lifetime, and returns the
// claims. Expired tokens are reported distinctly so callers can say so.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		token := strings.TrimSpace(header[7:])
		return token, token != ""
	}
	return "", false
}
