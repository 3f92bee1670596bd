package infrastructure

import (
	"fmt"
	"time"

	"catalogapi.app/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

const userIDClaim = "userId"

// JWTTokenIssuer signs session tokens with HS256
type JWTTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTTokenIssuer creates a token issuer; secret must not be empty
func NewJWTTokenIssuer(secret string, ttl time.Duration) (*JWTTokenIssuer, error) {
	if secret == "" {
		return nil, errors.NewConfigurationError("JWT secret cannot be empty", nil)
	}
	if ttl <= 0 {
		return nil, errors.NewConfigurationError("JWT lifetime must be positive", nil)
	}
	return &JWTTokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token carrying userID
func (j *JWTTokenIssuer) Issue(userID string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: userID,
		"iat":       now.Unix(),
		"exp":       now.Add(j.ttl).Unix(),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the user id
func (j *JWTTokenIssuer) Verify(raw string) (string, error) {
	if raw == "" {
		return "", errors.NewUnauthorizedError("Unauthorized - No Token Provided")
	}

	tk, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil || !tk.Valid {
		return "", errors.Wrap(errors.ErrorTypeUnauthorized, "Unauthorized - Invalid Token", err)
	}

	claims, ok := tk.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.NewUnauthorizedError("Unauthorized - Invalid Token")
	}
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", errors.NewUnauthorizedError("Unauthorized - Invalid Token")
	}
	return userID, nil
}

// TTL returns the configured token lifetime
func (j *JWTTokenIssuer) TTL() time.Duration {
	return j.ttl
}
