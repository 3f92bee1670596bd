package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// User is the public view of an account; the password hash never leaves the core
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Image      string    `json:"image"`
	IsVerified bool      `json:"isVerified"`
	LastLogin  time.Time `json:"lastLogin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Avatars assigned at random on signup
var Avatars = []string{"/avatar1.png", "/avatar2.png", "/avatar3.png"}

const (
	verificationCodeMin   = 100000
	verificationCodeRange = 900000
	resetTokenBytes       = 20
)

// NewVerificationCode returns a random six digit code
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(verificationCodeRange))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+verificationCodeMin), nil
}

// NewResetToken returns 20 random bytes, hex encoded
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RandomAvatar picks one of Avatars
func RandomAvatar() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Avatars))))
	if err != nil {
		return Avatars[0]
	}
	return Avatars[n.Int64()]
}

// ResetPasswordURL builds the client link embedded in the reset email
func ResetPasswordURL(clientBaseURL, token string) string {
	return fmt.Sprintf("%s/reset-password/%s", trimTrailingSlash(clientBaseURL), token)
}

func trimTrailingSlash(s string) string {
	if len(s) > 0 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}
