package ports

import (
	"context"
	"time"
)

// UserData represents user data for persistence
type UserData struct {
	ID                        string
	Username                  string
	Email                     string
	PasswordHash              string
	Image                     string
	IsVerified                bool
	VerificationCode          string
	VerificationCodeExpiresAt *time.Time
	ResetPasswordToken        string
	ResetPasswordExpiresAt    *time.Time
	LastLogin                 time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// SearchHistoryData is one remembered search of a user
type SearchHistoryData struct {
	ID         uint
	UserID     string
	MediaID    int64
	Title      string
	Image      string
	SearchType string
	CreatedAt  time.Time
}

// UserRepository defines the contract for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *UserData) error
	Update(ctx context.Context, user *UserData) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*UserData, error)
	FindByEmail(ctx context.Context, email string) (*UserData, error)
	FindByUsername(ctx context.Context, username string) (*UserData, error)
	FindByVerificationCode(ctx context.Context, code string, now time.Time) (*UserData, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*UserData, error)
}

// SearchHistoryRepository defines the contract for search history persistence
type SearchHistoryRepository interface {
	Add(ctx context.Context, item *SearchHistoryData) error
	ListByUser(ctx context.Context, userID string) ([]*SearchHistoryData, error)
	DeleteByMediaID(ctx context.Context, userID string, mediaID int64) (int64, error)
}
