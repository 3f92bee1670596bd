package database

import (
	"context"
	stderrors "errors"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the database model for accounts
type UserModel struct {
	ID                        string `gorm:"primaryKey;type:varchar(36)"`
	Username                  string `gorm:"uniqueIndex;not null"`
	Email                     string `gorm:"uniqueIndex;not null"`
	Password                  string `gorm:"not null"`
	Image                     string `gorm:"default:''"`
	IsVerified                bool   `gorm:"default:false"`
	VerificationCode          string `gorm:"index"`
	VerificationCodeExpiresAt *time.Time
	ResetPasswordToken        string `gorm:"index"`
	ResetPasswordExpiresAt    *time.Time
	LastLogin                 time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when none is set
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// UserRepositoryAdapter implements the UserRepository port using GORM
type UserRepositoryAdapter struct {
	db *gorm.DB
}

// NewUserRepositoryAdapter creates a new user repository adapter
func NewUserRepositoryAdapter(db *gorm.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

// Create inserts a new user and fills in its generated ID and timestamps
func (r *UserRepositoryAdapter) Create(ctx context.Context, user *ports.UserData) error {
	if user == nil {
		return errors.NewValidationError("user cannot be nil")
	}

	model := dataToUserModel(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.NewAlreadyExistsError("user already exists")
		}
		return errors.NewDatabaseError("failed to create user", err)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// Update overwrites every column of an existing user
func (r *UserRepositoryAdapter) Update(ctx context.Context, user *ports.UserData) error {
	if user == nil {
		return errors.NewValidationError("user cannot be nil")
	}
	if user.ID == "" {
		return errors.NewValidationError("user ID cannot be empty for update")
	}

	model := dataToUserModel(user)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.NewAlreadyExistsError("user already exists")
		}
		return errors.NewDatabaseError("failed to update user", err)
	}

	user.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes a user and its search history
func (r *UserRepositoryAdapter) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("user ID cannot be empty for delete")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&SearchHistoryModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&UserModel{}, "id = ?", id).Error
	})
	if err != nil {
		return errors.NewDatabaseError("failed to delete user", err)
	}
	return nil
}

// FindByID retrieves a user by its ID
func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id string) (*ports.UserData, error) {
	if id == "" {
		return nil, errors.NewValidationError("user ID cannot be empty")
	}
	return r.findOne(ctx, "failed to find user by ID", "id = ?", id)
}

// FindByEmail retrieves a user by email address
func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	if email == "" {
		return nil, errors.NewValidationError("email cannot be empty")
	}
	return r.findOne(ctx, "failed to find user by email", "email = ?", email)
}

// FindByUsername retrieves a user by username
func (r *UserRepositoryAdapter) FindByUsername(ctx context.Context, username string) (*ports.UserData, error) {
	if username == "" {
		return nil, errors.NewValidationError("username cannot be empty")
	}
	return r.findOne(ctx, "failed to find user by username", "username = ?", username)
}

// FindByVerificationCode retrieves the user holding code, if it has not expired at now
func (r *UserRepositoryAdapter) FindByVerificationCode(ctx context.Context, code string, now time.Time) (*ports.UserData, error) {
	if code == "" {
		return nil, errors.NewValidationError("verification code cannot be empty")
	}
	return r.findOne(ctx, "failed to find user by verification code",
		"verification_code = ? AND verification_code_expires_at > ?", code, now)
}

// FindByResetToken retrieves the user holding token, if it has not expired at now
func (r *UserRepositoryAdapter) FindByResetToken(ctx context.Context, token string, now time.Time) (*ports.UserData, error) {
	if token == "" {
		return nil, errors.NewValidationError("reset token cannot be empty")
	}
	return r.findOne(ctx, "failed to find user by reset token",
		"reset_password_token = ? AND reset_password_expires_at > ?", token, now)
}

func (r *UserRepositoryAdapter) findOne(ctx context.Context, failure string, query string, args ...interface{}) (*ports.UserData, error) {
	var model UserModel
	result := r.db.WithContext(ctx).Where(query, args...).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, errors.NewDatabaseError(failure, result.Error)
	}
	return userModelToData(&model), nil
}

// dataToUserModel converts port data to database model
func dataToUserModel(data *ports.UserData) *UserModel {
	return &UserModel{
		ID:                        data.ID,
		Username:                  data.Username,
		Email:                     data.Email,
		Password:                  data.PasswordHash,
		Image:                     data.Image,
		IsVerified:                data.IsVerified,
		VerificationCode:          data.VerificationCode,
		VerificationCodeExpiresAt: data.VerificationCodeExpiresAt,
		ResetPasswordToken:        data.ResetPasswordToken,
		ResetPasswordExpiresAt:    data.ResetPasswordExpiresAt,
		LastLogin:                 data.LastLogin,
		CreatedAt:                 data.CreatedAt,
		UpdatedAt:                 data.UpdatedAt,
	}
}

// userModelToData converts database model to port data
func userModelToData(model *UserModel) *ports.UserData {
	return &ports.UserData{
		ID:                        model.ID,
		Username:                  model.Username,
		Email:                     model.Email,
		PasswordHash:              model.Password,
		Image:                     model.Image,
		IsVerified:                model.IsVerified,
		VerificationCode:          model.VerificationCode,
		VerificationCodeExpiresAt: model.VerificationCodeExpiresAt,
		ResetPasswordToken:        model.ResetPasswordToken,
		ResetPasswordExpiresAt:    model.ResetPasswordExpiresAt,
		LastLogin:                 model.LastLogin,
		CreatedAt:                 model.CreatedAt,
		UpdatedAt:                 model.UpdatedAt,
	}
}
