package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"catalogapi.app/pkg/validation"
)

type UseCase struct {
	users               ports.UserRepository
	hasher              ports.PasswordHasher
	notifier            ports.AccountNotifier
	logger              ports.Logger
	clientBaseURL       string
	verificationCodeTTL time.Duration
	resetTokenTTL       time.Duration
	now                 func() time.Time
	avatar              func() string
}

type UseCaseDependencies struct {
	Users               ports.UserRepository
	Hasher              ports.PasswordHasher
	Notifier            ports.AccountNotifier
	Logger              ports.Logger
	ClientBaseURL       string
	VerificationCodeTTL time.Duration
	ResetTokenTTL       time.Duration
}

type SignupParams struct {
	Email    string
	Password string
	Username string
}

type LoginParams struct {
	Email    string
	Password string
}

type VerifyEmailParams struct {
	Code string
}

type ForgotPasswordParams struct {
	Email string
}

type ResetPasswordParams struct {
	Token    string
	Password string
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Users == nil {
		return nil, errors.NewValidationError("user repository is required")
	}
	if deps.Hasher == nil {
		return nil, errors.NewValidationError("password hasher is required")
	}
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("account notifier is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.VerificationCodeTTL <= 0 {
		deps.VerificationCodeTTL = 24 * time.Hour
	}
	if deps.ResetTokenTTL <= 0 {
		deps.ResetTokenTTL = time.Hour
	}

	return &UseCase{
		users:               deps.Users,
		hasher:              deps.Hasher,
		notifier:            deps.Notifier,
		logger:              deps.Logger,
		clientBaseURL:       deps.ClientBaseURL,
		verificationCodeTTL: deps.VerificationCodeTTL,
		resetTokenTTL:       deps.ResetTokenTTL,
		now:                 time.Now,
		avatar:              RandomAvatar,
	}, nil
}

func (uc *UseCase) validateSignupParams(params SignupParams) error {
	if !validation.IsNotEmpty(params.Email) || !validation.IsNotEmpty(params.Password) || !validation.IsNotEmpty(params.Username) {
		return errors.NewValidationError("All fields are required")
	}
	if !validation.IsValidEmail(params.Email) {
		return errors.NewValidationError("Invalid email")
	}
	if !validation.IsValidPassword(params.Password) {
		return errors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", validation.MinPasswordLength))
	}
	return nil
}

// Signup creates an unverified account and mails its verification code.
// The account is removed again when the code cannot be delivered.
func (uc *UseCase) Signup(ctx context.Context, params SignupParams) (*User, error) {
	params.Email = strings.TrimSpace(params.Email)
	params.Username = strings.TrimSpace(params.Username)
	if err := uc.validateSignupParams(params); err != nil {
		return nil, err
	}

	if err := uc.ensureUnique(ctx, params); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := NewVerificationCode()
	if err != nil {
		return nil, err
	}
	expires := uc.now().Add(uc.verificationCodeTTL)

	data := &ports.UserData{
		Username:                  params.Username,
		Email:                     params.Email,
		PasswordHash:              hash,
		Image:                     uc.avatar(),
		VerificationCode:          code,
		VerificationCodeExpiresAt: &expires,
	}
	if err := uc.users.Create(ctx, data); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := uc.notifier.SendVerificationEmail(ctx, data.Email, code); err != nil {
		uc.logger.Error("Verification email failed, removing account",
			ports.F("error", err),
			ports.F("userID", data.ID))
		if delErr := uc.users.Delete(ctx, data.ID); delErr != nil {
			uc.logger.Error("Failed to remove account after email failure",
				ports.F("error", delErr),
				ports.F("userID", data.ID))
		}
		return nil, err
	}

	uc.logger.Info("User signed up", ports.F("userID", data.ID))
	return toUser(data), nil
}

func (uc *UseCase) ensureUnique(ctx context.Context, params SignupParams) error {
	if _, err := uc.users.FindByEmail(ctx, params.Email); err == nil {
		return errors.NewAlreadyExistsError("Email already exists")
	} else if !errors.IsNotFoundError(err) {
		return fmt.Errorf("check existing email: %w", err)
	}

	if _, err := uc.users.FindByUsername(ctx, params.Username); err == nil {
		return errors.NewAlreadyExistsError("Username already exists")
	} else if !errors.IsNotFoundError(err) {
		return fmt.Errorf("check existing username: %w", err)
	}
	return nil
}

// Login checks credentials and stamps LastLogin
func (uc *UseCase) Login(ctx context.Context, params LoginParams) (*User, error) {
	if !validation.IsNotEmpty(params.Email) || !validation.IsNotEmpty(params.Password) {
		return nil, errors.NewValidationError("All fields are required")
	}

	data, err := uc.users.FindByEmail(ctx, strings.TrimSpace(params.Email))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("Invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := uc.hasher.Compare(data.PasswordHash, params.Password); err != nil {
		return nil, errors.NewValidationError("Invalid credentials")
	}

	data.LastLogin = uc.now()
	if err := uc.users.Update(ctx, data); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	return toUser(data), nil
}

// VerifyEmail consumes a verification code. The welcome email is best effort.
func (uc *UseCase) VerifyEmail(ctx context.Context, params VerifyEmailParams) (*User, error) {
	code := strings.TrimSpace(params.Code)
	if code == "" {
		return nil, errors.NewValidationError("Verification code is required")
	}

	data, err := uc.users.FindByVerificationCode(ctx, code, uc.now())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("Invalid or expired verification code")
		}
		return nil, fmt.Errorf("find verification code: %w", err)
	}

	data.IsVerified = true
	data.VerificationCode = ""
	data.VerificationCodeExpiresAt = nil
	if err := uc.users.Update(ctx, data); err != nil {
		return nil, fmt.Errorf("mark user verified: %w", err)
	}

	if err := uc.notifier.SendWelcomeEmail(ctx, data.Email, data.Username); err != nil {
		uc.logger.Warn("Welcome email not delivered",
			ports.F("error", err),
			ports.F("userID", data.ID))
	}
	return toUser(data), nil
}

// ForgotPassword issues a reset token and mails the reset link
func (uc *UseCase) ForgotPassword(ctx context.Context, params ForgotPasswordParams) error {
	email := strings.TrimSpace(params.Email)
	if email == "" {
		return errors.NewValidationError("Email is required")
	}

	data, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError("User not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := NewResetToken()
	if err != nil {
		return err
	}
	expires := uc.now().Add(uc.resetTokenTTL)
	data.ResetPasswordToken = token
	data.ResetPasswordExpiresAt = &expires
	if err := uc.users.Update(ctx, data); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	return uc.notifier.SendPasswordResetEmail(ctx, data.Email, ResetPasswordURL(uc.clientBaseURL, token))
}

// ResetPassword replaces the password of the token holder. The confirmation
// email is best effort.
func (uc *UseCase) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	token := strings.TrimSpace(params.Token)
	if token == "" {
		return errors.NewValidationError("Reset token is required")
	}
	if !validation.IsValidPassword(params.Password) {
		return errors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", validation.MinPasswordLength))
	}

	data, err := uc.users.FindByResetToken(ctx, token, uc.now())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("Invalid or expired reset token")
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	hash, err := uc.hasher.Hash(params.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	data.PasswordHash = hash
	data.ResetPasswordToken = ""
	data.ResetPasswordExpiresAt = nil
	if err := uc.users.Update(ctx, data); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := uc.notifier.SendPasswordResetSuccessEmail(ctx, data.Email); err != nil {
		uc.logger.Warn("Password reset confirmation not delivered",
			ports.F("error", err),
			ports.F("userID", data.ID))
	}
	return nil
}

// CurrentUser loads the account behind an authenticated session
func (uc *UseCase) CurrentUser(ctx context.Context, userID string) (*User, error) {
	data, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toUser(data), nil
}

func toUser(data *ports.UserData) *User {
	return &User{
		ID:         data.ID,
		Username:   data.Username,
		Email:      data.Email,
		Image:      data.Image,
		IsVerified: data.IsVerified,
		LastLogin:  data.LastLogin,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
