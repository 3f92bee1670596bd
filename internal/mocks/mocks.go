// Package mocks holds testify mocks for the interfaces in internal/ports.
// Constructors register AssertExpectations with t.Cleanup.
package mocks

import (
	"context"
	"net/url"
	"time"

	"catalogapi.app/internal/ports"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// EmailSender mocks ports.EmailSender
type EmailSender struct{ mock.Mock }

func NewEmailSender(t testingT) *EmailSender {
	m := &EmailSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EmailSender) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// AccountNotifier mocks ports.AccountNotifier
type AccountNotifier struct{ mock.Mock }

func NewAccountNotifier(t testingT) *AccountNotifier {
	m := &AccountNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AccountNotifier) SendVerificationEmail(ctx context.Context, userEmail, verificationCode string) error {
	return m.Called(ctx, userEmail, verificationCode).Error(0)
}

func (m *AccountNotifier) SendWelcomeEmail(ctx context.Context, userEmail, name string) error {
	return m.Called(ctx, userEmail, name).Error(0)
}

func (m *AccountNotifier) SendPasswordResetEmail(ctx context.Context, userEmail, resetURL string) error {
	return m.Called(ctx, userEmail, resetURL).Error(0)
}

func (m *AccountNotifier) SendPasswordResetSuccessEmail(ctx context.Context, userEmail string) error {
	return m.Called(ctx, userEmail).Error(0)
}

// UserRepository mocks ports.UserRepository
type UserRepository struct{ mock.Mock }

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) Create(ctx context.Context, user *ports.UserData) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, user *ports.UserData) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*ports.UserData, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*ports.UserData, error) {
	args := m.Called(ctx, username)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) FindByVerificationCode(ctx context.Context, code string, now time.Time) (*ports.UserData, error) {
	args := m.Called(ctx, code, now)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*ports.UserData, error) {
	args := m.Called(ctx, token, now)
	return userOrNil(args.Get(0)), args.Error(1)
}

func userOrNil(v interface{}) *ports.UserData {
	if v == nil {
		return nil
	}
	return v.(*ports.UserData)
}

// SearchHistoryRepository mocks ports.SearchHistoryRepository
type SearchHistoryRepository struct{ mock.Mock }

func NewSearchHistoryRepository(t testingT) *SearchHistoryRepository {
	m := &SearchHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SearchHistoryRepository) Add(ctx context.Context, item *ports.SearchHistoryData) error {
	return m.Called(ctx, item).Error(0)
}

func (m *SearchHistoryRepository) ListByUser(ctx context.Context, userID string) ([]*ports.SearchHistoryData, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*ports.SearchHistoryData)
	return items, args.Error(1)
}

func (m *SearchHistoryRepository) DeleteByMediaID(ctx context.Context, userID string, mediaID int64) (int64, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Get(0).(int64), args.Error(1)
}

// CatalogProvider mocks ports.CatalogProvider
type CatalogProvider struct{ mock.Mock }

func NewCatalogProvider(t testingT) *CatalogProvider {
	m := &CatalogProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogProvider) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	args := m.Called(ctx, path, query)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

// TokenIssuer mocks ports.TokenIssuer
type TokenIssuer struct{ mock.Mock }

func NewTokenIssuer(t testingT) *TokenIssuer {
	m := &TokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenIssuer) Issue(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// PasswordHasher mocks ports.PasswordHasher
type PasswordHasher struct{ mock.Mock }

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

// Logger is a ports.Logger that accepts every call
type Logger struct{}

func NewLogger() *Logger { return &Logger{} }

func (l *Logger) Debug(msg string, fields ...ports.Field) {}
func (l *Logger) Info(msg string, fields ...ports.Field)  {}
func (l *Logger) Warn(msg string, fields ...ports.Field)  {}
func (l *Logger) Error(msg string, fields ...ports.Field) {}
