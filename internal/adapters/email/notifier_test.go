package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalogapi.app/internal/mocks"
	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAppURL = "https://catalog.example.com"

var templateDir = filepath.Join("..", "..", "..", "templates", "email-templates")

type recordedDelivery struct {
	kind string
	err  error
}

type fakeRecorder struct {
	deliveries []recordedDelivery
}

func (r *fakeRecorder) RecordEmail(kind string, err error) {
	r.deliveries = append(r.deliveries, recordedDelivery{kind: kind, err: err})
}

func newTestNotifier(t *testing.T, sender ports.EmailSender, recorder DeliveryRecorder) *AccountEmailNotifier {
	t.Helper()
	n, err := NewAccountEmailNotifier(NotifierConfig{
		Sender:    sender,
		Templates: NewTemplateStore(templateDir),
		AppURL:    testAppURL,
		Logger:    mocks.NewLogger(),
		Recorder:  recorder,
	})
	require.NoError(t, err)
	return n
}

func readTemplate(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(templateDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestNewAccountEmailNotifier_RequiresDependencies(t *testing.T) {
	_, err := NewAccountEmailNotifier(NotifierConfig{Templates: NewTemplateStore(templateDir), Logger: mocks.NewLogger()})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewAccountEmailNotifier(NotifierConfig{Sender: mocks.NewEmailSender(t), Logger: mocks.NewLogger()})
	assert.True(t, errors.IsValidationError(err))
}

func TestAccountEmailNotifier_RendersEachTemplate(t *testing.T) {
	tests := []struct {
		name     string
		send     func(n *AccountEmailNotifier) error
		template string
		subject  string
		expected func(raw string) string
	}{
		{
			name: "Verification",
			send: func(n *AccountEmailNotifier) error {
				return n.SendVerificationEmail(context.Background(), "user@example.com", "482913")
			},
			template: VerificationTemplate,
			subject:  "Email Verification Code – Netflix-Clone",
			expected: func(raw string) string {
				return strings.Replace(raw, TokenVerificationCode, "482913", 1)
			},
		},
		{
			name: "Welcome",
			send: func(n *AccountEmailNotifier) error {
				return n.SendWelcomeEmail(context.Background(), "user@example.com", "Ada")
			},
			template: WelcomeTemplate,
			subject:  "Welcome to Netflix-Clone!",
			expected: func(raw string) string {
				out := strings.Replace(raw, TokenName, "Ada", 1)
				return strings.Replace(out, TokenAppURL, testAppURL, 1)
			},
		},
		{
			name: "PasswordReset",
			send: func(n *AccountEmailNotifier) error {
				return n.SendPasswordResetEmail(context.Background(), "user@example.com", testAppURL+"/reset-password/abc")
			},
			template: PasswordResetTemplate,
			subject:  "Password Reset Request – Netflix-Clone",
			expected: func(raw string) string {
				return strings.Replace(raw, TokenResetPasswordURL, testAppURL+"/reset-password/abc", 1)
			},
		},
		{
			name: "PasswordResetSuccess",
			send: func(n *AccountEmailNotifier) error {
				return n.SendPasswordResetSuccessEmail(context.Background(), "user@example.com")
			},
			template: PasswordResetSuccessTemplate,
			subject:  "Your Password Has Been Reset – Netflix-Clone",
			expected: func(raw string) string { return raw },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := mocks.NewEmailSender(t)
			want := ports.EmailMessage{
				To:      []string{"user@example.com"},
				Subject: tt.subject,
				HTML:    tt.expected(readTemplate(t, tt.template)),
			}
			sender.On("SendEmail", mock.Anything, want).Return(nil).Once()

			require.NoError(t, tt.send(newTestNotifier(t, sender, nil)))
		})
	}
}

func TestAccountEmailNotifier_WrapsTransportFailure(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		send   func(n *AccountEmailNotifier) error
		kind   string
	}{
		{"Verification", "Couldn't send verification email", func(n *AccountEmailNotifier) error {
			return n.SendVerificationEmail(context.Background(), "user@example.com", "111111")
		}, "verification"},
		{"Welcome", "Couldn't send welcome email", func(n *AccountEmailNotifier) error {
			return n.SendWelcomeEmail(context.Background(), "user@example.com", "Ada")
		}, "welcome"},
		{"PasswordReset", "Couldn't send password reset email", func(n *AccountEmailNotifier) error {
			return n.SendPasswordResetEmail(context.Background(), "user@example.com", "https://x/reset")
		}, "password_reset"},
		{"PasswordResetSuccess", "Couldn't send password reset success email", func(n *AccountEmailNotifier) error {
			return n.SendPasswordResetSuccessEmail(context.Background(), "user@example.com")
		}, "password_reset_success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := fmt.Errorf("535 5.7.8 Username and Password not accepted")
			sender := mocks.NewEmailSender(t)
			sender.On("SendEmail", mock.Anything, mock.Anything).Return(cause).Once()
			recorder := &fakeRecorder{}

			err := tt.send(newTestNotifier(t, sender, recorder))

			require.Error(t, err)
			assert.True(t, errors.IsEmailError(err))
			assert.Contains(t, err.Error(), tt.phrase)
			assert.Contains(t, err.Error(), cause.Error())
			assert.ErrorIs(t, err, cause)
			require.Len(t, recorder.deliveries, 1)
			assert.Equal(t, tt.kind, recorder.deliveries[0].kind)
			assert.Error(t, recorder.deliveries[0].err)
		})
	}
}

func TestAccountEmailNotifier_SenderErrorAppearsOnce(t *testing.T) {
	transportErr := fmt.Errorf("535 bad credentials")
	senderErr := errors.NewEmailError("failed to send email", transportErr)
	sender := mocks.NewEmailSender(t)
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(senderErr).Once()

	err := newTestNotifier(t, sender, nil).SendWelcomeEmail(context.Background(), "user@example.com", "Ada")

	require.Error(t, err)
	assert.Equal(t, "Couldn't send welcome email: failed to send email", errors.MessageOf(err))
	assert.Equal(t, 1, strings.Count(err.Error(), "535 bad credentials"))
	assert.ErrorIs(t, err, senderErr)
	assert.ErrorIs(t, err, transportErr)
}

func TestAccountEmailNotifier_TemplateReadFailure(t *testing.T) {
	sender := mocks.NewEmailSender(t)
	n, err := NewAccountEmailNotifier(NotifierConfig{
		Sender:    sender,
		Templates: NewTemplateStore(t.TempDir()),
		Logger:    mocks.NewLogger(),
	})
	require.NoError(t, err)

	err = n.SendWelcomeEmail(context.Background(), "user@example.com", "Ada")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Couldn't send welcome email")
	assert.Contains(t, err.Error(), WelcomeTemplate)
	sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}
