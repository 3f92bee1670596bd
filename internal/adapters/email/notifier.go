package email

import (
	"context"
	"fmt"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
)

// DeliveryRecorder observes the outcome of each transactional email
type DeliveryRecorder interface {
	RecordEmail(kind string, err error)
}

type emailKind struct {
	name     string
	template string
	subject  string
	failure  string
}

var (
	verificationEmail = emailKind{
		name:     "verification",
		template: VerificationTemplate,
		subject:  "Email Verification Code – Netflix-Clone",
		failure:  "Couldn't send verification email",
	}
	welcomeEmail = emailKind{
		name:     "welcome",
		template: WelcomeTemplate,
		subject:  "Welcome to Netflix-Clone!",
		failure:  "Couldn't send welcome email",
	}
	passwordResetEmail = emailKind{
		name:     "password_reset",
		template: PasswordResetTemplate,
		subject:  "Password Reset Request – Netflix-Clone",
		failure:  "Couldn't send password reset email",
	}
	passwordResetSuccessEmail = emailKind{
		name:     "password_reset_success",
		template: PasswordResetSuccessTemplate,
		subject:  "Your Password Has Been Reset – Netflix-Clone",
		failure:  "Couldn't send password reset success email",
	}
)

// NotifierConfig holds the collaborators of AccountEmailNotifier
type NotifierConfig struct {
	Sender    ports.EmailSender
	Templates *TemplateStore
	AppURL    string
	Logger    ports.Logger
	Recorder  DeliveryRecorder
}

// AccountEmailNotifier implements ports.AccountNotifier with file templates
type AccountEmailNotifier struct {
	sender    ports.EmailSender
	templates *TemplateStore
	appURL    string
	logger    ports.Logger
	recorder  DeliveryRecorder
}

// NewAccountEmailNotifier creates a notifier
func NewAccountEmailNotifier(cfg NotifierConfig) (*AccountEmailNotifier, error) {
	if cfg.Sender == nil {
		return nil, errors.NewValidationError("email sender is required")
	}
	if cfg.Templates == nil {
		return nil, errors.NewValidationError("template store is required")
	}
	if cfg.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &AccountEmailNotifier{
		sender:    cfg.Sender,
		templates: cfg.Templates,
		appURL:    cfg.AppURL,
		logger:    cfg.Logger,
		recorder:  cfg.Recorder,
	}, nil
}

// SendVerificationEmail sends the signup verification code
func (n *AccountEmailNotifier) SendVerificationEmail(ctx context.Context, userEmail, verificationCode string) error {
	return n.send(ctx, verificationEmail, userEmail,
		Replacement{Token: TokenVerificationCode, Value: verificationCode})
}

// SendWelcomeEmail greets a user whose address has been verified
func (n *AccountEmailNotifier) SendWelcomeEmail(ctx context.Context, userEmail, name string) error {
	return n.send(ctx, welcomeEmail, userEmail,
		Replacement{Token: TokenName, Value: name},
		Replacement{Token: TokenAppURL, Value: n.appURL})
}

// SendPasswordResetEmail sends the link to the password reset page
func (n *AccountEmailNotifier) SendPasswordResetEmail(ctx context.Context, userEmail, resetURL string) error {
	return n.send(ctx, passwordResetEmail, userEmail,
		Replacement{Token: TokenResetPasswordURL, Value: resetURL})
}

// SendPasswordResetSuccessEmail confirms a completed password reset
func (n *AccountEmailNotifier) SendPasswordResetSuccessEmail(ctx context.Context, userEmail string) error {
	return n.send(ctx, passwordResetSuccessEmail, userEmail)
}

func (n *AccountEmailNotifier) send(ctx context.Context, kind emailKind, userEmail string, replacements ...Replacement) error {
	err := n.deliver(ctx, kind, userEmail, replacements)
	if n.recorder != nil {
		n.recorder.RecordEmail(kind.name, err)
	}
	if err != nil {
		n.logger.Error("Error sending "+kind.name+" email",
			ports.F("error", err),
			ports.F("to", userEmail))
		return errors.NewEmailError(fmt.Sprintf("%s: %s", kind.failure, errors.MessageOf(err)), err)
	}

	n.logger.Info(kind.name+" email sent successfully", ports.F("to", userEmail))
	return nil
}

func (n *AccountEmailNotifier) deliver(ctx context.Context, kind emailKind, userEmail string, replacements []Replacement) error {
	html, err := n.templates.Render(kind.template, replacements...)
	if err != nil {
		return err
	}

	return n.sender.SendEmail(ctx, ports.EmailMessage{
		To:      []string{userEmail},
		Subject: kind.subject,
		HTML:    html,
	})
}
