package ports

import "context"

// EmailMessage is a single outbound HTML email
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

// EmailSender delivers a rendered message over the mail transport
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// AccountNotifier sends the transactional emails of the account lifecycle
type AccountNotifier interface {
	SendVerificationEmail(ctx context.Context, userEmail, verificationCode string) error
	SendWelcomeEmail(ctx context.Context, userEmail, name string) error
	SendPasswordResetEmail(ctx context.Context, userEmail, resetURL string) error
	SendPasswordResetSuccessEmail(ctx context.Context, userEmail string) error
}
