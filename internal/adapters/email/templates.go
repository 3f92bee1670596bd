package email

import (
	"os"
	"path/filepath"
	"strings"

	"catalogapi.app/pkg/errors"
)

// Template file names inside the template directory
const (
	VerificationTemplate         = "send_verification_email.html"
	WelcomeTemplate              = "send_welcome_email.html"
	PasswordResetTemplate        = "send_password_reset_email.html"
	PasswordResetSuccessTemplate = "send_password_reset_successfull_email.html"
)

// Placeholder tokens recognised in templates
const (
	TokenVerificationCode = "{{VERIFICATION_CODE}}"
	TokenName             = "{{NAME}}"
	TokenAppURL           = "{{APP_URL}}"
	TokenResetPasswordURL = "{{RESET_PASSWORD_URL}}"
)

// Replacement substitutes the first occurrence of Token with Value
type Replacement struct {
	Token string
	Value string
}

// TemplateStore reads HTML templates from a directory. Files are read on
// every call so edits on disk take effect without a restart.
type TemplateStore struct {
	dir string
}

// NewTemplateStore creates a template store rooted at dir
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Load returns the raw contents of the named template
func (s *TemplateStore) Load(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.NewConfigurationError("failed to read email template "+name, err)
	}
	return string(data), nil
}

// Render loads the named template and applies the replacements in order
func (s *TemplateStore) Render(name string, replacements ...Replacement) (string, error) {
	html, err := s.Load(name)
	if err != nil {
		return "", err
	}
	return Substitute(html, replacements...), nil
}

// Substitute replaces the first occurrence of each token, in order, and
// leaves every other byte untouched.
func Substitute(html string, replacements ...Replacement) string {
	for _, r := range replacements {
		html = strings.Replace(html, r.Token, r.Value, 1)
	}
	return html
}
