package email

import (
	"os"
	"path/filepath"
	"testing"

	"catalogapi.app/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute_ReplacesFirstOccurrenceOnly(t *testing.T) {
	html := `<p>{{NAME}}</p><p>{{NAME}}</p><a href="{{APP_URL}}">go</a>`

	got := Substitute(html,
		Replacement{Token: TokenName, Value: "Ada"},
		Replacement{Token: TokenAppURL, Value: "https://app.example.com"})

	assert.Equal(t, `<p>Ada</p><p>{{NAME}}</p><a href="https://app.example.com">go</a>`, got)
}

func TestSubstitute_MissingTokenLeavesTemplateUntouched(t *testing.T) {
	html := "<h1>Password Reset Successful</h1>\r\n"
	assert.Equal(t, html, Substitute(html, Replacement{Token: TokenVerificationCode, Value: "123456"}))
}

func TestTemplateStore_RenderReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, VerificationTemplate)
	require.NoError(t, os.WriteFile(path, []byte("code={{VERIFICATION_CODE}}"), 0o644))

	store := NewTemplateStore(dir)
	got, err := store.Render(VerificationTemplate, Replacement{Token: TokenVerificationCode, Value: "654321"})
	require.NoError(t, err)
	assert.Equal(t, "code=654321", got)

	// no caching between calls
	require.NoError(t, os.WriteFile(path, []byte("new={{VERIFICATION_CODE}}"), 0o644))
	got, err = store.Render(VerificationTemplate, Replacement{Token: TokenVerificationCode, Value: "654321"})
	require.NoError(t, err)
	assert.Equal(t, "new=654321", got)
}

func TestTemplateStore_MissingFile(t *testing.T) {
	store := NewTemplateStore(t.TempDir())

	_, err := store.Load(WelcomeTemplate)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), WelcomeTemplate)
}

func TestShippedTemplatesContainTheirTokens(t *testing.T) {
	store := NewTemplateStore(filepath.Join("..", "..", "..", "templates", "email-templates"))

	tests := map[string][]string{
		VerificationTemplate:         {TokenVerificationCode},
		WelcomeTemplate:              {TokenName, TokenAppURL},
		PasswordResetTemplate:        {TokenResetPasswordURL},
		PasswordResetSuccessTemplate: nil,
	}

	for name, tokens := range tests {
		t.Run(name, func(t *testing.T) {
			html, err := store.Load(name)
			require.NoError(t, err)
			for _, token := range tokens {
				assert.Contains(t, html, token)
			}
		})
	}
}
