package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTranslations(t *testing.T) {
	localePath := filepath.Join("..", "..", "..", "locales")

	require.NoError(t, LoadTranslations(localePath))

	assert.Equal(t, "Approved", Translate("en", "STATUS_approved"))
	assert.Equal(t, "அங்கீகரிக்கப்பட்டது", StatusLabel("ta", "approved"))
	assert.Equal(t, "Your donation #7 is now Collected.",
		Translatef("en", "NOTIF_STATUS_CHANGED_BODY", Translate("en", "KIND_donation"), 7, StatusLabel("en", "collected")))

	// si has no email catalog entries and falls back to English.
	assert.Equal(t, "Welcome to FlowX", Translate("si", "EMAIL_WELCOME_SUBJECT"))
	assert.Equal(t, "NON_EXISTENT_KEY", Translate("si", "NON_EXISTENT_KEY"))
}

func TestLoadTranslations_RejectsMalformedCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "xx"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xx", "messages.yaml"), []byte("MESSAGES: [unclosed"), 0o644))

	err := LoadTranslations(dir)
	assert.Error(t, err)
}

func TestLoadTranslations_MissingDirectory(t *testing.T) {
	assert.Error(t, LoadTranslations(filepath.Join(t.TempDir(), "missing")))
}
