package videouploader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestNewDefaultsTokenFileBesideSecret(t *testing.T) {
	uploader := New("/etc/shortchaser/client_secret.json")
	assert.Equal(t, "/etc/shortchaser/client_token.json", uploader.TokenFile)
}

func TestGetTokenFromFile(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "client_token.json")
	data, err := json.Marshal(&oauth2.Token{AccessToken: "abc123", RefreshToken: "xyz789"})
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(tokenPath, data, 0600))

	token, err := getTokenFromFile(tokenPath)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, "xyz789", token.RefreshToken)
}

func TestGetTokenFromFileMissing(t *testing.T) {
	_, err := getTokenFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestUploadMissingSecretReturnsAuthError(t *testing.T) {
	uploader := New(filepath.Join(t.TempDir(), "client_secret.json"))
	_, err := uploader.Upload("video.mp4", Metadata{Title: "t"})
	assert.Error(t, err)
	authErr, ok := err.(*AuthError)
	assert.True(t, ok)
	assert.Equal(t, "read client secret", authErr.Reason)
}

func TestUploadMissingTokenReturnsAuthError(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "client_secret.json")
	secret := `{"installed":{"client_id":"id","client_secret":"sec","redirect_uris":["urn:ietf:wg:oauth:2.0:oob"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`
	assert.NoError(t, os.WriteFile(secretPath, []byte(secret), 0600))

	uploader := New(secretPath)
	_, err := uploader.Upload("video.mp4", Metadata{Title: "t"})
	assert.Error(t, err)
	authErr, ok := err.(*AuthError)
	assert.True(t, ok)
	assert.Contains(t, authErr.Reason, "cached token")
}
