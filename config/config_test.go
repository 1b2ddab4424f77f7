package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "client_secret.json")
	if err := os.WriteFile(secretFile, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PEXELS_API_KEY", "px-test")
	t.Setenv("CLIENT_SECRET_FILE", secretFile)
	return dir
}

func TestLoadMissingKeys(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	conf, err := Load("")
	assert.Nil(t, conf)

	var missing *MissingConfigError
	assert.True(t, errors.As(err, &missing))
	assert.EqualValues(t, "OPENAI_API_KEY", missing.Key)
}

func TestLoadMissingClientSecretFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLIENT_SECRET_FILE", "does-not-exist.json")

	_, err := Load("")
	var missing *MissingConfigError
	assert.True(t, errors.As(err, &missing))
	assert.EqualValues(t, "CLIENT_SECRET_FILE", missing.Key)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	conf, err := Load("")
	assert.Nil(t, err)
	assert.EqualValues(t, 1, conf.Settings.Footage.Clip_count)
	assert.EqualValues(t, 59, conf.Settings.Footage.Max_seconds)
	assert.EqualValues(t, 1080, conf.Settings.Video.Width)
	assert.EqualValues(t, 1920, conf.Settings.Video.Height)
	assert.EqualValues(t, "public", conf.Settings.Youtube.Privacy)
	assert.EqualValues(t, "US", conf.Settings.Trends.Region)
}

func TestLoadSettingsFile(t *testing.T) {
	dir := setRequiredEnv(t)
	settings := filepath.Join(dir, "settings.toml")
	data := `
[footage]
clip_count = 3
max_seconds = 45

[youtube]
privacy = "private"
tags = ["shorts", "auto"]

[trends]
source = "youtube"
region = "GB"
`
	if err := os.WriteFile(settings, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(settings)
	assert.Nil(t, err)
	assert.EqualValues(t, 3, conf.Settings.Footage.Clip_count)
	assert.EqualValues(t, 45, conf.Settings.Footage.Max_seconds)
	assert.EqualValues(t, "private", conf.Settings.Youtube.Privacy)
	assert.EqualValues(t, []string{"shorts", "auto"}, conf.Settings.Youtube.Tags)
	assert.EqualValues(t, "youtube", conf.Settings.Trends.Source)
	assert.EqualValues(t, "GB", conf.Settings.Trends.Region)
	// Untouched sections still get defaults
	assert.EqualValues(t, "assets", conf.Settings.Assets.Dir)
}
