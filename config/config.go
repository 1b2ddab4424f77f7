package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	env_openai_key       = "OPENAI_API_KEY"
	env_pexels_key       = "PEXELS_API_KEY"
	env_client_secret    = "CLIENT_SECRET_FILE"
	env_youtube_key      = "YOUTUBE_API_KEY"
	env_apify_token      = "APIFY_API_TOKEN"
	env_upload_alert_arn = "UPLOAD_ALERT_SNS_ARN"

	default_client_secret_file = "client_secret.json"
	default_assets_dir         = "assets"
	default_output_videos_dir  = "videos"
	default_trend_report_dir   = "trend_results"
)

// MissingConfigError reports a required configuration value that was absent
// or unusable at startup.
type MissingConfigError struct {
	Key    string
	Reason string
}

func (e *MissingConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("missing configuration: %s (%s)", e.Key, e.Reason)
	}
	return fmt.Sprintf("missing configuration: %s", e.Key)
}

// Settings holds the non-secret knobs decoded from the TOML settings file.
// Every field has a usable default so the file itself is optional.
type Settings struct {
	Assets struct {
		Dir        string
		Output_dir string
	}
	Footage struct {
		Clip_count  int
		Max_seconds int
	}
	Video struct {
		Width      int
		Height     int
		Title_font string
	}
	Youtube struct {
		Privacy     string
		Category_id string
		Tags        []string
	}
	Trends struct {
		Source      string
		Region      string
		Max_results int
		Report_dir  string
	}
}

// Config is the immutable process configuration, loaded once at startup and
// passed into each component's constructor.
type Config struct {
	OpenAIKey        string
	PexelsKey        string
	ClientSecretFile string
	YoutubeAPIKey    string
	ApifyToken       string
	UploadAlertArn   string
	Settings         Settings
}

// Load reads .env (if present), the process environment and the TOML settings
// file. Required values missing or a nonexistent client secret file fail the
// run before any network call is made.
func Load(settingsFile string) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		OpenAIKey:        os.Getenv(env_openai_key),
		PexelsKey:        os.Getenv(env_pexels_key),
		ClientSecretFile: os.Getenv(env_client_secret),
		YoutubeAPIKey:    os.Getenv(env_youtube_key),
		ApifyToken:       os.Getenv(env_apify_token),
		UploadAlertArn:   os.Getenv(env_upload_alert_arn),
	}
	if conf.ClientSecretFile == "" {
		conf.ClientSecretFile = default_client_secret_file
	}

	if conf.OpenAIKey == "" {
		return nil, &MissingConfigError{Key: env_openai_key}
	}
	if conf.PexelsKey == "" {
		return nil, &MissingConfigError{Key: env_pexels_key}
	}
	if _, err := os.Stat(conf.ClientSecretFile); err != nil {
		return nil, &MissingConfigError{Key: env_client_secret, Reason: "client secret file not found: " + conf.ClientSecretFile}
	}

	if settingsFile != "" {
		if _, err := os.Stat(settingsFile); err == nil {
			if _, err := toml.DecodeFile(settingsFile, &conf.Settings); err != nil {
				return nil, fmt.Errorf("decode %s: %w", settingsFile, err)
			}
		}
	}
	applyDefaults(&conf.Settings)
	return conf, nil
}

func applyDefaults(s *Settings) {
	if s.Assets.Dir == "" {
		s.Assets.Dir = default_assets_dir
	}
	if s.Assets.Output_dir == "" {
		s.Assets.Output_dir = default_output_videos_dir
	}
	if s.Footage.Clip_count <= 0 {
		s.Footage.Clip_count = 1
	}
	if s.Footage.Max_seconds <= 0 {
		s.Footage.Max_seconds = 59
	}
	if s.Video.Width <= 0 {
		s.Video.Width = 1080
	}
	if s.Video.Height <= 0 {
		s.Video.Height = 1920
	}
	if s.Youtube.Privacy == "" {
		s.Youtube.Privacy = "public"
	}
	if s.Youtube.Category_id == "" {
		s.Youtube.Category_id = "24" // Entertainment
	}
	if s.Trends.Source == "" {
		s.Trends.Source = "tiktok"
	}
	if s.Trends.Region == "" {
		s.Trends.Region = "US"
	}
	if s.Trends.Max_results <= 0 {
		s.Trends.Max_results = 25
	}
	if s.Trends.Report_dir == "" {
		s.Trends.Report_dir = default_trend_report_dir
	}
}
