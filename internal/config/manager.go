package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2/google"
	"gopkg.in/yaml.v3"
)

const (
	ConfigDirName   = ".gamgmt"
	ConfigFileName  = "config.yaml"
	ArchiveFileName = "archive.db"

	DefaultAPIBaseURL = "https://www.googleapis.com/analytics/v3"
	DefaultTimeout    = 60 * time.Second
)

// Environment variables consulted on top of the config file
const (
	EnvHome         = "GAMGMT_HOME"
	EnvClientID     = "GAMGMT_CLIENT_ID"
	EnvClientSecret = "GAMGMT_CLIENT_SECRET"
	EnvRefreshToken = "GAMGMT_REFRESH_TOKEN"
	EnvAPIBaseURL   = "GAMGMT_API_BASE_URL"
)

// GetConfigDir returns the config directory: $GAMGMT_HOME, else ~/.gamgmt
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDirName), nil
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// User read/write/execute only
	return os.MkdirAll(configDir, 0700)
}

// LoadConfig reads the config file as stored, without environment overrides
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &AppConfig{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadEffectiveConfig reads the config file, loads .env from the working
// directory, then applies environment overrides and defaults. The result
// must not be saved back.
func LoadEffectiveConfig() (*AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvClientID); v != "" {
		config.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		config.ClientSecret = v
	}
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		config.APIBaseURL = v
	}
	config.RefreshToken = strings.TrimSpace(os.Getenv(EnvRefreshToken))

	if err := config.setDefaults(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *AppConfig) setDefaults() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Archive.Path == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return err
		}
		c.Archive.Path = filepath.Join(configDir, ArchiveFileName)
	}
	return nil
}

// SaveConfig writes the global configuration to the config file
func SaveConfig(config *AppConfig) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	config.UpdatedAt = time.Now()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = time.Now()
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// User read/write only
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// update loads the stored config, applies fn and saves it
func update(fn func(*AppConfig)) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fn(config)

	if err := SaveConfig(config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// SetClientCredentials sets the OAuth client ID and secret in global config
func SetClientCredentials(clientID, clientSecret string) error {
	return update(func(c *AppConfig) {
		c.ClientID = clientID
		c.ClientSecret = clientSecret
	})
}

// ImportClientSecrets reads a client_secrets.json downloaded from the Google
// API console (installed or web application) and stores its credentials
func ImportClientSecrets(path string) (clientID string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read client secrets: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse client secrets: %w", err)
	}
	if oauthConfig.ClientID == "" || oauthConfig.ClientSecret == "" {
		return "", fmt.Errorf("client secrets file has no client_id or client_secret")
	}

	if err := SetClientCredentials(oauthConfig.ClientID, oauthConfig.ClientSecret); err != nil {
		return "", err
	}
	return oauthConfig.ClientID, nil
}

// HasClientCredentials checks if OAuth credentials are configured, counting
// environment overrides
func HasClientCredentials() (bool, error) {
	config, err := LoadEffectiveConfig()
	if err != nil {
		return false, err
	}
	return config.ClientID != "" && config.ClientSecret != "", nil
}

// SetActivePreset sets the active preset name
func SetActivePreset(presetName string) error {
	return update(func(c *AppConfig) {
		c.ActivePreset = presetName
	})
}

// SetArchive turns the run archive on or off
func SetArchive(enabled bool, path string) error {
	return update(func(c *AppConfig) {
		c.Archive.Enabled = enabled
		if path != "" {
			c.Archive.Path = path
		}
	})
}

// GetActivePreset returns the currently active preset name
func GetActivePreset() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	return config.ActivePreset, nil
}
