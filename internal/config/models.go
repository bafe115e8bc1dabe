package config

import "time"

// AppConfig holds global application configuration
type AppConfig struct {
	ClientID     string        `json:"client_id" yaml:"client_id"`                             // Global OAuth client ID
	ClientSecret string        `json:"client_secret" yaml:"client_secret"`                     // Global OAuth client secret
	ActivePreset string        `json:"active_preset,omitempty" yaml:"active_preset,omitempty"` // Current active preset
	APIBaseURL   string        `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty"`
	Timeout      time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"` // Whole traversal deadline
	Archive      ArchiveConfig `json:"archive" yaml:"archive"`
	CreatedAt    time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" yaml:"updated_at"`

	// RefreshToken is only ever populated from GAMGMT_REFRESH_TOKEN
	RefreshToken string `json:"-" yaml:"-"`
}

// ArchiveConfig controls the DuckDB run archive
type ArchiveConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"` // defaults to <config dir>/archive.db
}

// Preset represents a saved refresh token for one Google user
type Preset struct {
	Name         string    `json:"name" yaml:"name"`
	RefreshToken string    `json:"refresh_token" yaml:"refresh_token"`
	UserEmail    string    `json:"user_email,omitempty" yaml:"user_email,omitempty"` // For identification
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	LastUsed     time.Time `json:"last_used" yaml:"last_used"`
}
