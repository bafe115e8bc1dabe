package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gamgmt/internal/config"
)

const (
	PresetsDirName = "presets"
	PresetFileExt  = ".yaml"
)

var (
	// Valid preset names: alphanumeric, underscores, hyphens only
	validPresetName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// GetPresetsDir returns the path to the presets directory
func GetPresetsDir() (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, PresetsDirName), nil
}

// GetPresetPath returns the full path to a preset file
func GetPresetPath(presetName string) (string, error) {
	if !IsValidPresetName(presetName) {
		return "", fmt.Errorf("invalid preset name: must contain only letters, numbers, underscores, and hyphens")
	}

	presetsDir, err := GetPresetsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(presetsDir, presetName+PresetFileExt), nil
}

// IsValidPresetName validates a preset name
func IsValidPresetName(name string) bool {
	if name == "" || len(name) > 50 {
		return false
	}
	return validPresetName.MatchString(name)
}

// PresetExists checks if a preset file exists
func PresetExists(presetName string) (bool, error) {
	presetPath, err := GetPresetPath(presetName)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(presetPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func readPreset(presetName string) (*config.Preset, error) {
	presetPath, err := GetPresetPath(presetName)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(presetPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("preset '%s' does not exist", presetName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var preset config.Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}

	return &preset, nil
}

// LoadPreset reads a preset and records it as used
func LoadPreset(presetName string) (*config.Preset, error) {
	preset, err := readPreset(presetName)
	if err != nil {
		return nil, err
	}

	// Best effort, a read-only home must not block API calls
	preset.LastUsed = time.Now()
	_ = SavePreset(preset)

	return preset, nil
}

// SavePreset writes a preset to file
func SavePreset(preset *config.Preset) error {
	presetPath, err := GetPresetPath(preset.Name)
	if err != nil {
		return err
	}

	presetsDir, err := GetPresetsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(presetsDir, 0700); err != nil {
		return err
	}

	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = time.Now()
	}

	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("failed to marshal preset to YAML: %w", err)
	}

	// The file holds a refresh token: user read/write only
	if err := os.WriteFile(presetPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	return nil
}

// DeletePreset removes a preset file and clears it if it was active
func DeletePreset(presetName string) error {
	presetPath, err := GetPresetPath(presetName)
	if err != nil {
		return err
	}

	exists, err := PresetExists(presetName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("preset '%s' does not exist", presetName)
	}

	if err := os.Remove(presetPath); err != nil {
		return fmt.Errorf("failed to delete preset file: %w", err)
	}

	activePreset, err := config.GetActivePreset()
	if err == nil && activePreset == presetName {
		return config.SetActivePreset("")
	}

	return nil
}

// ListPresets returns all readable presets sorted by name. Listing does not
// touch their last-used time.
func ListPresets() ([]config.Preset, error) {
	presetsDir, err := GetPresetsDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(presetsDir)
	if os.IsNotExist(err) {
		return []config.Preset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read presets directory: %w", err)
	}

	presets := []config.Preset{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PresetFileExt) {
			continue
		}

		preset, err := readPreset(strings.TrimSuffix(entry.Name(), PresetFileExt))
		if err != nil {
			// Skip corrupted preset files
			continue
		}
		presets = append(presets, *preset)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// CreatePreset creates a new preset with validation
func CreatePreset(name, refreshToken, userEmail string) error {
	if !IsValidPresetName(name) {
		return fmt.Errorf("invalid preset name: must contain only letters, numbers, underscores, and hyphens (max 50 chars)")
	}

	if strings.TrimSpace(refreshToken) == "" {
		return fmt.Errorf("refresh token is required")
	}

	exists, err := PresetExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("preset '%s' already exists", name)
	}

	now := time.Now()
	preset := &config.Preset{
		Name:         name,
		RefreshToken: strings.TrimSpace(refreshToken),
		UserEmail:    strings.TrimSpace(userEmail),
		CreatedAt:    now,
		LastUsed:     now,
	}

	if err := SavePreset(preset); err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}

	return nil
}

// SetActivePreset marks an existing preset as active; "" clears it
func SetActivePreset(presetName string) error {
	if presetName != "" {
		exists, err := PresetExists(presetName)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("preset '%s' does not exist", presetName)
		}
	}

	return config.SetActivePreset(presetName)
}

// GetActivePreset returns the active preset, or nil when none is set
func GetActivePreset() (*config.Preset, error) {
	activePresetName, err := config.GetActivePreset()
	if err != nil {
		return nil, err
	}

	if activePresetName == "" {
		return nil, nil
	}

	return LoadPreset(activePresetName)
}

// Resolve returns the named preset, or the active one when name is empty
func Resolve(name string) (*config.Preset, error) {
	if name == "" {
		p, err := GetActivePreset()
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("no active preset - run 'gamgmt preset use <name>' first")
		}
		return p, nil
	}
	return LoadPreset(name)
}
