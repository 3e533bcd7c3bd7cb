package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth     int                 `json:"window_width"`
	WindowHeight    int                 `json:"window_height"`
	IntervalMs      int                 `json:"interval_ms"`  // auto-advance period
	DebounceMs      int                 `json:"debounce_ms"`  // navigation debounce window
	SortMethod      int                 `json:"sort_method"`
	RandomMode      bool                `json:"random_mode"`  // start in random mode
	AutoAdvance     bool                `json:"auto_advance"` // start with the timer running
	Fullscreen      bool                `json:"fullscreen"`
	OverlayFontSize float64             `json:"overlay_font_size"`
	CacheSize       int                 `json:"cache_size"`
	PreloadEnabled  bool                `json:"preload_enabled"`
	PreloadCount    int                 `json:"preload_count"`
	Keybindings     map[string][]string `json:"keybindings"`
	Mousebindings   map[string][]string `json:"mousebindings"`
	MouseSettings   MouseSettings       `json:"mouse_settings"`
}

// Interval returns the auto-advance period as a duration
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// DebounceWindow returns the debounce window as a duration
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "sv.json"
	}
	return filepath.Join(homeDir, ".sv.json")
}

func defaultConfig() Config {
	return Config{
		WindowWidth:     defaultWidth,
		WindowHeight:    defaultHeight,
		IntervalMs:      int(defaultAdvancePeriod / time.Millisecond),
		DebounceMs:      int(defaultDebounceWindow / time.Millisecond),
		SortMethod:      SortNatural,
		RandomMode:      false,
		AutoAdvance:     false,
		Fullscreen:      false,
		OverlayFontSize: 18.0,
		CacheSize:       16,
		PreloadEnabled:  true,
		PreloadCount:    4,
		Keybindings:     GetDefaultKeybindings(),
		Mousebindings:   GetDefaultMousebindings(),
		MouseSettings:   defaultMouseSettings(),
	}
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()
	result := ConfigLoadResult{
		Config:   config,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	// Validate minimum window size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Clamp the auto-advance interval to the scheduler bounds
	if d := config.Interval(); d < minAdvancePeriod {
		config.IntervalMs = int(minAdvancePeriod / time.Millisecond)
	} else if d > maxAdvancePeriod {
		config.IntervalMs = int(maxAdvancePeriod / time.Millisecond)
	}

	// Debounce window: 50ms..2000ms
	if config.DebounceMs < 50 || config.DebounceMs > 2000 {
		config.DebounceMs = int(defaultDebounceWindow / time.Millisecond)
	}

	// Validate sort method
	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Overlay font size (minimum 12px for readability)
	if config.OverlayFontSize < 12.0 {
		config.OverlayFontSize = 18.0
	}

	// Cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	config.MouseSettings = validateMouseSettings(config.MouseSettings)

	config.Keybindings = mergeBindings(config.Keybindings, GetDefaultKeybindings())
	if err := validateKeybindings(config.Keybindings); err != nil {
		log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
		config.Keybindings = GetDefaultKeybindings()
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
	}

	config.Mousebindings = mergeBindings(config.Mousebindings, GetDefaultMousebindings())

	result.Config = config
	return result
}

// mergeBindings fills in missing actions with their defaults
func mergeBindings(bindings, defaults map[string][]string) map[string][]string {
	if bindings == nil {
		return defaults
	}
	for action, defaultKeys := range defaults {
		if _, exists := bindings[action]; !exists {
			bindings[action] = defaultKeys
		}
	}
	return bindings
}

// validateKeybindings checks key formats and detects conflicts
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string like "Shift+KeyN"
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns the set of key names accepted in keybindings
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
