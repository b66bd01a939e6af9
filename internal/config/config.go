// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/crowdassist/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultRefreshURL is the session lifecycle refresh endpoint.
	DefaultRefreshURL = "https://login.hackers.bugcrowd.com/api/v1/sessions/me/lifecycle/refresh"

	// DefaultCookieDomain scopes the cookies sent with a refresh.
	DefaultCookieDomain = ".bugcrowd.com"

	// DefaultOpenAIURL is the completion API base URL.
	DefaultOpenAIURL = "https://api.openai.com/v1"

	// DefaultModel is the completion model used by every assist feature.
	DefaultModel = "gpt-3.5-turbo"

	// DefaultIPLookupURL returns the caller's public IP as {"ip": "..."}.
	DefaultIPLookupURL = "https://api.ipify.org?format=json"

	// DefaultRefreshMinutes is the keep-alive period.
	DefaultRefreshMinutes = 60

	// Theme modes.
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	// Cookie sources.
	CookieSourceFile   = "file"
	CookieSourceChrome = "chrome"

	// TokenPrefix is the required prefix of an API token.
	TokenPrefix = "sk-"
)

// Token validation errors, worded for display in the settings panel.
var (
	ErrTokenEmpty  = errors.New("Please enter a valid token")
	ErrTokenPrefix = errors.New("Token should start with \"sk-\"")
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete crowdassist configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Completion API
	OpenAI OpenAIConfig `toml:"openai" json:"openai"`

	// Session keep-alive
	Session SessionConfig `toml:"session" json:"session"`

	// Theme and privacy
	UI UIConfig `toml:"ui" json:"ui"`

	// Outbound lookups
	Network NetworkConfig `toml:"network" json:"network"`

	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// OpenAIConfig configures the completion API.
type OpenAIConfig struct {
	// Token is only set when the OS keyring is unavailable.
	Token          string `toml:"token" json:"token"`
	TokenInKeyring bool   `toml:"token_in_keyring" json:"token_in_keyring"`
	BaseURL        string `toml:"base_url" json:"base_url"`
	Model          string `toml:"model" json:"model"`
	TimeoutSecs    int    `toml:"timeout_secs" json:"timeout_secs"`
}

// SessionConfig configures the session keep-alive loop.
type SessionConfig struct {
	AutoRenew              bool   `toml:"auto_renew" json:"auto_renew"`
	RefreshIntervalMinutes int    `toml:"refresh_interval_minutes" json:"refresh_interval_minutes"`
	RefreshURL             string `toml:"refresh_url" json:"refresh_url"`
	CookieDomain           string `toml:"cookie_domain" json:"cookie_domain"`

	// CookieSource is "file" (Netscape cookies.txt) or "chrome" (DevTools).
	CookieSource string `toml:"cookie_source" json:"cookie_source"`
	CookiesFile  string `toml:"cookies_file" json:"cookies_file"`
	DevToolsURL  string `toml:"devtools_url" json:"devtools_url"`
}

// RefreshInterval returns the refresh period as a duration.
func (s SessionConfig) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshIntervalMinutes) * time.Minute
}

// UIConfig configures presentation.
type UIConfig struct {
	ThemeMode   string `toml:"theme_mode" json:"theme_mode"`
	PrivacyMode bool   `toml:"privacy_mode" json:"privacy_mode"`
	ExportDir   string `toml:"export_dir" json:"export_dir"`
}

// NetworkConfig holds endpoints for auxiliary lookups.
type NetworkConfig struct {
	IPLookupURL string `toml:"ip_lookup_url" json:"ip_lookup_url"`
}

// LoggingConfig configures the log sink.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
	// File is used while the TUI owns the terminal. Empty means the default.
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		OpenAI: OpenAIConfig{
			BaseURL:     DefaultOpenAIURL,
			Model:       DefaultModel,
			TimeoutSecs: 60,
		},
		Session: SessionConfig{
			AutoRenew:              true,
			RefreshIntervalMinutes: DefaultRefreshMinutes,
			RefreshURL:             DefaultRefreshURL,
			CookieDomain:           DefaultCookieDomain,
			CookieSource:           CookieSourceFile,
			DevToolsURL:            "http://127.0.0.1:9222",
		},
		UI: UIConfig{
			ThemeMode:   ThemeSystem,
			PrivacyMode: false,
			ExportDir:   ".",
		},
		Network: NetworkConfig{
			IPLookupURL: DefaultIPLookupURL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the crowdassist configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".crowdassist"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return inConfigDir("config.toml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return inConfigDir("config.json")
}

// DataPath returns the path of a file stored next to the config.
func DataPath(name string) (string, error) {
	return inConfigDir(name)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files hold the API token and must be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// .env files and environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	loaded := false
	if tomlPath, err := ConfigPathTOML(); err == nil && fileExists(tomlPath) {
		if err := LoadTOML(cfg, tomlPath); err != nil {
			loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			cfg = Default()
		} else {
			loaded = true
		}
	}

	if !loaded {
		if jsonPath, err := ConfigPathJSON(); err == nil && fileExists(jsonPath) {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
				cfg = Default()
			} else {
				loaded = true
				loadErr = nil
			}
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}

	// Defaults are still usable when a file failed to parse.
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish runs the shared post-load pipeline.
func finish(cfg *Config) error {
	LoadDotEnv()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# crowdassist configuration file\n")
	b.WriteString("# Generated by crowdassist - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateToken checks an API token the way the settings panel does.
func ValidateToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenEmpty
	}
	if !strings.HasPrefix(token, TokenPrefix) {
		return ErrTokenPrefix
	}
	return nil
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.OpenAI.Token != "" {
		if err := ValidateToken(c.OpenAI.Token); err != nil {
			errs = append(errs, ValidationError{Field: "openai.token", Message: err.Error()})
		}
	}
	if err := validateHTTPURL(c.OpenAI.BaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "openai.base_url", Message: err.Error()})
	}
	if c.OpenAI.TimeoutSecs < 1 || c.OpenAI.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "openai.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.OpenAI.TimeoutSecs),
		})
	}

	if c.Session.RefreshIntervalMinutes < 1 || c.Session.RefreshIntervalMinutes > 24*60 {
		errs = append(errs, ValidationError{
			Field:   "session.refresh_interval_minutes",
			Message: fmt.Sprintf("must be between 1 and 1440, got %d", c.Session.RefreshIntervalMinutes),
		})
	}
	if err := validateHTTPURL(c.Session.RefreshURL); err != nil {
		errs = append(errs, ValidationError{Field: "session.refresh_url", Message: err.Error()})
	}
	if !strings.HasPrefix(c.Session.CookieDomain, ".") {
		errs = append(errs, ValidationError{
			Field:   "session.cookie_domain",
			Message: fmt.Sprintf("must start with '.', got '%s'", c.Session.CookieDomain),
		})
	}
	switch c.Session.CookieSource {
	case CookieSourceFile, CookieSourceChrome:
	default:
		errs = append(errs, ValidationError{
			Field:   "session.cookie_source",
			Message: fmt.Sprintf("invalid source '%s', must be one of: file, chrome", c.Session.CookieSource),
		})
	}
	if c.Session.CookieSource == CookieSourceChrome {
		if err := validateHTTPURL(c.Session.DevToolsURL); err != nil {
			errs = append(errs, ValidationError{Field: "session.devtools_url", Message: err.Error()})
		}
	}

	switch strings.ToLower(c.UI.ThemeMode) {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme_mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: light, dark, system", c.UI.ThemeMode),
		})
	}

	if err := validateHTTPURL(c.Network.IPLookupURL); err != nil {
		errs = append(errs, ValidationError{Field: "network.ip_lookup_url", Message: err.Error()})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got '%s'", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: '%s'", raw)
	}
	return nil
}

// SetDefaults fills zero values that a partial file leaves behind.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = d.OpenAI.BaseURL
	}
	c.OpenAI.BaseURL = strings.TrimSuffix(c.OpenAI.BaseURL, "/")
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = d.OpenAI.Model
	}
	if c.OpenAI.TimeoutSecs == 0 {
		c.OpenAI.TimeoutSecs = d.OpenAI.TimeoutSecs
	}
	if c.Session.RefreshIntervalMinutes == 0 {
		c.Session.RefreshIntervalMinutes = d.Session.RefreshIntervalMinutes
	}
	if c.Session.RefreshURL == "" {
		c.Session.RefreshURL = d.Session.RefreshURL
	}
	if c.Session.CookieDomain == "" {
		c.Session.CookieDomain = d.Session.CookieDomain
	}
	if c.Session.CookieSource == "" {
		c.Session.CookieSource = d.Session.CookieSource
	}
	if c.Session.DevToolsURL == "" {
		c.Session.DevToolsURL = d.Session.DevToolsURL
	}
	if c.UI.ThemeMode == "" {
		c.UI.ThemeMode = d.UI.ThemeMode
	}
	c.UI.ThemeMode = strings.ToLower(c.UI.ThemeMode)
	if c.UI.ExportDir == "" {
		c.UI.ExportDir = d.UI.ExportDir
	}
	if c.Network.IPLookupURL == "" {
		c.Network.IPLookupURL = d.Network.IPLookupURL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// LoadDotEnv loads .env from the config directory and the working directory.
// Variables already present in the environment win.
func LoadDotEnv() {
	var files []string
	if p, err := DataPath(".env"); err == nil && fileExists(p) {
		files = append(files, p)
	}
	if fileExists(".env") {
		files = append(files, ".env")
	}
	if len(files) > 0 {
		_ = godotenv.Load(files...)
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CROWDASSIST_OPENAI_TOKEN (or OPENAI_API_KEY): overrides openai.token
//   - CROWDASSIST_OPENAI_URL: overrides openai.base_url
//   - CROWDASSIST_THEME: overrides ui.theme_mode
//   - CROWDASSIST_PRIVACY: "1"/"true" enables ui.privacy_mode
//   - CROWDASSIST_AUTO_RENEW: "0"/"false" disables session.auto_renew
//   - CROWDASSIST_COOKIES_FILE: overrides session.cookies_file
//   - CROWDASSIST_LOG_LEVEL: overrides logging.level
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.Token = key
	}
	if key := os.Getenv("CROWDASSIST_OPENAI_TOKEN"); key != "" {
		c.OpenAI.Token = key
	}
	if u := os.Getenv("CROWDASSIST_OPENAI_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}
	if theme := os.Getenv("CROWDASSIST_THEME"); theme != "" {
		c.UI.ThemeMode = theme
	}
	if v := os.Getenv("CROWDASSIST_PRIVACY"); v != "" {
		c.UI.PrivacyMode = ParseBool(v)
	}
	if v := os.Getenv("CROWDASSIST_AUTO_RENEW"); v != "" {
		c.Session.AutoRenew = ParseBool(v)
	}
	if v := os.Getenv("CROWDASSIST_COOKIES_FILE"); v != "" {
		c.Session.CookiesFile = v
	}
	if v := os.Getenv("CROWDASSIST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// ParseBool accepts 1/true/yes/on, case-insensitively.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme_mode").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "session.auto_renew").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.TrimSpace(strVal), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			field.SetBool(ParseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, name, keys)
			continue
		}
		*keys = append(*keys, name)
	}
}

// Diff returns the keys whose values differ between two configurations.
func Diff(old, updated *Config) []string {
	if old == nil || updated == nil {
		return nil
	}
	var changed []string
	for _, key := range GetAllKeys() {
		a, errA := old.Get(key)
		b, errB := updated.Get(key)
		if errA != nil || errB != nil {
			continue
		}
		if !reflect.DeepEqual(a, b) {
			changed = append(changed, key)
		}
	}
	return changed
}

// Clone creates a copy of the configuration. Config holds only value types.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a JSON representation with the token redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.OpenAI.Token != "" {
		safe.OpenAI.Token = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access unless SetGlobal already installed
// one. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		globalConfigMu.Lock()
		defer globalConfigMu.Unlock()
		if globalConfig != nil {
			return
		}
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
