package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-htmlinline/internal/fileutil"
	"github.com/alnah/go-htmlinline/internal/hints"
	"github.com/alnah/go-htmlinline/internal/logging"
	"github.com/alnah/go-htmlinline/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxExtensionLength     = 32   // "webmanifest"
	MaxMIMETypeLength      = 255  // RFC 6838
	MaxAttributeNameLength = 64   // "crossorigin", "data-*"
	MaxDropAttributes      = 32   // scripts.dropAttributes entries
	MaxMIMETypes           = 256  // mimeTypes entries
	MaxTimeoutLength       = 32   // "1m30s"
	MaxConcurrency         = 64   // remote.concurrency
	MaxFetchBytes          = 1 << 30
)

// Defaults applied by DefaultConfig.
const (
	DefaultFetchTimeout  = 30 * time.Second
	DefaultMaxFetchBytes = 10 << 20
	DefaultConcurrency   = 4
)

// Config holds all configuration for inlining.
type Config struct {
	Scripts   ScriptsConfig     `yaml:"scripts"`
	Styles    StylesConfig      `yaml:"styles"`
	MIMETypes map[string]string `yaml:"mimeTypes"` // extension -> mime type, merged over the built-in table
	Remote    RemoteConfig      `yaml:"remote"`
	Log       LogConfig         `yaml:"log"`
}

// ScriptsConfig controls script[src] inlining.
type ScriptsConfig struct {
	RewriteRegexLiterals bool     `yaml:"rewriteRegexLiterals"`
	DropAttributes       []string `yaml:"dropAttributes"` // removed from inlined scripts besides src
}

// StylesConfig controls stylesheet and style block handling.
type StylesConfig struct {
	RewriteURLs bool `yaml:"rewriteURLs"`
	Minify      bool `yaml:"minify"`
}

// RemoteConfig controls fetching of http(s) references.
type RemoteConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Timeout     string `yaml:"timeout"`     // Go duration, e.g. "30s"
	MaxBytes    int64  `yaml:"maxBytes"`    // per asset, 0 = default
	Concurrency int    `yaml:"concurrency"` // url() loads in flight per style block, local files included; 0 = default
}

// LogConfig sets the logger level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// FetchTimeout returns the parsed remote timeout, or DefaultFetchTimeout when
// unset. Validate rejects values this cannot parse.
func (r RemoteConfig) FetchTimeout() time.Duration {
	if r.Timeout == "" {
		return DefaultFetchTimeout
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return DefaultFetchTimeout
	}
	return d
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Validate scripts fields
	if len(c.Scripts.DropAttributes) > MaxDropAttributes {
		return fmt.Errorf("%w: scripts.dropAttributes has %d entries (max %d)",
			ErrInvalidField, len(c.Scripts.DropAttributes), MaxDropAttributes)
	}
	for i, attr := range c.Scripts.DropAttributes {
		field := fmt.Sprintf("scripts.dropAttributes[%d]", i)
		if err := validateFieldLength(field, attr, MaxAttributeNameLength); err != nil {
			return err
		}
		if strings.TrimSpace(attr) == "" {
			return fmt.Errorf("%w: %s: empty attribute name", ErrInvalidField, field)
		}
		if strings.EqualFold(strings.TrimSpace(attr), "type") {
			return fmt.Errorf("%w: %s: type cannot be dropped", ErrInvalidField, field)
		}
	}

	// Validate mime types
	if len(c.MIMETypes) > MaxMIMETypes {
		return fmt.Errorf("%w: mimeTypes has %d entries (max %d)", ErrInvalidField, len(c.MIMETypes), MaxMIMETypes)
	}
	for ext, mimeType := range c.MIMETypes {
		field := "mimeTypes." + ext
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if err := validateFieldLength(field, mimeType, MaxMIMETypeLength); err != nil {
			return err
		}
		if strings.Trim(ext, ". ") == "" || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("%w: %s: invalid extension", ErrInvalidField, field)
		}
		if !validMIMEType(mimeType) {
			return fmt.Errorf("%w: %s: invalid mime type %q", ErrInvalidField, field, mimeType)
		}
	}

	// Validate remote fields
	if err := validateFieldLength("remote.timeout", c.Remote.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if c.Remote.Timeout != "" {
		d, err := time.ParseDuration(c.Remote.Timeout)
		if err != nil {
			return fmt.Errorf("%w: remote.timeout: %v", ErrInvalidField, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: remote.timeout: must be positive, got %s", ErrInvalidField, c.Remote.Timeout)
		}
	}
	if c.Remote.MaxBytes < 0 || c.Remote.MaxBytes > MaxFetchBytes {
		return fmt.Errorf("%w: remote.maxBytes: must be between 0 and %d, got %d",
			ErrInvalidField, MaxFetchBytes, c.Remote.MaxBytes)
	}
	if c.Remote.Concurrency < 0 || c.Remote.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: remote.concurrency: must be between 0 and %d, got %d",
			ErrInvalidField, MaxConcurrency, c.Remote.Concurrency)
	}

	// Validate log fields
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level: invalid value %q (must be debug, info, warn, or error)",
			ErrInvalidField, c.Log.Level)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validMIMEType accepts "type/subtype" without spaces or quotes.
func validMIMEType(s string) bool {
	typ, sub, ok := strings.Cut(s, "/")
	return ok && typ != "" && sub != "" && !strings.ContainsAny(s, " \t\"'<>")
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() *Config {
	return &Config{
		Scripts: ScriptsConfig{
			RewriteRegexLiterals: true,
			DropAttributes:       []string{"defer"},
		},
		Styles: StylesConfig{RewriteURLs: true, Minify: false},
		Remote: RemoteConfig{
			Enabled:     false,
			Timeout:     DefaultFetchTimeout.String(),
			MaxBytes:    DefaultMaxFetchBytes,
			Concurrency: DefaultConcurrency,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-htmlinline/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-htmlinline", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound,
		strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
