package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Loader reads settings from an optional YAML file, MAGNET_* environment
// variables and explicit overrides, in increasing order of precedence.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu       sync.RWMutex
	usedFile string
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// DefaultPath returns $XDG_CONFIG_HOME/magnet/settings.yaml, falling back to
// ~/.config/magnet/settings.yaml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "magnet", SettingsFile), nil
}

// Load builds the settings. An empty path or a missing file means defaults
// plus environment. Overrides win over every other source; nil values are
// ignored so unset CLI flags do not mask the file.
func (l *Loader) Load(path string, overrides map[string]any) (*Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usedFile = ""

	v := viper.New()
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				var parseErr viper.ConfigParseError
				if errors.As(err, &parseErr) {
					return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, path, err)
				}
				return nil, fmt.Errorf("read settings %s: %w", path, err)
			}
			l.usedFile = path
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat settings %s: %w", path, err)
		} else {
			slog.Debug("settings file not found, using defaults", "path", path)
		}
	}

	for key, value := range overrides {
		if value != nil {
			v.Set(key, value)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}
	normalize(s)

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// UsedFile returns the settings file read by the last Load, or "".
func (l *Loader) UsedFile() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.usedFile
}

func normalize(s *Settings) {
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
	s.GitHost = strings.TrimSpace(s.GitHost)
	if s.GitHost != "" && !strings.HasSuffix(s.GitHost, "/") {
		s.GitHost += "/"
	}
	s.CppVersion = strings.TrimSpace(s.CppVersion)
	s.CmakeVersion = strings.TrimSpace(s.CmakeVersion)
}
