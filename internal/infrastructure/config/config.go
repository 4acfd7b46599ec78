// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/samber/lo"
	"github.com/tesso57/subsy/internal/application/settings"
	"gopkg.in/yaml.v3"
)

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "subsy", "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	store := &Store{Settings: cfg, configPath: configPath}

	var options []kong.Option
	if _, err := os.Stat(configPath); err == nil {
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err = parser.Parse([]string{}); err != nil {
		return nil, err
	}

	store.Settings = cfg
	store.Settings.DBFile = strings.TrimSpace(store.Settings.DBFile)
	store.Settings.Locale = normalizeLocale(store.Settings.Locale)
	if store.Settings.DBFile == "" {
		store.Settings.DBFile = filepath.Join(defaultDataHome(), "subsy", "subsy.db")
	}
	if store.Settings.ExportFile == "" {
		store.Settings.ExportFile = filepath.Join(defaultDataHome(), "subsy", "subscriptions.opml")
	}

	if err := validateKeyMap(store.Settings.KeyMap); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return store, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.configPath
}

// validateKeyMap rejects a key bound to two actions.
func validateKeyMap(k settings.KeyMapConfig) error {
	keys := []string{
		k.Up, k.Down, k.Open, k.Back, k.Quit, k.Filter, k.ToggleGroup, k.DeleteFeed,
		k.Rename, k.MoveGroup, k.NewGroup, k.ToggleNotify, k.ToggleFull, k.Export, k.Top, k.Bottom,
	}
	if dup := lo.FindDuplicates(lo.Compact(keys)); len(dup) > 0 {
		return fmt.Errorf("keymap: %s bound to more than one action", strings.Join(dup, ", "))
	}
	return nil
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return "en"
	}
	return locale
}

func defaultDataHome() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}
			if v, ok := lookupNested(values, strings.Split(name, ".")); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

func lookupNested(values map[string]any, parts []string) (any, bool) {
	if len(parts) < 2 {
		return nil, false
	}
	curr := values
	for i, part := range parts {
		if i == len(parts)-1 {
			v, ok := curr[part]
			return v, ok
		}
		next, ok := curr[part].(map[string]any)
		if !ok {
			return nil, false
		}
		curr = next
	}
	return nil, false
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(s.Settings)
}
