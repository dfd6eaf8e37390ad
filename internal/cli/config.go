package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addrbook/internal/paths"
	"github.com/mesh-intelligence/addrbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeySnapshot = "snapshot"
	cfgKeyLogLevel = "log_level"

	defaultBackend  = types.BackendJSONL
	defaultLogLevel = "warn"
)

// errConfig marks failures to resolve or read configuration.
var errConfig = errors.New("configuration error")

// configFile holds the structure written to config.yaml on first run.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	Snapshot string `yaml:"snapshot,omitempty"`
	LogLevel string `yaml:"log_level"`
}

// setup resolves directories, loads config.yaml, builds the logger, and
// fills a.cfg. It runs before every subcommand except version.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("%w: resolve config dir: %w", errConfig, err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	a.logger, err = a.buildLogger(v.GetString(cfgKeyLogLevel), a.flags.verbose)
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("%w: resolve data dir: %w", errConfig, err)
	}

	a.cfg = types.Config{
		Backend:  firstNonEmpty(a.flags.backend, v.GetString(cfgKeyBackend)),
		DataDir:  dataDir,
		Snapshot: firstNonEmpty(a.flags.snapshot, v.GetString(cfgKeySnapshot)),
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: backend %q: %w", errConfig, a.cfg.Backend, err)
	}

	a.logger.Debug("configuration resolved",
		zap.String("config_dir", configDir),
		zap.String("backend", a.cfg.Backend),
		zap.String("data_dir", a.cfg.DataDir),
		zap.String("snapshot", a.cfg.SnapshotName()),
	)
	return nil
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		Backend:  defaultBackend,
		LogLevel: defaultLogLevel,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
