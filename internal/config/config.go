package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig locates the data directory and the library state files
// inside it.
type StorageConfig struct {
	DataDir    string `mapstructure:"dataDir" validate:"required"`
	LegacyFile string `mapstructure:"legacyFile"`
}

// BackupConfig controls plain file-copy backups taken before each save.
type BackupConfig struct {
	Dir       string `mapstructure:"dir"`
	Retention int    `mapstructure:"retention" validate:"required|min:1"`
}

// ArchiveConfig controls user-initiated state archives.
type ArchiveConfig struct {
	Dir       string `mapstructure:"dir"`
	Retention int    `mapstructure:"retention" validate:"required|min:1"`
	Compress  bool   `mapstructure:"compress"`
}

// TimeConfig controls network time correction for code generation.
type TimeConfig struct {
	Source       string        `mapstructure:"source" validate:"required|fullUrl"`
	SyncInterval time.Duration `mapstructure:"syncInterval" validate:"required|min:1"`
}

// LoggerConfig controls structured logging.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:debug,info,warn,error"`
}

type Config struct {
	Language string        `mapstructure:"language"`
	Storage  StorageConfig `mapstructure:"storage"`
	Backup   BackupConfig  `mapstructure:"backup"`
	Archive  ArchiveConfig `mapstructure:"archive"`
	Time     TimeConfig    `mapstructure:"time"`
	Logger   LoggerConfig  `mapstructure:"logger"`
}

// DefaultPath is where Load looks when no config path is given.
func DefaultPath() string {
	return ExpandPath("~/.gaccman/config.yaml")
}

// ExpandPath resolves a leading ~/ against the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the YAML file at path, layering
// environment overrides over defaults. A missing file is not an error;
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	path = ExpandPath(path)
	filename := filepath.Base(path)
	v.AddConfigPath(filepath.Dir(path))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)

	v.BindEnv("logger.level", "GACCMAN_LOG_LEVEL")
	v.BindEnv("language", "GACCMAN_LANGUAGE")
	v.BindEnv("storage.dataDir", "GACCMAN_DATA_DIR")
	v.BindEnv("time.source", "GACCMAN_TIME_SOURCE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.Storage.DataDir = ExpandPath(conf.Storage.DataDir)
	applyDerived(&conf)

	if err := NewValidator(&conf).Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("storage.dataDir", "~/.gaccman/data")
	v.SetDefault("backup.retention", 10)
	v.SetDefault("archive.retention", 50)
	v.SetDefault("archive.compress", false)
	v.SetDefault("time.source", "https://www.google.com")
	v.SetDefault("time.syncInterval", time.Hour)
	v.SetDefault("logger.level", "info")
}

// applyDerived resolves paths left empty relative to the data directory.
func applyDerived(conf *Config) {
	if conf.Backup.Dir == "" {
		conf.Backup.Dir = filepath.Join(conf.Storage.DataDir, "backups")
	}
	if conf.Archive.Dir == "" {
		conf.Archive.Dir = filepath.Join(conf.Storage.DataDir, "archives")
	}
	if conf.Storage.LegacyFile == "" {
		conf.Storage.LegacyFile = filepath.Join(conf.Storage.DataDir, "2fa_data.json")
	}
}
