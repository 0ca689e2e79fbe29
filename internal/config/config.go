// Package config handles loading tkan.toml configuration files.
//
// Configuration resolves in layers: built-in defaults, then the global
// config file, then a per-directory .tkan.toml, then TKAN_* environment
// variables. Later layers win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/tkanlabs/tkan/internal/paths"
)

// DefaultDeadlineWarningDays is how many days ahead a deadline starts
// being highlighted as due soon.
const DefaultDeadlineWarningDays = 3

const envNamespace = "TKAN"

// Config represents the tkan.toml configuration file.
type Config struct {
	Tasks Tasks `toml:"tasks"`
	Board Board `toml:"board"`
}

// Tasks contains storage and creation defaults.
type Tasks struct {
	// File is the path of the tasks file. Defaults to tasks.jsonl in the
	// tkan data directory.
	File string `toml:"file"`

	// DefaultPriority seeds tasks created without a priority.
	DefaultPriority string `toml:"default-priority"`

	// DefaultStatus seeds tasks created without a status.
	DefaultStatus string `toml:"default-status"`
}

// Board contains display configuration.
type Board struct {
	// DeadlineWarningDays controls how close a deadline must be before it
	// is highlighted as due soon.
	DeadlineWarningDays int `toml:"deadline-warning-days"`
}

// envOverrides are the TKAN_* environment variables layered on top of the
// config files.
type envOverrides struct {
	DataDir             string `envconfig:"DATA_DIR"`
	TasksFile           string `envconfig:"TASKS_FILE"`
	DefaultPriority     string `envconfig:"DEFAULT_PRIORITY"`
	DefaultStatus       string `envconfig:"DEFAULT_STATUS"`
	DeadlineWarningDays int    `envconfig:"DEADLINE_WARNING_DAYS"`
}

// Load loads configuration for a board used from dir.
// Missing config files are not an error; the zero layers just fall through
// to the defaults.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	localCfg, localMeta, err := loadConfigFile(filepath.Join(dir, ".tkan.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, localCfg, globalMeta, localMeta)

	var env envOverrides
	if err := envconfig.Process(envNamespace, &env); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	applyEnv(merged, env)

	if err := fillDefaults(merged, env.DataDir); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	configDir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tkan.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, localCfg *Config, globalMeta, localMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if localCfg == nil {
		localCfg = &Config{}
	}

	merged := Config{}
	merged.Tasks.File = mergeString(localMeta.IsDefined("tasks", "file"), localCfg.Tasks.File, globalCfg.Tasks.File)
	merged.Tasks.DefaultPriority = mergeString(localMeta.IsDefined("tasks", "default-priority"), localCfg.Tasks.DefaultPriority, globalCfg.Tasks.DefaultPriority)
	merged.Tasks.DefaultStatus = mergeString(localMeta.IsDefined("tasks", "default-status"), localCfg.Tasks.DefaultStatus, globalCfg.Tasks.DefaultStatus)
	if localMeta.IsDefined("board", "deadline-warning-days") {
		merged.Board.DeadlineWarningDays = localCfg.Board.DeadlineWarningDays
	} else if globalMeta.IsDefined("board", "deadline-warning-days") {
		merged.Board.DeadlineWarningDays = globalCfg.Board.DeadlineWarningDays
	}

	return &merged
}

func mergeString(localDefined bool, localValue, globalValue string) string {
	value := globalValue
	if localDefined {
		value = localValue
	}
	return strings.TrimSpace(value)
}

func applyEnv(cfg *Config, env envOverrides) {
	if env.TasksFile != "" {
		cfg.Tasks.File = env.TasksFile
	}
	if env.DefaultPriority != "" {
		cfg.Tasks.DefaultPriority = env.DefaultPriority
	}
	if env.DefaultStatus != "" {
		cfg.Tasks.DefaultStatus = env.DefaultStatus
	}
	if env.DeadlineWarningDays > 0 {
		cfg.Board.DeadlineWarningDays = env.DeadlineWarningDays
	}
}

func fillDefaults(cfg *Config, dataDirOverride string) error {
	if cfg.Tasks.File == "" {
		dataDir, err := paths.ResolveWithDefault(dataDirOverride, paths.DefaultDataDir)
		if err != nil {
			return err
		}
		cfg.Tasks.File = filepath.Join(dataDir, "tasks.jsonl")
	} else {
		cfg.Tasks.File = paths.ExpandHome(cfg.Tasks.File)
	}

	if cfg.Board.DeadlineWarningDays <= 0 {
		cfg.Board.DeadlineWarningDays = DefaultDeadlineWarningDays
	}
	return nil
}
