package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/rpattn/medallion/internal/db"
	"github.com/rpattn/medallion/internal/logger"
)

// Config is the full pipeline configuration.
type Config struct {
	Database db.Config
	Log      logger.Config
	Pipeline PipelineConfig
}

// PipelineConfig holds run-level settings.
type PipelineConfig struct {
	MigrationsPath string
	ChecksPath     string
	MetricsAddr    string // empty disables the metrics listener
}

// Load reads config.yaml from configPath with environment overrides
// (DW_DATABASE_HOST and friends). A missing file is not an error; defaults
// plus environment values apply.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Log:      logger.DefaultConfig(),
		Pipeline: PipelineConfig{
			MigrationsPath: "./migrations",
			ChecksPath:     "./checks.yaml",
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("DW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("log.level")
	v.BindEnv("log.format")
	v.BindEnv("pipeline.migrations_path")
	v.BindEnv("pipeline.checks_path")
	v.BindEnv("pipeline.metrics_addr")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, err
		}
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.Log.Format = v.GetString("log.format")
	}
	if v.IsSet("pipeline.migrations_path") {
		cfg.Pipeline.MigrationsPath = v.GetString("pipeline.migrations_path")
	}
	if v.IsSet("pipeline.checks_path") {
		cfg.Pipeline.ChecksPath = v.GetString("pipeline.checks_path")
	}
	if v.IsSet("pipeline.metrics_addr") {
		cfg.Pipeline.MetricsAddr = v.GetString("pipeline.metrics_addr")
	}

	return cfg, nil
}
