package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"localtrack/internal/logger"
	"localtrack/internal/models"
)

type ServerConfig struct {
	Address      string   `mapstructure:"address"`
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type BackupConfig struct {
	Dir        string `mapstructure:"dir"`
	Passphrase string `mapstructure:"passphrase"`
}

// VehicleConfig carries the user's app settings consumed by the calculators.
type VehicleConfig struct {
	PetrolRate   float64 `mapstructure:"petrol_rate"`
	Mileage      float64 `mapstructure:"mileage"`
	TankCapacity float64 `mapstructure:"tank_capacity"`
	Theme        string  `mapstructure:"theme"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Vehicle  VehicleConfig  `mapstructure:"vehicle"`
}

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, "config.yaml" in the working directory is used when it
// exists; a missing default file is not an error and defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. LOCALTRACK_SERVER_PORT=9000
	v.SetEnvPrefix("LOCALTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	def := models.DefaultSettings()

	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("database.path", "data/localtrack.db")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("backup.dir", "data/backups")
	v.SetDefault("backup.passphrase", "")
	v.SetDefault("vehicle.petrol_rate", def.PetrolRate)
	v.SetDefault("vehicle.mileage", def.Mileage)
	v.SetDefault("vehicle.tank_capacity", def.TankCapacity)
	v.SetDefault("vehicle.theme", string(def.Theme))
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if len(c.Server.AllowOrigins) == 0 {
		return fmt.Errorf("server.allow_origins must list at least one origin")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Vehicle.PetrolRate < 0 {
		return fmt.Errorf("vehicle.petrol_rate must not be negative")
	}
	if c.Vehicle.Mileage < 0 {
		return fmt.Errorf("vehicle.mileage must not be negative")
	}
	if c.Vehicle.TankCapacity < 0 {
		return fmt.Errorf("vehicle.tank_capacity must not be negative")
	}
	if !models.Theme(c.Vehicle.Theme).Valid() {
		return fmt.Errorf("vehicle.theme must be light, dark or system, got %q", c.Vehicle.Theme)
	}
	return nil
}

// Settings returns the vehicle section as the calculators' settings value.
func (c *Config) Settings() models.AppSettings {
	return models.AppSettings{
		PetrolRate:   c.Vehicle.PetrolRate,
		Mileage:      c.Vehicle.Mileage,
		TankCapacity: c.Vehicle.TankCapacity,
		Theme:        models.Theme(c.Vehicle.Theme),
	}
}

// LoggerConfig returns the logger configuration from the main config.
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: c.Log.Output,
	}
}
