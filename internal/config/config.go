package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
}

type AppSubConfig struct {
	PageSize int `mapstructure:"page_size"`
	// LedgerStore selects the asset ledger persistence backend: "sqlite"
	// (shared application database) or "memory" (process lifetime only).
	LedgerStore string `mapstructure:"ledger_store"`
	// TagRegistry is the fixed registry key prefixed to every tag number,
	// e.g. "WERK" yields tags like WERK-LT-042.
	TagRegistry string `mapstructure:"tag_registry"`
	// UsernameOrg is the organisation suffix for generated staff usernames,
	// e.g. "werk" yields JS.assets@werk.
	UsernameOrg string `mapstructure:"username_org"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Admin    AdminConfig    `mapstructure:"admin"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. ATS_SERVER_PORT=9000
		v.SetEnvPrefix("ATS") // asset tracking system
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		applyDefaults(&c)
		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

func applyDefaults(c *Config) {
	if c.Security.BcryptCost == 0 {
		c.Security.BcryptCost = 10
	}
	if c.App.PageSize == 0 {
		c.App.PageSize = 20
	}
	if c.App.LedgerStore == "" {
		c.App.LedgerStore = "sqlite"
	}
	if c.App.TagRegistry == "" {
		c.App.TagRegistry = "WERK"
	}
	if c.App.UsernameOrg == "" {
		c.App.UsernameOrg = "werk"
	}
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
