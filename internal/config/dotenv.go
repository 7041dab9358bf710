package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultTotalRounds is the round count sent with every createGame call.
// Placeholder until games carry their own round setting.
const DefaultTotalRounds = 2

// LegacyEndedGameID is the archive id the first web client pinned for every
// ended-game lookup. Only used when PinLegacyEndedGame is set.
const LegacyEndedGameID = "c5711edd5aac63d93761ca8755ba8ea5"

const (
	CredentialStoreMemory   = "memory"
	CredentialStoreFile     = "file"
	CredentialStorePostgres = "postgres"
	CredentialStoreRedis    = "redis"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	ServerURL          string
	AuthURL            string
	DefaultTotalRounds int
	RequestTimeout     time.Duration
	PinLegacyEndedGame bool
	CredentialStore    string
	CredentialFile     string
	Profile            string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	UIAddr             string
	Verbose            bool
}

func Default() Config {
	return Config{
		ServerURL:          "http://lab-ts:9119",
		AuthURL:            "https://host.zzimm.com",
		DefaultTotalRounds: DefaultTotalRounds,
		RequestTimeout:     10 * time.Second,
		CredentialStore:    CredentialStoreMemory,
		CredentialFile:     defaultCredentialFile(),
		Profile:            "default",
		RedisAddr:          "localhost:6379",
		UIAddr:             "127.0.0.1:8080",
	}
}

// NewViper returns a viper instance reading TELEGRAPH_* variables and an
// optional telegraph.yaml from the working directory.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TELEGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName("telegraph")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.BindEnv("database-url", "DATABASE_URL")
	_ = v.BindEnv("redis-addr", "REDIS_ADDR", "TELEGRAPH_REDIS_ADDR")
	_ = v.BindEnv("redis-password", "REDIS_PASSWORD", "TELEGRAPH_REDIS_PASSWORD")
	return v
}

// Load reads the configuration from v, falling back to Default for unset keys.
func Load(v *viper.Viper) Config {
	cfg := Default()
	if v == nil {
		return cfg
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config file ignored error=%v", err)
		}
	}
	if raw := strings.TrimSpace(v.GetString("server-url")); raw != "" {
		cfg.ServerURL = strings.TrimSuffix(raw, "/")
	}
	if raw := strings.TrimSpace(v.GetString("auth-url")); raw != "" {
		cfg.AuthURL = strings.TrimSuffix(raw, "/")
	}
	if v.IsSet("default-total-rounds") {
		if value := v.GetInt("default-total-rounds"); value > 0 {
			cfg.DefaultTotalRounds = value
		}
	}
	if v.IsSet("request-timeout") {
		if value := v.GetDuration("request-timeout"); value > 0 {
			cfg.RequestTimeout = value
		}
	}
	if v.IsSet("pin-legacy-ended-game") {
		cfg.PinLegacyEndedGame = v.GetBool("pin-legacy-ended-game")
	}
	if raw := strings.ToLower(strings.TrimSpace(v.GetString("credential-store"))); raw != "" {
		cfg.CredentialStore = raw
	}
	if raw := strings.TrimSpace(v.GetString("credential-file")); raw != "" {
		cfg.CredentialFile = raw
	}
	if raw := strings.TrimSpace(v.GetString("profile")); raw != "" {
		cfg.Profile = raw
	}
	if raw := strings.TrimSpace(v.GetString("database-url")); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := strings.TrimSpace(v.GetString("redis-addr")); raw != "" {
		cfg.RedisAddr = raw
	}
	if raw := v.GetString("redis-password"); raw != "" {
		cfg.RedisPassword = raw
	}
	if raw := strings.TrimSpace(v.GetString("ui-addr")); raw != "" {
		cfg.UIAddr = raw
	}
	if v.IsSet("verbose") {
		cfg.Verbose = v.GetBool("verbose")
	}
	return cfg
}

// EndedGameID picks the id used for the ended-game lookup.
func (c Config) EndedGameID(resolved string) string {
	if c.PinLegacyEndedGame {
		return LegacyEndedGameID
	}
	return resolved
}

func defaultCredentialFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".telegraph-credential"
	}
	return filepath.Join(dir, "telegraph", "credential")
}
