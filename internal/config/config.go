package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	API    APIConfig    `mapstructure:"api"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Battle BattleConfig `mapstructure:"battle"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
	Server ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	MaxParallel    int           `mapstructure:"max_parallel"`
}

type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
	GCInterval    time.Duration `mapstructure:"gc_interval"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type BattleConfig struct {
	DisplayDelay time.Duration `mapstructure:"display_delay"`
	AIDelay      time.Duration `mapstructure:"ai_delay"`
	Seed         uint64        `mapstructure:"seed"` // 0 = seed from the clock
}

type QuizConfig struct {
	AdvanceDelay time.Duration `mapstructure:"advance_delay"`
}

type ServerConfig struct {
	Addr  string `mapstructure:"addr"`
	Debug bool   `mapstructure:"debug"`
	// SessionIdleTTL evicts a battle nobody has touched for this long.
	SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.debug", false)

	v.SetDefault("api.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.rate_limit_rps", 20)
	v.SetDefault("api.rate_limit_burst", 10)
	v.SetDefault("api.max_parallel", 6)

	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.gc_interval", "30s")

	v.SetDefault("store.path", "pokeref.db")

	v.SetDefault("battle.display_delay", "600ms")
	v.SetDefault("battle.ai_delay", "800ms")
	v.SetDefault("battle.seed", 0)

	v.SetDefault("quiz.advance_delay", "2s")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.session_idle_ttl", "10m")
}

// Load reads config from the given YAML file path. An empty path skips the
// file and uses defaults plus POKEREF_* environment overrides.
func Load(path string) (*Config, error) {
	return LoadWithFlags(path, nil)
}

// LoadWithFlags is Load with command line flags layered on top. Flag names
// use the same dotted keys as the file (e.g. --store.path).
func LoadWithFlags(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("POKEREF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
