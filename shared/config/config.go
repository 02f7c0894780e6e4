package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port     string `yaml:"port"`
	Storage  string `yaml:"storage"` // "postgres" or "redis"
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	ListThreadLimit int `yaml:"list_thread_limit"` // threads shown in board listing
	ListReplyLimit  int `yaml:"list_reply_limit"`  // last replies shown per thread in board listing
	MaxTextLength   int `yaml:"max_text_length"`   // in runes

	HashDeletePasswords bool `yaml:"hash_delete_passwords"` // bcrypt instead of plaintext

	AllowedOrigins []string  `yaml:"allowed_origins"`
	HTTPS          bool      `yaml:"https"` // adds HSTS
	RateLimit      RateLimit `yaml:"rate_limit"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RateLimit applies per client IP to mutating endpoints. Rps 0 disables it.
type RateLimit struct {
	Rps   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Private struct {
	Pg    Pg    `yaml:"pg"`
	Redis Redis `yaml:"redis"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
	Dsn      string `yaml:"dsn"` // takes precedence over the fields above
}

// ConnString returns a lib/pq connection string.
func (p Pg) ConnString() string {
	if p.Dsn != "" {
		return p.Dsn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Dbname)
}

type Redis struct {
	Url string `yaml:"url"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, then
// applies .env and environment overrides and fills defaults.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{public, private}
	cfg.applyEnv()
	cfg.applyDefaults(mustLoadListLimits(path.Join(configFolder, "public.yaml")))
	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Public.Port = v
	}
	if v := os.Getenv("STORAGE"); v != "" {
		c.Public.Storage = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Public.LogLevel = v
	}
	if v := os.Getenv("DB"); v != "" {
		c.Private.Pg.Dsn = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Private.Redis.Url = v
	}
	if v := os.Getenv("HASH_DELETE_PASSWORDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Public.HashDeletePasswords = b
		}
	}
}

// listLimits tells an explicit zero apart from a missing key.
type listLimits struct {
	ListThreadLimit *int `yaml:"list_thread_limit"`
	ListReplyLimit  *int `yaml:"list_reply_limit"`
}

func mustLoadListLimits(configPath string) listLimits {
	var limits listLimits
	mustLoadPath(configPath, &limits)
	return limits
}

func (c *Config) applyDefaults(limits listLimits) {
	p := &c.Public
	if p.Port == "" {
		p.Port = "3000"
	}
	if p.Storage == "" {
		p.Storage = StoragePostgres
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if limits.ListThreadLimit == nil {
		p.ListThreadLimit = 10
	}
	if limits.ListReplyLimit == nil {
		p.ListReplyLimit = 3
	}
	if p.MaxTextLength == 0 {
		p.MaxTextLength = 10000
	}
	if len(p.AllowedOrigins) == 0 {
		p.AllowedOrigins = []string{"*"}
	}
	if p.ReadTimeout == 0 {
		p.ReadTimeout = 10 * time.Second
	}
	if p.WriteTimeout == 0 {
		p.WriteTimeout = 10 * time.Second
	}
	if p.ShutdownTimeout == 0 {
		p.ShutdownTimeout = 10 * time.Second
	}
}

func (c *Config) validate() error {
	switch c.Public.Storage {
	case StoragePostgres:
		if c.Private.Pg.Dsn == "" && c.Private.Pg.Host == "" {
			return fmt.Errorf("pg.host or pg.dsn is required for postgres storage")
		}
	case StorageRedis:
		if c.Private.Redis.Url == "" {
			return fmt.Errorf("redis.url is required for redis storage")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Public.Storage)
	}
	if c.Public.ListThreadLimit < 0 || c.Public.ListReplyLimit < 0 {
		return fmt.Errorf("list limits must be positive")
	}
	if c.Public.MaxTextLength < 0 {
		return fmt.Errorf("max_text_length must be positive")
	}
	if c.Public.RateLimit.Rps < 0 || c.Public.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must be positive")
	}
	return nil
}
