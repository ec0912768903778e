package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Server   Server        `yaml:"server"`
	Fixtures []FixtureUser `yaml:"fixtures"`
}

type Server struct {
	ListenAddr    string        `yaml:"listenAddr"`
	PostgresDsn   string        `yaml:"postgresDsn"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisDB       int           `yaml:"redisDB"`
	MemcachedAddr string        `yaml:"memcachedAddr"`
	CacheBackend  string        `yaml:"cacheBackend"` // memory, redis, memcached, none
	CacheTTL      time.Duration `yaml:"cacheTTL"`
	EnableTrace   bool          `yaml:"enableTrace"`
	TraceEndpoint string        `yaml:"traceEndpoint"`
	RateLimit     float64       `yaml:"rateLimit"` // requests per second, 0 disables
}

// FixtureUser seeds the store when no database is configured.
// Password is plain text here and hashed on load.
type FixtureUser struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Groups   []string `yaml:"groups"`
}

const (
	CacheMemory    = "memory"
	CacheRedis     = "redis"
	CacheMemcached = "memcached"
	CacheNone      = "none"
)

func Default() Config {
	return Config{
		Server: Server{
			ListenAddr:   ":3000",
			CacheBackend: CacheMemory,
			CacheTTL:     time.Minute,
		},
		Fixtures: []FixtureUser{
			{
				Name:     "tibertra",
				Email:    "timothe.bertrand@uca.fr",
				Password: "tibertra",
				Groups:   []string{"admin"},
			},
		},
	}
}

// Load reads path on top of Default. Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Default()
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	switch c.Server.CacheBackend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Server.RedisAddr == "" {
			return errors.New("cacheBackend redis requires redisAddr")
		}
	case CacheMemcached:
		if c.Server.MemcachedAddr == "" {
			return errors.New("cacheBackend memcached requires memcachedAddr")
		}
	default:
		return errors.Errorf("unknown cacheBackend %q", c.Server.CacheBackend)
	}

	if c.Server.CacheTTL < 0 {
		return errors.New("cacheTTL must not be negative")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("rateLimit must not be negative")
	}
	if c.Server.EnableTrace && c.Server.TraceEndpoint == "" {
		return errors.New("enableTrace requires traceEndpoint")
	}

	return nil
}
