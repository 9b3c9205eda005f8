// Package config loads service settings from a yaml file or the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Upstream   `yaml:"upstream"`
	Directory  `yaml:"directory"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8069"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Upstream tunes the recreation.gov client: politeness limits and how many
// campgrounds one request may resolve in parallel.
type Upstream struct {
	BaseURL           string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-default:"https://www.recreation.gov"`
	Timeout           time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"20s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"UPSTREAM_RPS" env-default:"2"`
	Burst             int           `yaml:"burst" env:"UPSTREAM_BURST" env-default:"4"`
	MaxParallel       int           `yaml:"max_parallel" env:"UPSTREAM_MAX_PARALLEL" env-default:"4"`
}

// Directory configures the campground roster. Campgrounds is yaml-only; when
// empty the built-in roster applies. RefreshSchedule is a cron expression,
// empty disables the name refresh.
type Directory struct {
	Campgrounds     []Campground `yaml:"campgrounds"`
	RefreshSchedule string       `yaml:"refresh_schedule" env:"DIRECTORY_REFRESH_SCHEDULE" env-default:""`
}

type Campground struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// MustLoad reads CONFIG_PATH as yaml when set, otherwise falls back to the
// environment. It exits on an unreadable config; there is no sane way to
// serve without one.
func MustLoad() *Config {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Fatalf("config file %s does not exist", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Fatalf("cannot read config %s: %s", path, err)
		}
		return &cfg
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}
