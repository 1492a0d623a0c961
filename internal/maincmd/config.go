package maincmd

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the transport-layer defaults the "run" command falls back
// to when the corresponding CLI flag is absent: ServerURL backs --url,
// and Verbose gates extra round-by-round diagnostics on stdout. The core
// packages (lang/*, driver) take no environment variables; only this
// collaborator does, layered under whatever mainer already parsed from
// the CLI — a flag that was set always wins over its env var.
type Config struct {
	ServerURL      string        `env:"GALAXY_SERVER_URL"`
	RequestTimeout time.Duration `env:"GALAXY_REQUEST_TIMEOUT" envDefault:"30s"`
	RetryBackoff   time.Duration `env:"GALAXY_RETRY_BACKOFF" envDefault:"1s"`
	Verbose        bool          `env:"GALAXY_VERBOSE" envDefault:"false"`
}

// loadConfig parses environment variables into a Config. CLI flags that
// were explicitly set always take precedence over the values returned
// here; callers overlay them after calling this.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
