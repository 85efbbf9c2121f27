package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client configures the session manager side: where the auth API lives and
// where the session file is kept.
type Client struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"https://frontend-test-be.stage.thinkeasy.cz"`
	SessionFile    string        `env:"SESSION_FILE"` // empty selects the default under the home directory
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Server configures the reference blog API server.
type Server struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	AppName            string        `env:"APP_NAME" envDefault:"Blog Auth API"`
	Env                string        `env:"ENV" envDefault:"DEV"`
	TokenSecret        string        `env:"TOKEN_SECRET"`
	TokenIssuer        string        `env:"TOKEN_ISSUER" envDefault:"go-auth-client"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15m"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"720h"`
	AuthRatePerSecond  float64       `env:"AUTH_RATE_PER_SECOND" envDefault:"5"`
	AuthRateBurst      int           `env:"AUTH_RATE_BURST" envDefault:"10"`
}

// Addr returns the listen address for http.Server.
func (s Server) Addr() string {
	if strings.HasPrefix(s.Port, ":") {
		return s.Port
	}
	return fmt.Sprintf(":%s", s.Port)
}

// LoadClient parses the client configuration from the environment.
func LoadClient() (Client, error) {
	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return Client{}, fmt.Errorf("[config.LoadClient] parse environment: %w", err)
	}
	return cfg, nil
}

// LoadServer parses the server configuration from the environment.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("[config.LoadServer] parse environment: %w", err)
	}
	if cfg.TokenSecret == "" {
		return Server{}, fmt.Errorf("[config.LoadServer] TOKEN_SECRET is required")
	}
	return cfg, nil
}
