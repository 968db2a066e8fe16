package mcp

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// config holds all settings for the MCP server. DIXA_API_KEY is deliberately
// absent: the client reads it on every tool call.
type config struct {
	DixaBaseURL    string        `envconfig:"DIXA_BASE_URL" default:"https://dev.dixa.io"`
	DixaTimeout    time.Duration `envconfig:"DIXA_HTTP_TIMEOUT" default:"30s"`
	DixaMaxRetries int           `envconfig:"DIXA_MAX_RETRIES" default:"2"`

	RawLogLevel string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string        `envconfig:"LOG_FORMAT" default:"console"`
	LogLevel    zerolog.Level `ignored:"true"`

	ServerName      string        `envconfig:"MCP_SERVER_NAME" default:"dixa-mcp-server"`
	ServerVersion   string        `envconfig:"MCP_SERVER_VERSION" default:"0.1.0"`
	HTTPAddr        string        `envconfig:"MCP_HTTP_ADDR" default:":8000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	HeartbeatPeriod time.Duration `envconfig:"MCP_HEARTBEAT_INTERVAL" default:"30s"`
}

// loadConfig loads configuration from environment variables, then lets
// command line flags override them.
func loadConfig(args []string) (*config, error) {
	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	fs := flag.NewFlagSet("dixa-mcp-server", flag.ContinueOnError)
	fs.StringVar(&cfg.DixaBaseURL, "dixa-base-url", cfg.DixaBaseURL, "Base URL of the Dixa API")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address for the Streamable HTTP transport")
	fs.StringVar(&cfg.RawLogLevel, "log-level", cfg.RawLogLevel, "Log level: debug|info|warn|error")
	fs.IntVar(&cfg.DixaMaxRetries, "max-retries", cfg.DixaMaxRetries, "Retries for recoverable Dixa API failures")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.DixaMaxRetries < 0 {
		return nil, fmt.Errorf("DIXA_MAX_RETRIES must be >= 0, got %d", cfg.DixaMaxRetries)
	}
	cfg.LogLevel = parseLogLevel(cfg.RawLogLevel)
	return &cfg, nil
}

// initLogger initializes the logger with the configured level. Output always
// goes to stderr because stdout carries the stdio transport.
func (c *config) initLogger() {
	zerolog.SetGlobalLevel(c.LogLevel)
	log.Logger = c.newLogger(os.Stderr)
}

// newLogger writes console lines unless LOG_FORMAT=json.
func (c *config) newLogger(w io.Writer) zerolog.Logger {
	var l zerolog.Logger
	if strings.EqualFold(c.LogFormat, "json") {
		l = zerolog.New(w).With().Timestamp().Logger()
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    true,
		}).With().Timestamp().Logger()
	}
	return l.With().Caller().Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
