package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	EnvSecret     = "NOTION_SECRET"
	EnvDatabaseID = "NOTION_DATABASE_ID"
)

type Cfg struct {
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	NotionSecret     string `long:"notion-secret" env:"NOTION_SECRET" description:"Notion integration secret"`
	NotionDatabaseID string `long:"notion-database-id" env:"NOTION_DATABASE_ID" description:"Notion database to read cards from"`
	NotionBaseURL    string `long:"notion-base-url" env:"NOTION_BASE_URL" default:"https://api.notion.com/v1" description:"Notion API base URL"`
	NotionVersion    string `long:"notion-version" env:"NOTION_VERSION" default:"2022-06-28" description:"Notion-Version header"`
	PageSize         int    `long:"page-size" env:"PAGE_SIZE" default:"100" description:"Records fetched per request (1-100)"`
	UpstreamTimeout  int    `long:"upstream-timeout" env:"UPSTREAM_TIMEOUT" default:"15" description:"Notion request timeout in seconds"`
	RequestTimeout   int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"30" description:"Per-request handler timeout in seconds"`

	SchemaFile string `long:"schema-file" env:"SCHEMA_FILE" description:"YAML file mapping card fields to Notion property names"`
	CORSOrigin string `long:"cors-origin" env:"CORS_ORIGIN" default:"*" description:"Access-Control-Allow-Origin value"`
	Debug      bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads an optional .env file (ENV_FILE, default ".env"), then parses
// args and the environment. It returns nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Cfg
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	cfg.NotionSecret = strings.TrimSpace(cfg.NotionSecret)
	cfg.NotionDatabaseID = strings.TrimSpace(cfg.NotionDatabaseID)
	return &cfg, nil
}

// MissingError reports which upstream settings are absent. Need maps each
// variable name to whether it is set.
type MissingError struct {
	Need map[string]bool
}

func (e *MissingError) Error() string {
	missing := make([]string, 0, len(e.Need))
	for _, name := range []string{EnvSecret, EnvDatabaseID} {
		if set, ok := e.Need[name]; ok && !set {
			missing = append(missing, name)
		}
	}
	return "missing environment variables: " + strings.Join(missing, ", ")
}

// Validate returns a *MissingError when the Notion secret or database id is
// empty.
func (c *Cfg) Validate() error {
	need := map[string]bool{
		EnvSecret:     c.NotionSecret != "",
		EnvDatabaseID: c.NotionDatabaseID != "",
	}
	if need[EnvSecret] && need[EnvDatabaseID] {
		return nil
	}
	return &MissingError{Need: need}
}

func (c *Cfg) UpstreamTimeoutDuration() time.Duration {
	if c.UpstreamTimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.UpstreamTimeout) * time.Second
}

func (c *Cfg) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}
