package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"bit_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"bit_announcements" description:"Database name"`

	// Application configuration
	SourcesDir      string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source configuration files"`
	SubscribersFile string `long:"subscribers-file" env:"SUBSCRIBERS_FILE" default:"./subscribers.json" description:"JSON file with the subscriber list"`
	Backfill        bool   `long:"backfill" env:"BACKFILL" description:"Scrape and store listing pages without comparison or notification"`
	BackfillPages   int    `long:"backfill-pages" env:"BACKFILL_PAGES" default:"1" description:"Number of listing pages to backfill"`

	// SMS gateway configuration
	TextitID       string `long:"textit-id" env:"TEXTIT_ID" description:"Textit gateway account id"`
	TextitPassword string `long:"textit-pw" env:"TEXTIT_PW" description:"Textit gateway password"`
	TextitURL      string `long:"textit-url" env:"TEXTIT_URL" default:"http://www.textit.biz/sendmsg/index.php" description:"Textit gateway endpoint"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/84.0.4147.105 Safari/537.36" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:          raw.DBHost,
		DBPort:          raw.DBPort,
		DBUser:          raw.DBUser,
		DBPassword:      raw.DBPassword,
		DBName:          raw.DBName,
		SourcesDir:      raw.SourcesDir,
		SubscribersFile: raw.SubscribersFile,
		Backfill:        raw.Backfill,
		BackfillPages:   raw.BackfillPages,
		TextitID:        raw.TextitID,
		TextitPassword:  raw.TextitPassword,
		TextitURL:       raw.TextitURL,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
