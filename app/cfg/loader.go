package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP configuration
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl       string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://tags.example.com)"`
	APIAccessKey  string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the /api endpoints (optional)"`
	MaxUploadSize int64  `long:"max-upload-size" env:"MAX_UPLOAD_SIZE" default:"10485760" description:"Maximum accepted upload size in bytes"`
	DownloadName  string `long:"download-name" env:"DOWNLOAD_NAME" default:"processed_tags.csv" description:"File name offered for the processed CSV"`

	// Tagging configuration
	RulesFile string `long:"rules-file" env:"RULES_FILE" description:"YAML file with classification rules (optional)"`

	// One-shot mode
	Input  string `short:"i" long:"input" env:"INPUT" description:"Tag this CSV file (or - for stdin) and exit instead of serving HTTP"`
	Output string `short:"o" long:"output" env:"OUTPUT" description:"Where to write the processed CSV in one-shot mode (file, directory, or - for stdout)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs parses args and the environment. It returns nil, nil when help was requested.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:          raw.Port,
		BaseUrl:       raw.BaseUrl,
		APIAccessKey:  raw.APIAccessKey,
		MaxUploadSize: raw.MaxUploadSize,
		DownloadName:  raw.DownloadName,
		RulesFile:     raw.RulesFile,
		Input:         raw.Input,
		Output:        raw.Output,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
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

func validate(cfg *Cfg) error {
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	if cfg.DownloadName == "" {
		return fmt.Errorf("download name is required")
	}
	if filepath.Base(cfg.DownloadName) != cfg.DownloadName {
		return fmt.Errorf("download name must not contain a path: %s", cfg.DownloadName)
	}
	if cfg.Output != "" && cfg.Input == "" {
		return fmt.Errorf("output requires input")
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
