package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// FileEnvPrefix is the prefix of environment variables that override values
// of the config file, e.g. L10NSYNC__PROJECT_ID.
const FileEnvPrefix = "L10NSYNC__"

type Crowdin struct {
	projectID    string
	apiKey       string
	output       string
	extract      bool
	endpoint     string
	maxEntrySize int64
	offline      bool
	configPath   string
}

// fileConfig mirrors the flags in the YAML config file. Pointers tell an
// absent key from a zero value.
type fileConfig struct {
	ProjectID    string `koanf:"project_id"`
	APIKey       string `koanf:"api_key"`
	Output       string `koanf:"output"`
	Extract      *bool  `koanf:"extract"`
	Endpoint     string `koanf:"crowdin_endpoint"`
	MaxEntrySize int64  `koanf:"max_entry_size"`
	Offline      *bool  `koanf:"offline"`
}

func (x *Crowdin) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project-id",
			Usage:       "Crowdin project identifier",
			Category:    "Crowdin",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("L10NSYNC_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Crowdin project API key. Sync is skipped when empty",
			Category:    "Crowdin",
			Destination: &x.apiKey,
			Sources:     cli.EnvVars("L10NSYNC_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Output directory (extract) or zip file path (repackage)",
			Category:    "Crowdin",
			Destination: &x.output,
			Sources:     cli.EnvVars("L10NSYNC_OUTPUT"),
		},
		&cli.BoolFlag{
			Name:        "extract",
			Usage:       "Extract files into the output directory instead of writing a zip file",
			Category:    "Crowdin",
			Value:       true,
			Destination: &x.extract,
			Sources:     cli.EnvVars("L10NSYNC_EXTRACT"),
		},
		&cli.StringFlag{
			Name:        "crowdin-endpoint",
			Usage:       "Crowdin API base URL",
			Category:    "Crowdin",
			Value:       model.DefaultCrowdinEndpoint,
			Destination: &x.endpoint,
			Sources:     cli.EnvVars("L10NSYNC_CROWDIN_ENDPOINT"),
		},
		&cli.Int64Flag{
			Name:        "max-entry-size",
			Usage:       "Maximum size in bytes of one file in the archive",
			Category:    "Crowdin",
			Value:       model.DefaultMaxEntrySize,
			Destination: &x.maxEntrySize,
			Sources:     cli.EnvVars("L10NSYNC_MAX_ENTRY_SIZE"),
		},
		&cli.BoolFlag{
			Name:        "offline",
			Usage:       "Skip the sync without contacting Crowdin",
			Category:    "Crowdin",
			Destination: &x.offline,
			Sources:     cli.EnvVars("L10NSYNC_OFFLINE"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to YAML config file",
			Aliases:     []string{"c"},
			Category:    "Crowdin",
			Destination: &x.configPath,
			Sources:     cli.EnvVars("L10NSYNC_CONFIG"),
		},
	}
}

// LoadFile fills values from the config file and L10NSYNC__* variables.
// A flag for which isSet returns true keeps its value.
func (x *Crowdin) LoadFile(isSet func(name string) bool) error {
	k := koanf.New(".")
	if x.configPath != "" {
		if err := k.Load(file.Provider(x.configPath), yaml.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return goerr.Wrap(types.ErrConfigInvalid, "config file not found", goerr.V("path", x.configPath))
			}
			return goerr.Wrap(types.ErrConfigInvalid, "failed to load config file", goerr.V("path", x.configPath), goerr.V("error", err))
		}
	}

	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, FileEnvPrefix))
	}
	if err := k.Load(env.Provider(FileEnvPrefix, "__", envKey), nil); err != nil {
		return goerr.Wrap(types.ErrConfigInvalid, "failed to load environment variables", goerr.V("error", err))
	}

	var cfg fileConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return goerr.Wrap(types.ErrConfigInvalid, "failed to parse config file", goerr.V("path", x.configPath), goerr.V("error", err))
	}

	setString := func(name string, dst *string, v string) {
		if v != "" && !isSet(name) {
			*dst = v
		}
	}
	setString("project-id", &x.projectID, cfg.ProjectID)
	setString("api-key", &x.apiKey, cfg.APIKey)
	setString("output", &x.output, cfg.Output)
	setString("crowdin-endpoint", &x.endpoint, cfg.Endpoint)

	if cfg.Extract != nil && !isSet("extract") {
		x.extract = *cfg.Extract
	}
	if cfg.Offline != nil && !isSet("offline") {
		x.offline = *cfg.Offline
	}
	if cfg.MaxEntrySize != 0 && !isSet("max-entry-size") {
		x.maxEntrySize = cfg.MaxEntrySize
	}

	return nil
}

func (x *Crowdin) Offline() bool {
	return x.offline
}

func (x *Crowdin) HasAPIKey() bool {
	return x.apiKey != ""
}

func (x *Crowdin) Endpoint() string {
	return x.endpoint
}

func (x *Crowdin) SyncInput() (*model.SyncInput, error) {
	input := &model.SyncInput{
		ExportRequest: model.ExportRequest{
			ProjectID: types.ProjectID(x.projectID),
			APIKey:    types.APIKey(x.apiKey),
		},
		OutputPath:   x.output,
		Extract:      x.extract,
		MaxEntrySize: x.maxEntrySize,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return input, nil
}

func (x *Crowdin) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("ProjectID", x.projectID),
		slog.Any("APIKey", types.APIKey(x.apiKey)),
		slog.Any("Output", x.output),
		slog.Any("Extract", x.extract),
		slog.Any("Endpoint", x.endpoint),
		slog.Any("MaxEntrySize", x.maxEntrySize),
		slog.Any("Offline", x.offline),
		slog.Any("Config", x.configPath),
	)
}
