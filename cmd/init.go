package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
	"golang.org/x/exp/slog"

	"github.com/fleetmon/fleetmon/internal/mailer"
	"github.com/fleetmon/fleetmon/internal/poller"
	"github.com/fleetmon/fleetmon/pkg/models"
)

// initConfig loads config to `ko` object. The app config may be TOML or
// YAML (picked by extension); a `.env` file, when present, is loaded first
// so credential references resolve.
func initConfig(cfgDefault, envPrefix string) (*koanf.Koanf, error) {
	var (
		ko = koanf.New(".")
		f  = flag.NewFlagSet("fleetmon", flag.ContinueOnError)
	)

	// Configure Flags.
	f.Usage = func() {
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}

	// Register `--config` and `--servers` flags.
	cfgPath := f.String("config", cfgDefault, "Path to a config file to load.")
	srvPath := f.String("servers", "", "Path to the fleet inventory file (overrides fleet.file).")

	// Parse and Load Flags.
	err := f.Parse(os.Args[1:])
	if err != nil {
		return nil, err
	}

	// Optional .env for secrets referenced as ${VAR} in the inventory.
	_ = godotenv.Load()

	// Load the config files from the path provided.
	err = ko.Load(file.Provider(*cfgPath), configParser(*cfgPath))
	if err != nil {
		return nil, err
	}

	// Load environment variables if the key is given
	// and merge into the loaded config.
	if envPrefix != "" {
		err = ko.Load(env.Provider(envPrefix, ".", func(s string) string {
			return strings.Replace(strings.ToLower(
				strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
		}), nil)
		if err != nil {
			return nil, err
		}
	}

	if *srvPath != "" {
		if err := ko.Set("fleet.file", *srvPath); err != nil {
			return nil, err
		}
	}

	return ko, nil
}

func configParser(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// initLogger initialies a logger.
func initLogger(lvl string) *slog.Logger {
	opts := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	}
	if lvl == "debug" {
		opts.Level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &opts).WithAttrs([]slog.Attr{slog.String("component", "fleetmon")}))
}

// initFleet loads and validates the server inventory. Invalid entries are
// skipped with a logged reason instead of aborting the run; `${VAR}` values
// are resolved from the environment.
func initFleet(ko *koanf.Koanf, lo *slog.Logger) ([]models.Server, error) {
	path := ko.MustString("fleet.file")

	inv := koanf.New(".")
	if err := inv.Load(file.Provider(path), configParser(path)); err != nil {
		return nil, fmt.Errorf("failed to read inventory %s: %w", path, err)
	}

	var entries []models.Server
	if err := inv.Unmarshal("servers", &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no servers found in inventory %s", path)
	}

	fleet := make([]models.Server, 0, len(entries))
	for i, srv := range entries {
		srv.Username = resolveEnv(srv.Username)
		srv.Password = resolveEnv(srv.Password)
		srv.SSHKey = resolveEnv(srv.SSHKey)
		srv.AdminEmail = resolveEnv(srv.AdminEmail)

		if err := srv.Validate(); err != nil {
			lo.Error("skipping invalid server entry", "index", i+1, "hostname", srv.Hostname, "error", err)
			continue
		}
		fleet = append(fleet, srv)
	}

	if len(fleet) == 0 {
		return nil, fmt.Errorf("no valid servers in inventory %s", path)
	}
	lo.Info("fleet inventory loaded", "path", path, "servers", len(fleet), "skipped", len(entries)-len(fleet))
	return fleet, nil
}

// resolveEnv replaces a whole-string `${VAR}` reference with the value of
// the environment variable.
func resolveEnv(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

// initPoller initialises the SSH poller.
func initPoller(ko *koanf.Koanf, lo *slog.Logger) *poller.Poller {
	return poller.New(lo, poller.Opts{
		ConnectTimeout: ko.MustDuration("poll.connect_timeout"),
	})
}

// initMailer initialises the SMTP mailer.
func initMailer(ko *koanf.Koanf, lo *slog.Logger) *mailer.Mailer {
	return mailer.New(lo, mailer.Opts{
		Host:     ko.String("smtp.host"),
		Port:     ko.Int("smtp.port"),
		Username: resolveEnv(ko.String("smtp.username")),
		Password: resolveEnv(ko.String("smtp.password")),
		FromName: ko.String("smtp.from_name"),
		UseTLS:   ko.Bool("smtp.use_tls"),
	})
}

func initOpts(ko *koanf.Koanf) Opts {
	return Opts{
		MaxRetries:         ko.MustInt("app.max_retries"),
		RetryInterval:      ko.MustDuration("app.retry_interval"),
		Interval:           ko.MustDuration("app.sync_interval"),
		MaxWorkers:         ko.MustInt("app.max_workers"),
		RunOnce:            ko.Bool("app.run_once"),
		OutputDir:          ko.String("report.output_dir"),
		AdminEmail:         ko.String("report.admin_email"),
		OpsRecipients:      ko.Strings("report.recipients"),
		DirectorRecipients: ko.Strings("report.director_recipients"),
	}
}
