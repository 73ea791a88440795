package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/numlookup/internal/app"
)

type options struct {
	configPath  string
	envFiles    string
	showVersion bool

	listen          string
	upstreamURL     string
	upstreamParam   string
	userAgent       string
	upstreamTimeout time.Duration
	strict          bool
	verbose         bool
	logJSON         bool
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("numlookupd", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", os.Getenv("NUMLOOKUP_CONFIG"), "Path to YAML or JSON config file")
	fs.StringVar(&o.envFiles, "env", ".env", "Comma-separated dotenv files to load")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.StringVar(&o.listen, "listen", "", "Listen address, e.g. :3000")
	fs.StringVar(&o.upstreamURL, "upstream.url", "", "Upstream search endpoint (http or https)")
	fs.StringVar(&o.upstreamParam, "upstream.param", "", "Query parameter carrying the number")
	fs.StringVar(&o.userAgent, "upstream.ua", "", "User-Agent sent upstream")
	fs.DurationVar(&o.upstreamTimeout, "upstream.timeout", 0, "Per-request upstream timeout")
	fs.BoolVar(&o.strict, "strict", false, "Reject input that is not a CNIC or domestic mobile number")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&o.logJSON, "log.json", false, "Log JSON lines instead of console output")
	return fs
}

// buildConfig resolves file and env layers, then applies only the flags that
// were given explicitly.
func buildConfig(fs *flag.FlagSet, o options) (app.Config, error) {
	cfg, err := app.ResolveConfig(o.configPath, app.SplitList(o.envFiles))
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.ListenAddr = o.listen
		case "upstream.url":
			cfg.UpstreamURL = o.upstreamURL
		case "upstream.param":
			cfg.UpstreamParam = o.upstreamParam
		case "upstream.ua":
			cfg.UserAgent = o.userAgent
		case "upstream.timeout":
			cfg.UpstreamTimeout = o.upstreamTimeout
		case "strict":
			cfg.StrictInput = o.strict
		case "v":
			cfg.Verbose = o.verbose
		case "log.json":
			cfg.LogJSON = o.logJSON
		}
	})
	return cfg, app.ValidateConfig(cfg)
}

func main() {
	// Logging setup until the configured logger exists
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if o.showVersion {
		fmt.Println(app.VersionString())
		return
	}

	if err := run(fs, o); err != nil {
		log.Error().Err(err).Msg("numlookupd failed")
		os.Exit(1)
	}
}

func run(fs *flag.FlagSet, o options) error {
	cfg, err := buildConfig(fs, o)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg, os.Stderr)
	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}
