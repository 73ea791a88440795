package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/numlookup/internal/app"
	"github.com/hyperifyio/numlookup/internal/lookup"
	"github.com/hyperifyio/numlookup/internal/report"
)

// Exit codes.
const (
	exitFound    = 0
	exitError    = 1
	exitNotFound = 2
)

// offlineUpstream satisfies validation when only a saved page is analyzed.
const offlineUpstream = "http://localhost/"

type options struct {
	configPath  string
	envFiles    string
	showVersion bool

	number      string
	htmlPath    string
	format      string
	pdfPath     string
	upstreamURL string
	timeout     time.Duration
	strict      bool
	verbose     bool
}

type record struct {
	Found             bool              `json:"found"`
	SearchedNumber    string            `json:"searched_number"`
	Name              string            `json:"name,omitempty"`
	CNIC              string            `json:"cnic,omitempty"`
	Address           string            `json:"address,omitempty"`
	AssociatedNumbers []string          `json:"associated_numbers,omitempty"`
	Extras            map[string]string `json:"extras,omitempty"`
	Strategy          string            `json:"strategy,omitempty"`
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("numlookup", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", os.Getenv("NUMLOOKUP_CONFIG"), "Path to YAML or JSON config file")
	fs.StringVar(&o.envFiles, "env", ".env", "Comma-separated dotenv files to load")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.StringVar(&o.number, "number", "", "Phone number or CNIC to look up (or pass as first argument)")
	fs.StringVar(&o.htmlPath, "html", "", "Extract from a saved upstream page instead of fetching")
	fs.StringVar(&o.format, "format", "markdown", "Output format: markdown or json")
	fs.StringVar(&o.pdfPath, "pdf", "", "Also write the Markdown report as PDF to this path")
	fs.StringVar(&o.upstreamURL, "upstream.url", "", "Upstream search endpoint (http or https)")
	fs.DurationVar(&o.timeout, "upstream.timeout", 0, "Per-request upstream timeout")
	fs.BoolVar(&o.strict, "strict", false, "Reject input that is not a CNIC or domestic mobile number")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")
	return fs
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(exitError)
	}
	if o.showVersion {
		fmt.Println(app.VersionString())
		return
	}
	if o.number == "" && fs.NArg() > 0 {
		o.number = fs.Arg(0)
	}
	os.Exit(run(context.Background(), fs, o, os.Stdout))
}

func run(ctx context.Context, fs *flag.FlagSet, o options, stdout io.Writer) int {
	if o.format != "markdown" && o.format != "json" {
		log.Error().Str("format", o.format).Msg("unknown output format")
		return exitError
	}
	cfg, err := app.ResolveConfig(o.configPath, app.SplitList(o.envFiles))
	if err != nil {
		log.Error().Err(err).Msg("load config")
		return exitError
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "upstream.url":
			cfg.UpstreamURL = o.upstreamURL
		case "upstream.timeout":
			cfg.UpstreamTimeout = o.timeout
		case "strict":
			cfg.StrictInput = o.strict
		case "v":
			cfg.Verbose = o.verbose
		}
	})
	if o.htmlPath != "" && cfg.UpstreamURL == "" {
		cfg.UpstreamURL = offlineUpstream
	}
	cfg.MetricsEnabled = false

	logger := app.NewLogger(cfg, os.Stderr)
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("init")
		return exitError
	}

	var out lookup.Outcome
	if o.htmlPath != "" {
		b, err := os.ReadFile(o.htmlPath)
		if err != nil {
			logger.Error().Err(err).Msg("read html")
			return exitError
		}
		out = a.Analyze(o.number, string(b))
	} else {
		out, err = a.Lookup(ctx, o.number)
		if err != nil {
			logLookupError(logger, err)
			return exitError
		}
	}

	md := report.Markdown(out)
	switch o.format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newRecord(out)); err != nil {
			logger.Error().Err(err).Msg("write json")
			return exitError
		}
	default:
		fmt.Fprint(stdout, md)
	}
	if o.pdfPath != "" {
		if err := report.WritePDF(md, o.pdfPath); err != nil {
			logger.Error().Err(err).Str("path", o.pdfPath).Msg("write pdf")
			return exitError
		}
		logger.Info().Str("path", o.pdfPath).Msg("pdf written")
	}
	if !out.Found {
		return exitNotFound
	}
	return exitFound
}

func logLookupError(logger zerolog.Logger, err error) {
	var se *lookup.StatusError
	switch {
	case errors.Is(err, lookup.ErrEmptyInput):
		logger.Error().Msg("a phone number or CNIC is required (-number or first argument)")
	case errors.Is(err, lookup.ErrInvalidFormat):
		logger.Error().Msg("invalid number format: expected a Pakistani mobile number or 13-digit CNIC")
	case errors.As(err, &se):
		logger.Error().Int("status", se.Code).Msg("upstream returned an error status")
	default:
		logger.Error().Err(err).Msg("lookup failed")
	}
}

func newRecord(out lookup.Outcome) record {
	rec := record{Found: out.Found, SearchedNumber: out.Number}
	if !out.Found {
		return rec
	}
	r := out.Result
	rec.Name = r.Name
	rec.CNIC = r.IdentityNumber
	rec.Address = strings.TrimSpace(r.Address)
	rec.AssociatedNumbers = r.AssociatedNumbers
	rec.Extras = r.Extras
	rec.Strategy = r.Strategy
	return rec
}
