// Package lookup ties normalization, the upstream fetch and extraction into a
// single call and classifies how it ended.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/numlookup/internal/extract"
	"github.com/hyperifyio/numlookup/internal/fetch"
	"github.com/hyperifyio/numlookup/internal/metrics"
	"github.com/hyperifyio/numlookup/internal/normalize"
)

// DefaultParam is the query parameter carrying the canonical number.
const DefaultParam = "number"

// Fetcher retrieves the raw upstream page for a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Service.
type Options struct {
	// Endpoint is the upstream URL; the number is added to its query string.
	Endpoint string
	// Param names the query parameter. Empty means DefaultParam.
	Param string
	// Strict rejects input that is neither a CNIC nor a domestic mobile number.
	Strict    bool
	Extractor *extract.Extractor
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
}

// Outcome is the result of a lookup that reached the upstream, or at least
// got as far as normalizing the input.
type Outcome struct {
	Input  string
	Number string
	Found  bool
	Result extract.Result
}

// Service performs lookups. It is safe for concurrent use.
type Service struct {
	fetcher   Fetcher
	extractor *extract.Extractor
	endpoint  *url.URL
	param     string
	strict    bool
	log       zerolog.Logger
	metrics   *metrics.Metrics
}

// New validates opts and returns a Service using f for upstream calls.
func New(f Fetcher, opts Options) (*Service, error) {
	if f == nil {
		return nil, errors.New("lookup: fetcher is required")
	}
	u, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("lookup: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("lookup: endpoint must be http(s), got %q", opts.Endpoint)
	}
	s := &Service{
		fetcher:   f,
		extractor: opts.Extractor,
		endpoint:  u,
		param:     opts.Param,
		strict:    opts.Strict,
		log:       opts.Logger,
		metrics:   opts.Metrics,
	}
	if s.extractor == nil {
		s.extractor = extract.Default()
	}
	if s.param == "" {
		s.param = DefaultParam
	}
	return s, nil
}

// URLFor returns the upstream URL queried for a canonical number.
func (s *Service) URLFor(number string) string {
	u := *s.endpoint
	q := u.Query()
	q.Set(s.param, number)
	u.RawQuery = q.Encode()
	return u.String()
}

// Lookup normalizes raw, fetches the upstream page and extracts a record. A
// lookup that reaches the upstream but finds nothing returns Found=false and
// a nil error. Outcome.Number is populated whenever normalization succeeded,
// including on upstream errors.
func (s *Service) Lookup(ctx context.Context, raw string) (Outcome, error) {
	out := Outcome{Input: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		s.metrics.ObserveLookup(metrics.OutcomeInvalidInput)
		return out, ErrEmptyInput
	}
	if s.strict && !normalize.Valid(trimmed) {
		s.metrics.ObserveLookup(metrics.OutcomeInvalidInput)
		return out, ErrInvalidFormat
	}
	out.Number = normalize.Normalize(trimmed)
	if out.Number == "" {
		s.metrics.ObserveLookup(metrics.OutcomeInvalidInput)
		return out, ErrInvalidFormat
	}

	s.log.Info().Str("number", out.Number).Msg("searching upstream")
	body, err := s.fetch(ctx, out.Number)
	if err != nil {
		return out, err
	}
	return s.Analyze(out, string(body)), nil
}

// Analyze runs extraction over already retrieved content and completes out.
func (s *Service) Analyze(out Outcome, content string) Outcome {
	out.Result = s.extractor.Extract(content)
	out.Found = !out.Result.Empty()
	if !out.Found {
		s.log.Info().Str("number", out.Number).Msg("no information found upstream")
		s.metrics.ObserveLookup(metrics.OutcomeNotFound)
		return out
	}
	s.log.Debug().
		Str("number", out.Number).
		Str("strategy", out.Result.Strategy).
		Int("associated", len(out.Result.AssociatedNumbers)).
		Msg("extracted record")
	s.metrics.ObserveStrategy(out.Result.Strategy)
	s.metrics.ObserveLookup(metrics.OutcomeFound)
	return out
}

func (s *Service) fetch(ctx context.Context, number string) ([]byte, error) {
	start := time.Now()
	body, err := s.fetcher.Get(ctx, s.URLFor(number))
	elapsed := time.Since(start)
	if err == nil {
		s.metrics.ObserveUpstream("ok", elapsed)
		s.log.Debug().Str("number", number).Int("bytes", len(body)).Dur("elapsed", elapsed).Msg("upstream responded")
		return body, nil
	}
	var se *fetch.StatusError
	if errors.As(err, &se) {
		s.metrics.ObserveUpstream("status", elapsed)
		s.metrics.ObserveLookup(metrics.OutcomeUpstreamStatus)
		s.log.Warn().Str("number", number).Int("status", se.Code).Msg("upstream returned non-200")
		return nil, &StatusError{Code: se.Code}
	}
	s.metrics.ObserveUpstream("error", elapsed)
	s.metrics.ObserveLookup(metrics.OutcomeUpstreamError)
	s.log.Warn().Err(err).Str("number", number).Msg("upstream request failed")
	return nil, &TransportError{Err: err}
}
