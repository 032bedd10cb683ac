package comet

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/league-sync/internal/platform/logging"
	"github.com/riskibarqy/league-sync/internal/platform/resilience"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

const (
	defaultBaseURL       = "https://latam.analyticom.de/data-backend/api/public/areports/run"
	defaultPageSize      = 999
	defaultMatchReportID = 3318704
	defaultEventReportID = 3315314
	maxResponseBytes     = 16 << 20

	AuthModeQuery  = "query"
	AuthModeHeader = "header"

	apiKeyParam = "API_KEY"
)

var apiKeyParamRegex = regexp.MustCompile(`API_KEY=[^&\s"']+`)
var errCometTransient = crerr.New("comet transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKeys        []string
	AuthMode       string
	Timeout        time.Duration
	PageSize       int
	MatchReportID  int64
	EventReportID  int64
	ZoneReportID   int64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the analytics reports page by page. It implements
// usecase.ReportSource and never retries a failed request.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	keys          []string
	authMode      string
	pageSize      int
	matchReportID int64
	eventReportID int64
	zoneReportID  int64
	logger        *logging.Logger
	breaker       *resilience.Breaker[struct{}]
}

var _ usecase.ReportSource = (*Client)(nil)

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("comet")

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "comet base url")
	}

	keys := make([]string, 0, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, crerr.New("comet: at least one api key is required")
	}

	authMode := strings.ToLower(strings.TrimSpace(cfg.AuthMode))
	switch authMode {
	case "":
		authMode = AuthModeQuery
	case AuthModeQuery, AuthModeHeader:
	default:
		return nil, crerr.Newf("comet: unsupported auth mode %q", cfg.AuthMode)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	matchReportID := cfg.MatchReportID
	if matchReportID <= 0 {
		matchReportID = defaultMatchReportID
	}
	eventReportID := cfg.EventReportID
	if eventReportID <= 0 {
		eventReportID = defaultEventReportID
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		keys:          keys,
		authMode:      authMode,
		pageSize:      pageSize,
		matchReportID: matchReportID,
		eventReportID: eventReportID,
		zoneReportID:  cfg.ZoneReportID,
		logger:        logger,
		breaker:       resilience.NewBreaker[struct{}]("comet", cfg.CircuitBreaker, isCometCircuitFailure, logger),
	}, nil
}

// MatchPages runs one full paged pass of the match report per api key.
func (c *Client) MatchPages(ctx context.Context) iter.Seq2[usecase.ExternalPage[usecase.ExternalMatchRow], error] {
	return reportPages(ctx, c, c.matchReportID, c.keys, matchRow.external)
}

// EventPages runs one full paged pass of the event report per api key.
func (c *Client) EventPages(ctx context.Context) iter.Seq2[usecase.ExternalPage[usecase.ExternalEventRow], error] {
	return reportPages(ctx, c, c.eventReportID, c.keys, eventRow.external)
}

// ZonePages reads the zone report with the first api key. The sequence is
// empty when no zone report is configured.
func (c *Client) ZonePages(ctx context.Context) iter.Seq2[usecase.ExternalPage[usecase.ExternalZoneRow], error] {
	if c.zoneReportID <= 0 {
		return func(func(usecase.ExternalPage[usecase.ExternalZoneRow], error) bool) {}
	}
	return reportPages(ctx, c, c.zoneReportID, c.keys[:1], zoneRow.external)
}

type pageEnvelope[R any] struct {
	Results  []R       `json:"results"`
	LastPage flexInt64 `json:"lastPage"`
}

// reportPages stops a pass once the page index reaches lastPage or a batch
// comes back empty. Any error ends the whole sequence.
func reportPages[R any, T any](ctx context.Context, c *Client, reportID int64, keys []string, convert func(R) T) iter.Seq2[usecase.ExternalPage[T], error] {
	return func(yield func(usecase.ExternalPage[T], error) bool) {
		for keyIndex, key := range keys {
			for page := 0; ; page++ {
				var envelope pageEnvelope[R]
				if err := c.fetchPage(ctx, reportID, page, key, &envelope); err != nil {
					yield(usecase.ExternalPage[T]{Page: page}, crerr.Wrapf(err, "report %d page %d key #%d", reportID, page, keyIndex+1))
					return
				}
				if len(envelope.Results) == 0 {
					break
				}

				rows := make([]T, 0, len(envelope.Results))
				for _, item := range envelope.Results {
					rows = append(rows, convert(item))
				}
				lastPage := int(envelope.LastPage)
				if !yield(usecase.ExternalPage[T]{Page: page, LastPage: lastPage, Rows: rows}, nil) {
					return
				}
				if page >= lastPage {
					break
				}
			}
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, reportID int64, page int, key string, target any) error {
	fullURL := c.baseURL + "/" + strconv.FormatInt(reportID, 10) + "/" + strconv.Itoa(page) + "/" + strconv.Itoa(c.pageSize) + "/"
	if c.authMode == AuthModeQuery {
		fullURL += "?" + url.Values{apiKeyParam: []string{key}}.Encode()
	}

	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.executeRequest(ctx, fullURL, key, target)
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "comet circuit breaker rejected request", "report_id", reportID, "page", page, "state", c.breaker.State())
		return fmt.Errorf("%w: report source is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return err
}

func (c *Client) executeRequest(ctx context.Context, fullURL, key string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	if c.authMode == AuthModeHeader {
		req.Header.Set(apiKeyParam, key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WarnContext(ctx, "comet request failed", "url", redactAPIURL(fullURL), "error", c.sanitize(err.Error()))
		return fmt.Errorf("%w: send request: %s", errCometTransient, c.sanitize(err.Error()))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return fmt.Errorf("%w: read response body: %v", errCometTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "comet request failed", "url", redactAPIURL(fullURL), "status", resp.StatusCode)
		body := c.sanitize(abbreviateBody(buf.B))
		if isTransientStatus(resp.StatusCode) {
			return fmt.Errorf("%w: source status=%d body=%s", errCometTransient, resp.StatusCode, body)
		}
		return fmt.Errorf("source status=%d body=%s", resp.StatusCode, body)
	}

	if err := sonic.Unmarshal(buf.B, target); err != nil {
		return crerr.Wrap(err, "decode report page")
	}
	return nil
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	for _, key := range c.keys {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, apiKeyParam+"=REDACTED")
}

func normalizeBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return defaultBaseURL, nil
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

func isCometCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errCometTransient)
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has(apiKeyParam) {
		query.Set(apiKeyParam, "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
