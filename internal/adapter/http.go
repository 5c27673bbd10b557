// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// PageTextLimit is the number of characters of a response body kept on
// [models.Page] for display.
const PageTextLimit = 10000

type httpPageFetcher struct {
	client *utils.HTTPClient

	endpoint   string
	credential string

	limiter     *rate.Limiter
	diagnostics Diagnostics

	logger *logger.Logger
}

// NewHTTPPageFetcher constructs a resty implementation of [PageFetcher].
// It validates the base URL, binds the request timeout and, when
// RequestsPerSecond is positive, throttles requests with a token bucket.
//
// credential is sent verbatim in the Authorization header. A nil diagnostics
// discards exchange reports.
func NewHTTPPageFetcher(cfg config.Upstream, credential string, diagnostics Diagnostics, logger *logger.Logger) (PageFetcher, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base url: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("empty upstream endpoint")
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	if diagnostics == nil {
		diagnostics = NopDiagnostics()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := max(cfg.Burst, 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &httpPageFetcher{
		client:      utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		endpoint:    endpoint,
		credential:  strings.TrimSpace(credential),
		limiter:     limiter,
		diagnostics: diagnostics,
		logger:      logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchPage implements [PageFetcher]. It GETs the configured endpoint with
// page, size and the filters as query parameters, reports the exchange to
// the diagnostics sink and normalizes the body with the record key probes.
func (h *httpPageFetcher) FetchPage(ctx context.Context, req models.PageRequest) (models.Page, error) {
	params := req.Params()

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return models.Page{}, fmt.Errorf("%w: rate limiter: %w", ErrNetwork, err)
		}
	}

	request := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", h.credential).
		SetQueryParams(params)

	exchange := models.Exchange{
		Timestamp:  time.Now().UTC(),
		URL:        h.client.BaseURL + h.endpoint,
		Params:     params,
		HeaderKeys: headerKeys(request),
	}

	resp, err := request.Get(h.endpoint)
	if err != nil {
		exchange.Err = err
		h.report(ctx, exchange)

		h.logger.Err(err).
			Str("func", "httpPageFetcher.FetchPage").
			Int("page", req.Page).
			Msg("upstream request failed")
		return models.Page{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		exchange.URL = resp.RawResponse.Request.URL.String()
	}
	exchange.StatusCode = resp.StatusCode()
	exchange.Header = resp.Header()
	exchange.Body = resp.String()
	h.report(ctx, exchange)

	info := models.ResponseInfo{
		URL:        exchange.URL,
		StatusCode: resp.StatusCode(),
		Header:     resp.Header().Clone(),
		Text:       Truncate(resp.String(), PageTextLimit),
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).
			Str("func", "httpPageFetcher.FetchPage").
			Int("page", req.Page).
			Int("status", resp.StatusCode()).
			Msg("upstream returned non-success status")
		return models.Page{Response: info}, err
	}

	page, err := decodePage(resp.Body())
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpPageFetcher.FetchPage").
			Int("page", req.Page).
			Msg("upstream body is not JSON")
		return models.Page{Response: info}, err
	}
	page.Response = info

	h.logger.Debug().
		Str("func", "httpPageFetcher.FetchPage").
		Int("page", req.Page).
		Int("records", len(page.Records)).
		Stringer("last", page.Last).
		Msg("page fetched")

	return page, nil
}

// headerKeys lists the header names sent with request, credential values
// excluded.
func headerKeys(request *resty.Request) []string {
	keys := make([]string, 0, len(request.Header)+1)
	for k := range request.Header {
		keys = append(keys, k)
	}
	if !slices.Contains(keys, "Accept") {
		keys = append(keys, "Accept")
	}
	slices.Sort(keys)
	return keys
}

// report hands exchange to the diagnostics sink. Sink panics are swallowed.
func (h *httpPageFetcher) report(ctx context.Context, exchange models.Exchange) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn().
				Str("func", "httpPageFetcher.report").
				Interface("panic", r).
				Msg("diagnostics sink failed")
		}
	}()

	h.diagnostics.Report(ctx, exchange)
}
